package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"academy/config"
	"academy/database"
	adminRoutes "academy/routers/adminRoutes"
	authRoutes "academy/routers/authRoutes"
	courseRoutes "academy/routers/courseRoutes"
	internshipRoutes "academy/routers/internshipRoutes"
	messagingRoutes "academy/routers/messagingRoutes"
	paymentRoutes "academy/routers/paymentRoutes"
	"academy/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitMidtrans()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	internshipRoutes.SetupInternshipRoutes(app)
	messagingRoutes.SetupMessagingRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	scheduler := utils.InitializeSchedulers()
	defer scheduler.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
