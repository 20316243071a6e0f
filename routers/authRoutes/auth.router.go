package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "academy/controllers/auth"
	"academy/middleware"
	authValidators "academy/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/profile", middleware.JWTMiddleware, authControllers.GetProfile)
	authGroup.Put("/change/login/password", middleware.JWTMiddleware, authControllers.ChangeLoginPassword)
}
