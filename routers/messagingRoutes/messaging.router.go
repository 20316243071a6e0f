package messagingRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "academy/controllers/messaging"
	"academy/middleware"
	validators "academy/validators/messaging"
)

// SetupMessagingRoutes sets up thread and notification routes.
func SetupMessagingRoutes(app *fiber.App) {
	threadGroup := app.Group("/thread", middleware.JWTMiddleware)

	threadGroup.Post("/open", validators.OpenThread(), controllers.OpenThread)
	threadGroup.Get("/list", controllers.GetMyThreads)
	threadGroup.Get("/:thread_id", validators.ThreadParam(), controllers.GetThreadMessages)
	threadGroup.Post("/:thread_id/reply", validators.ReplyToThread(), controllers.ReplyToThread)
	threadGroup.Post("/:thread_id/close", middleware.RequireStaff(), validators.ThreadParam(), controllers.CloseThread)

	notificationGroup := app.Group("/notification", middleware.JWTMiddleware)

	notificationGroup.Get("/list", controllers.GetMyNotifications)
	notificationGroup.Patch("/:notification_id/read", validators.NotificationParam(), controllers.MarkNotificationRead)
}
