package paymentRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "academy/controllers/payment"
	"academy/middleware"
	courseValidators "academy/validators/course"
)

// SetupPaymentRoutes sets up course checkout routes. The gateway callback is
// unauthenticated; the gateway posts status changes there.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/course/:course_id", middleware.JWTMiddleware, courseValidators.CourseParam(), controllers.CreateCoursePayment)
	paymentGroup.Get("/list", middleware.JWTMiddleware, controllers.GetMyPayments)
	paymentGroup.Post("/callback", controllers.PaymentCallback)
}
