package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.List(), controllers.GetAllCourses)
	courseGroup.Get("/:course_id", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:course_id/enroll", middleware.JWTMiddleware, validators.CourseParam(), controllers.EnrollInCourse)

	// Lesson completion and module access
	courseGroup.Post("/:course_id/module/:module_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.MarkLessonComplete(), controllers.MarkLessonComplete)
	courseGroup.Get("/:course_id/module/:module_id/access", middleware.JWTMiddleware, validators.ModuleAccess(), controllers.CanAccessModule)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseParam(), controllers.GetModuleProgress)

	// Assignments
	courseGroup.Post("/:course_id/module/:module_id/assignment/submit", middleware.JWTMiddleware, validators.SubmitAssignment(), controllers.SubmitAssignment)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
