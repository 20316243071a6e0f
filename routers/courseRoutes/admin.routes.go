package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "academy/controllers/course"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/course"
)

// SetupAdminCourseRoutes sets up course management and progression override
// routes for trainers and admins.
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Post("/:course_id/publish", validators.CourseParam(), controllers.AdminPublishCourse)

	// Module and lesson management
	adminGroup.Post("/:course_id/module", validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Get("/:course_id/modules", validators.CourseParam(), controllers.AdminListModules)
	adminGroup.Delete("/:course_id/module/:module_id", validators.ModuleAccess(), controllers.AdminDeleteModule)
	adminGroup.Post("/:course_id/module/:module_id/lesson", validators.CreateLesson(), controllers.AdminCreateLesson)

	// Unlock rule configuration
	adminGroup.Put("/:course_id/access-config", validators.UpdateAccessConfig(), controllers.UpdateAccessConfig)

	// Assignment review and progression overrides are open to trainers too.
	staffGroup := app.Group("/staff", middleware.JWTMiddleware, middleware.RequireStaff())

	staffGroup.Get("/assignments/pending", controllers.GetPendingAssignments)
	staffGroup.Patch("/assignment/:assignment_id/review", validators.ReviewAssignment(), controllers.ReviewAssignment)

	staffGroup.Get("/student/:user_id/course/:course_id/progress", validators.StudentCourseParams(), controllers.GetStudentProgress)
	staffGroup.Post("/student/:user_id/course/:course_id/unlock", validators.ModuleOverride(), controllers.UnlockModule)
	staffGroup.Post("/student/:user_id/course/:course_id/lock", validators.ModuleOverride(), controllers.LockModule)
	staffGroup.Post("/student/:user_id/course/:course_id/force-progress", validators.ModuleOverride(), controllers.ForceProgress)
}
