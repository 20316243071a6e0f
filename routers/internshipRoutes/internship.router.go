package internshipRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "academy/controllers/internship"
	"academy/middleware"
	validators "academy/validators/internship"
)

// SetupInternshipRoutes sets up internship and project tracking routes.
func SetupInternshipRoutes(app *fiber.App) {
	internGroup := app.Group("/internship", middleware.JWTMiddleware)

	// Internship lifecycle is staff-managed.
	internGroup.Post("/create", middleware.RequireStaff(), validators.CreateInternship(), controllers.CreateInternship)
	internGroup.Get("/:internship_id", validators.InternshipParam(), controllers.GetInternship)
	internGroup.Post("/:internship_id/task", middleware.RequireStaff(), validators.InternshipParam(), validators.AddTask(), controllers.AddTask)
	internGroup.Patch("/:internship_id/task/:task_id/status", validators.InternshipParam(), validators.UpdateTaskStatus(), controllers.UpdateTaskStatus)
	internGroup.Post("/:internship_id/promote", middleware.RequireStaff(), validators.InternshipParam(), controllers.PromoteIntern)

	// Projects are student-managed.
	projectGroup := app.Group("/project", middleware.JWTMiddleware)

	projectGroup.Post("/create", validators.CreateProject(), controllers.CreateProject)
	projectGroup.Get("/list", controllers.GetMyProjects)
	projectGroup.Post("/:project_id/task", validators.ProjectParam(), validators.AddTask(), controllers.AddProjectTask)
	projectGroup.Patch("/:project_id/task/:task_id/status", validators.ProjectParam(), validators.UpdateTaskStatus(), controllers.UpdateProjectTaskStatus)
	projectGroup.Post("/:project_id/advance", validators.ProjectParam(), controllers.AdvanceProjectStage)
}
