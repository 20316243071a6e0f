package adminRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "academy/controllers/admin"
	"academy/middleware"
	"academy/models"
	validators "academy/validators/admin"
)

// SetupAdminRoutes sets up dashboard, user management and badge routes.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))

	adminGroup.Get("/dashboard", controllers.GetDashboard)
	adminGroup.Get("/users", validators.List(), controllers.ListUsers)

	// Role changes stay with super admins.
	adminGroup.Patch("/user/:user_id/role", middleware.RequireRoles(models.RoleSuperAdmin), validators.TargetUserParam(), controllers.UpdateUserRole)

	adminGroup.Post("/badge/create", validators.CreateBadge(), controllers.CreateBadge)
	adminGroup.Post("/badge/award", validators.AwardBadge(), controllers.AwardBadge)

	// Students read their own badges.
	badgeGroup := app.Group("/badge", middleware.JWTMiddleware)
	badgeGroup.Get("/list", controllers.GetUserBadges)
}
