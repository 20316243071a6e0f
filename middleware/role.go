package middleware

import (
	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/models"
)

// RequireRoles returns a middleware that lets the request through only when
// the authenticated user's role is one of the given roles. The role is read
// back from the user record rather than trusted from the token, so a role
// change takes effect without waiting for token expiry.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: User ID not found",
				"data":    nil,
			})
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "User not found!",
				"data":    nil,
			})
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("role", user.Role)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
}

// RequireStaff restricts a route to trainers and admins.
func RequireStaff() fiber.Handler {
	return RequireRoles(models.RoleTrainer, models.RoleAdmin, models.RoleSuperAdmin)
}
