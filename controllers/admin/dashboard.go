package adminController

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	internshipModels "academy/models/internship"
)

// GetDashboard returns platform-wide counts for the admin overview page.
func GetDashboard(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var (
		totalStudents      int64
		totalCourses       int64
		totalEnrollments   int64
		pendingAssignments int64
		totalCertificates  int64
		activeInternships  int64
	)

	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.ModuleAssignment{}).Where("status = ? AND is_deleted = ?", courseModels.AssignmentPending, false).Count(&pendingAssignments)
	db.Model(&courseModels.Certificate{}).Where("is_deleted = ?", false).Count(&totalCertificates)
	db.Model(&internshipModels.Internship{}).Where("status = ? AND is_deleted = ?", internshipModels.StatusActive, false).Count(&activeInternships)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_students":      totalStudents,
		"total_courses":       totalCourses,
		"total_enrollments":   totalEnrollments,
		"pending_assignments": pendingAssignments,
		"total_certificates":  totalCertificates,
		"active_internships":  activeInternships,
	})
}

// UpdateUserRole changes a user's role. Restricted to super admins.
func UpdateUserRole(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	userID := c.Locals("targetUserID").(int)

	reqData := new(struct {
		Role string `json:"role"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	switch reqData.Role {
	case models.RoleStudent, models.RoleTrainer, models.RoleAdmin, models.RoleSuperAdmin:
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = reqData.Role
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating user role: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}

// ListUsers returns users with pagination for the admin panel.
func ListUsers(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var users []models.User
	var total int64

	if err := database.Database.Db.Where("is_deleted = ?", false).
		Offset(offset).
		Limit(*reqData.Limit).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}
	database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&total)

	for i := range users {
		users[i].Password = ""
	}

	response := map[string]interface{}{
		"users": users,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", response)
}
