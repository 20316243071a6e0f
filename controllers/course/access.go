package controllers

import (
	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progression"
	courseValidator "academy/validators/course"
)

// loadOverrideTarget resolves the student and progress record for a staff
// unlock/lock/force-progress call.
func loadOverrideTarget(c *fiber.Ctx) (*courseModels.ModuleProgress, *courseValidator.OverridePayload, error) {
	studentID := c.Locals("studentID").(int)
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedOverride").(*courseValidator.OverridePayload)
	if !ok {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	record, err := ensureModuleProgress(db, uint(studentID), uint(courseID))
	if err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}
	return record, reqData, nil
}

// UnlockModule force-unlocks a module for a student. Idempotent: the index
// goes into both the override set and the rule set.
func UnlockModule(c *fiber.Ctx) error {
	record, reqData, err := loadOverrideTarget(c)
	if err != nil {
		return err
	}

	record.OverrideUnlocked.Add(reqData.ModuleIndex)
	record.UnlockedModules.Add(reqData.ModuleIndex)

	if err := database.Database.Db.Save(record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module unlocked!", record)
}

// LockModule removes a module from both unlock sets and, when the student
// was at or past it, resets their current module to the one before it.
func LockModule(c *fiber.Ctx) error {
	record, reqData, err := loadOverrideTarget(c)
	if err != nil {
		return err
	}

	// The first module stays unlocked for the lifetime of every record.
	if reqData.ModuleIndex == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "The first module cannot be locked!", nil)
	}

	record.OverrideUnlocked.Remove(reqData.ModuleIndex)
	record.UnlockedModules.Remove(reqData.ModuleIndex)
	record.CurrentModuleIndex = progression.CurrentIndexAfterLock(record.CurrentModuleIndex, reqData.ModuleIndex)

	if err := database.Database.Db.Save(record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module locked!", record)
}

// ForceProgress unlocks every module up to the target index and moves the
// student there, bypassing all assignment and score checks.
func ForceProgress(c *fiber.Ctx) error {
	record, reqData, err := loadOverrideTarget(c)
	if err != nil {
		return err
	}

	progression.UnlockThrough(record.UnlockedModules, reqData.ModuleIndex)
	record.CurrentModuleIndex = reqData.ModuleIndex

	if err := database.Database.Db.Save(record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress forced!", record)
}

// UpdateAccessConfig sets a course's unlock rule (auto-unlock + threshold).
func UpdateAccessConfig(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedAccessConfig").(*courseValidator.AccessConfigPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var config courseModels.ModuleAccessConfig
	if err := db.Where("course_id = ?", courseID).First(&config).Error; err != nil {
		config = courseModels.ModuleAccessConfig{
			CourseID:                 uint(courseID),
			AutoUnlockScoreThreshold: progression.DefaultUnlockScoreThreshold,
		}
	}

	config.AutoUnlockEnabled = reqData.AutoUnlockEnabled
	if reqData.AutoUnlockScoreThreshold != nil {
		config.AutoUnlockScoreThreshold = *reqData.AutoUnlockScoreThreshold
	}

	if err := db.Save(&config).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save access config!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access config updated!", config)
}

// GetStudentProgress returns a student's progress record, for staff.
func GetStudentProgress(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	record, err := ensureModuleProgress(db, uint(studentID), uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", record)
}
