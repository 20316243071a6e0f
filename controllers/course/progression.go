package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progression"
)

// ensureModuleProgress loads the progress record for a student+course pair,
// creating the default one (module zero unlocked, everything else empty) on
// first use.
func ensureModuleProgress(db *gorm.DB, studentID, courseID uint) (*courseModels.ModuleProgress, error) {
	var record courseModels.ModuleProgress
	err := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&record).Error
	if err == nil {
		return &record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record = courseModels.NewModuleProgress(studentID, courseID)
	if err := db.Create(&record).Error; err != nil {
		// A concurrent first call may have created it already.
		if ferr := db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&record).Error; ferr == nil {
			return &record, nil
		}
		return nil, err
	}
	return &record, nil
}

// orderedModules returns the course's modules sorted by their order index.
func orderedModules(db *gorm.DB, courseID uint) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc, id asc").Find(&modules).Error
	return modules, err
}

// resolveModuleIndex finds a module by its stored ID within the course's
// ordered module list. Identity is the ID alone; there is no positional
// fallback.
func resolveModuleIndex(db *gorm.DB, courseID, moduleID uint) (int, *courseModels.Module, error) {
	modules, err := orderedModules(db, courseID)
	if err != nil {
		return 0, nil, err
	}
	for i, mod := range modules {
		if mod.ID == moduleID {
			return i, &modules[i], nil
		}
	}
	return 0, nil, gorm.ErrRecordNotFound
}

// MarkLessonComplete idempotently records a lesson as done for the current
// student. The lesson's module must be in the effective unlock set.
func MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)
	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	moduleIndex, _, err := resolveModuleIndex(db, uint(courseID), uint(moduleID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND module_id = ? AND is_deleted = ?", lessonID, moduleID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	record, err := ensureModuleProgress(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	access := progression.CheckAccess(record.UnlockedModules, record.OverrideUnlocked, record.CurrentModuleIndex, moduleIndex)
	if !access.Allowed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Module is locked!", fiber.Map{
			"redirect_index": access.RedirectIndex,
		})
	}

	lessonKey := strconv.Itoa(lessonID)
	if record.CompletedLessons.Add(lessonKey) {
		record.LessonCompletionDates[lessonKey] = time.Now().UTC().Format(time.RFC3339)
	}

	if err := db.Save(record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	// Keep the enrollment percentage in step with lesson completions.
	updateEnrollmentProgress(userID, uint(courseID), len(record.CompletedLessons))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", record)
}

// CanAccessModule reports whether the student may enter a module, with a
// suggested redirect index on denial so the client can route back.
func CanAccessModule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	moduleIndex, _, err := resolveModuleIndex(db, uint(courseID), uint(moduleID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	record, err := ensureModuleProgress(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	access := progression.CheckAccess(record.UnlockedModules, record.OverrideUnlocked, record.CurrentModuleIndex, moduleIndex)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access check completed!", access)
}

// GetModuleProgress returns the student's own progress record for a course.
func GetModuleProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	record, err := ensureModuleProgress(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":         record,
		"effective_unlock": progression.EffectiveUnlocked(record.UnlockedModules, record.OverrideUnlocked).Values(),
	})
}

// updateEnrollmentProgress updates the enrollment progress after a lesson
// completion.
func updateEnrollmentProgress(userID uint, courseID uint, completedLessons int) {
	db := database.Database.Db

	var totalLessons int64
	db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Count(&totalLessons)

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedLessons = completedLessons
	enrollment.TotalLessons = int(totalLessons)

	if totalLessons > 0 {
		enrollment.Progress = float64(completedLessons) / float64(totalLessons) * 100
	}

	if enrollment.Progress >= 100 {
		enrollment.Status = courseModels.EnrollmentComplete
		now := time.Now()
		enrollment.CompletedAt = &now
	} else if enrollment.Progress > 0 {
		enrollment.Status = courseModels.EnrollInProgress
	}

	db.Save(&enrollment)
}
