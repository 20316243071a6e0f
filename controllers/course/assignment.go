package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progression"
	"academy/utils"
	courseValidator "academy/validators/course"
)

// SubmitAssignment upserts the student's submission for a module. Every
// assignment/quiz lesson in the module must be completed first; resubmission
// after a rejection lands on the same record via the unique triple.
func SubmitAssignment(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		SubmissionLink string `json:"submission_link"`
		FileURL        string `json:"file_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	_, module, err := resolveModuleIndex(db, uint(courseID), uint(moduleID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	record, err := ensureModuleProgress(db, userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
	}

	// Lessons that gate the assignment for this module.
	var gatingLessons []courseModels.Lesson
	if err := db.Where("module_id = ? AND kind IN ? AND is_deleted = ? AND is_published = ?",
		module.ID, []string{courseModels.LessonAssignment, courseModels.LessonQuiz}, false, true).
		Find(&gatingLessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check prerequisites!", nil)
	}

	required := make([]string, len(gatingLessons))
	for i, lesson := range gatingLessons {
		required[i] = strconv.Itoa(int(lesson.ID))
	}

	if missing := progression.MissingPrerequisites(required, record.CompletedLessons); len(missing) > 0 {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all required lessons before submitting!", fiber.Map{
			"missing_lessons": missing,
		})
	}

	assignment := courseModels.ModuleAssignment{
		StudentID:      userID,
		CourseID:       uint(courseID),
		ModuleID:       module.ID,
		Status:         courseModels.AssignmentPending,
		SubmissionLink: reqData.SubmissionLink,
		FileURL:        reqData.FileURL,
	}

	// One active submission per (student, course, module): a resubmission
	// overwrites the previous record and clears any prior review.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "student_id"}, {Name: "course_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":          courseModels.AssignmentPending,
			"submission_link": reqData.SubmissionLink,
			"file_url":        reqData.FileURL,
			"score":           nil,
			"feedback":        "",
			"approved_by":     nil,
			"approved_at":     nil,
			"updated_at":      time.Now(),
		}),
	}).Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	// Re-read so the response carries the persisted record on resubmission.
	db.Where("student_id = ? AND course_id = ? AND module_id = ?", userID, courseID, module.ID).First(&assignment)

	moduleKey := strconv.Itoa(int(module.ID))
	record.AssignmentSubmissionDates[moduleKey] = time.Now().UTC().Format(time.RFC3339)
	if err := db.Save(record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment submitted successfully!", assignment)
}

// ReviewAssignment lets staff approve or reject a submission. Approval
// stamps the audit trail either way; the next module unlocks only when the
// course's unlock rule passes.
func ReviewAssignment(c *fiber.Ctx) error {
	reviewerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(int)

	reqData, ok := c.Locals("validatedReview").(*courseValidator.ReviewPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var assignment courseModels.ModuleAssignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	moduleIndex, module, err := resolveModuleIndex(db, assignment.CourseID, assignment.ModuleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	assignment.Status = reqData.Status
	assignment.Feedback = reqData.Feedback
	assignment.Score = reqData.Score

	unlocked := false

	if reqData.Status == courseModels.AssignmentApproved {
		now := time.Now()
		assignment.ApprovedBy = &reviewerID
		assignment.ApprovedAt = &now

		config := accessConfigForCourse(assignment.CourseID)
		shouldUnlock := progression.ShouldUnlock(config.AutoUnlockEnabled, config.AutoUnlockScoreThreshold, reqData.Score)

		record, err := ensureModuleProgress(db, assignment.StudentID, assignment.CourseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load progress!", nil)
		}

		// Approval is always recorded, whether or not the unlock fires.
		moduleKey := strconv.Itoa(int(assignment.ModuleID))
		record.ApprovalDates[moduleKey] = now.UTC().Format(time.RFC3339)
		record.ApprovedByMap[moduleKey] = reviewerID

		if shouldUnlock {
			record.UnlockedModules.Add(moduleIndex + 1)
			if record.CurrentModuleIndex < moduleIndex+1 {
				record.CurrentModuleIndex = moduleIndex + 1
			}
			unlocked = true
		}

		if err := db.Save(record).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
		}
	} else {
		// Rejection clears any prior approval marks; the student may resubmit.
		assignment.ApprovedBy = nil
		assignment.ApprovedAt = nil
	}

	if err := db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review!", nil)
	}

	if reqData.Status == courseModels.AssignmentApproved {
		message := fmt.Sprintf("Your assignment for %q was approved.", module.Title)
		if unlocked {
			message += " The next module is now unlocked."
		} else {
			message += " The next module stays locked until the score requirement is met."
		}
		utils.SendNotification(assignment.StudentID, utils.NotificationPayload{
			Type:    models.NotificationAssignmentReviewed,
			Title:   "Assignment approved",
			Message: message,
		})
	}

	var student models.User
	if err := db.Select("name, email").First(&student, assignment.StudentID).Error; err == nil && student.Email != "" {
		go utils.SendReviewEmail(student.Email, student.Name, module.Title, assignment.Status, unlocked)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment reviewed!", fiber.Map{
		"assignment":      assignment,
		"module_unlocked": unlocked,
	})
}

// GetPendingAssignments lists submissions awaiting review, for staff.
func GetPendingAssignments(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var assignments []courseModels.ModuleAssignment
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = ?", courseModels.AssignmentPending, false).
		Order("created_at asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending assignments fetched!", fiber.Map{
		"assignments": assignments,
		"total":       len(assignments),
	})
}

// accessConfigForCourse loads the course's unlock rule, falling back to the
// defaults (auto-unlock off, threshold 80) when none is stored.
func accessConfigForCourse(courseID uint) courseModels.ModuleAccessConfig {
	var config courseModels.ModuleAccessConfig
	if err := database.Database.Db.Where("course_id = ?", courseID).First(&config).Error; err != nil {
		return courseModels.ModuleAccessConfig{
			CourseID:                 courseID,
			AutoUnlockEnabled:        false,
			AutoUnlockScoreThreshold: progression.DefaultUnlockScoreThreshold,
		}
	}
	if config.AutoUnlockScoreThreshold <= 0 {
		config.AutoUnlockScoreThreshold = progression.DefaultUnlockScoreThreshold
	}
	return config
}
