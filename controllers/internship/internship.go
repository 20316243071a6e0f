package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/middleware"
	"academy/models"
	internshipModels "academy/models/internship"
	"academy/progression"
	internshipValidator "academy/validators/internship"
)

// recomputeInternshipProgress rederives the progress percentage from the
// current stage and its task list and persists it. Called after every task
// mutation and on stage promotion. Only tasks opened in the current stage
// count toward the fraction, so a fresh stage starts with no task credit.
func recomputeInternshipProgress(record *internshipModels.Internship) error {
	db := database.Database.Db

	var tasks []internshipModels.Task
	if err := db.Where("internship_id = ? AND stage = ? AND is_deleted = ?", record.ID, record.CurrentStage, false).Find(&tasks).Error; err != nil {
		return err
	}

	statuses := make([]string, len(tasks))
	for i, task := range tasks {
		statuses[i] = task.Status
	}

	record.Progress = progression.RecomputeProgress(progression.StageCount, record.CurrentStage, len(tasks), progression.CountCompleted(statuses))
	return db.Save(record).Error
}

// CreateInternship registers an internship for a student, starting at stage 1.
func CreateInternship(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedInternship").(*internshipValidator.InternshipPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.StudentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	now := time.Now()
	record := internshipModels.Internship{
		StudentID:       reqData.StudentID,
		MentorID:        reqData.MentorID,
		Title:           reqData.Title,
		Company:         reqData.Company,
		Description:     reqData.Description,
		CurrentStage:    1,
		CompletedStages: progression.NewStringSet(),
		Status:          internshipModels.StatusActive,
		StartedAt:       &now,
	}

	if err := database.Database.Db.Create(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create internship!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Internship created successfully!", record)
}

// GetInternship returns an internship with its task list.
func GetInternship(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	internshipID := c.Locals("internshipID").(int)

	var record internshipModels.Internship
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", internshipID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Internship not found!", nil)
	}

	var tasks []internshipModels.Task
	database.Database.Db.Where("internship_id = ? AND is_deleted = ?", internshipID, false).Order("created_at asc").Find(&tasks)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Internship fetched successfully!", fiber.Map{
		"internship": record,
		"tasks":      tasks,
	})
}

// AddTask adds a task to an internship and recomputes progress.
func AddTask(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	internshipID := c.Locals("internshipID").(int)

	reqData, ok := c.Locals("validatedTask").(*internshipValidator.TaskPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var record internshipModels.Internship
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", internshipID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Internship not found!", nil)
	}

	task := internshipModels.Task{
		InternshipID: uint(internshipID),
		Title:        reqData.Title,
		Description:  reqData.Description,
		Stage:        record.CurrentStage,
		Status:       progression.TaskPending,
		Priority:     reqData.Priority,
		DueDate:      reqData.DueDate,
	}
	if task.Priority == "" {
		task.Priority = "MEDIUM"
	}

	if err := database.Database.Db.Create(&task).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create task!", nil)
	}

	if err := recomputeInternshipProgress(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Task added successfully!", fiber.Map{
		"task":     task,
		"progress": record.Progress,
	})
}

// UpdateTaskStatus changes a task's status and recomputes progress.
func UpdateTaskStatus(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	internshipID := c.Locals("internshipID").(int)
	taskID := c.Locals("taskID").(int)

	reqData, ok := c.Locals("validatedTaskStatus").(*internshipValidator.TaskStatusPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var record internshipModels.Internship
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", internshipID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Internship not found!", nil)
	}

	var task internshipModels.Task
	if err := database.Database.Db.Where("id = ? AND internship_id = ? AND is_deleted = ?", taskID, internshipID, false).First(&task).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Task not found!", nil)
	}

	task.Status = reqData.Status
	if err := database.Database.Db.Save(&task).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update task!", nil)
	}

	if err := recomputeInternshipProgress(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task updated successfully!", fiber.Map{
		"task":     task,
		"progress": record.Progress,
	})
}

// PromoteIntern advances the internship to the next stage. The current
// stage is recorded as completed and progress rebases against the new stage,
// so the percentage can jump discontinuously here.
func PromoteIntern(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	internshipID := c.Locals("internshipID").(int)

	var record internshipModels.Internship
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", internshipID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Internship not found!", nil)
	}

	if record.CurrentStage >= progression.StageCount {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Internship is already at the final stage!", nil)
	}

	record.CompletedStages.Add(fmt.Sprintf("stage-%d", record.CurrentStage))
	record.CurrentStage++

	if err := recomputeInternshipProgress(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Intern promoted successfully!", record)
}
