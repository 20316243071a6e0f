package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"academy/database"
	"academy/middleware"
	internshipModels "academy/models/internship"
	"academy/progression"
	internshipValidator "academy/validators/internship"
)

func recomputeProjectProgress(record *internshipModels.Project) error {
	db := database.Database.Db

	var tasks []internshipModels.ProjectTask
	if err := db.Where("project_id = ? AND stage = ? AND is_deleted = ?", record.ID, record.CurrentStage, false).Find(&tasks).Error; err != nil {
		return err
	}

	statuses := make([]string, len(tasks))
	for i, task := range tasks {
		statuses[i] = task.Status
	}

	record.Progress = progression.RecomputeProgress(progression.StageCount, record.CurrentStage, len(tasks), progression.CountCompleted(statuses))
	return db.Save(record).Error
}

// CreateProject registers a project for the authenticated student.
func CreateProject(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProject").(*internshipValidator.ProjectPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	record := internshipModels.Project{
		StudentID:       userID,
		Title:           reqData.Title,
		Description:     reqData.Description,
		RepoURL:         reqData.RepoURL,
		CurrentStage:    1,
		CompletedStages: progression.NewStringSet(),
		Status:          internshipModels.StatusActive,
	}

	if err := database.Database.Db.Create(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create project!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Project created successfully!", record)
}

// GetMyProjects lists the authenticated student's projects.
func GetMyProjects(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var projects []internshipModels.Project
	if err := database.Database.Db.Where("student_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&projects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch projects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Projects fetched successfully!", projects)
}

// AddProjectTask adds a task to a project and recomputes progress.
func AddProjectTask(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("projectID").(int)

	reqData, ok := c.Locals("validatedTask").(*internshipValidator.TaskPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var record internshipModels.Project
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", projectID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	task := internshipModels.ProjectTask{
		ProjectID:   uint(projectID),
		Title:       reqData.Title,
		Description: reqData.Description,
		Stage:       record.CurrentStage,
		Status:      progression.TaskPending,
		Priority:    reqData.Priority,
	}
	if task.Priority == "" {
		task.Priority = "MEDIUM"
	}

	if err := database.Database.Db.Create(&task).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create task!", nil)
	}

	if err := recomputeProjectProgress(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Task added successfully!", fiber.Map{
		"task":     task,
		"progress": record.Progress,
	})
}

// UpdateProjectTaskStatus changes a project task's status and recomputes progress.
func UpdateProjectTaskStatus(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("projectID").(int)
	taskID := c.Locals("taskID").(int)

	reqData, ok := c.Locals("validatedTaskStatus").(*internshipValidator.TaskStatusPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var record internshipModels.Project
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", projectID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	var task internshipModels.ProjectTask
	if err := database.Database.Db.Where("id = ? AND project_id = ? AND is_deleted = ?", taskID, projectID, false).First(&task).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Task not found!", nil)
	}

	task.Status = reqData.Status
	if err := database.Database.Db.Save(&task).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update task!", nil)
	}

	if err := recomputeProjectProgress(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task updated successfully!", fiber.Map{
		"task":     task,
		"progress": record.Progress,
	})
}

// AdvanceProjectStage moves a project to the next stage.
func AdvanceProjectStage(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	projectID := c.Locals("projectID").(int)

	var record internshipModels.Project
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", projectID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Project not found!", nil)
	}

	if record.CurrentStage >= progression.StageCount {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Project is already at the final stage!", nil)
	}

	record.CompletedStages.Add(fmt.Sprintf("stage-%d", record.CurrentStage))
	record.CurrentStage++

	if err := recomputeProjectProgress(&record); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Project stage advanced successfully!", record)
}
