package internshipValidator

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"academy/middleware"
	"academy/progression"
)

var validate = validator.New()

func paramInt(c *fiber.Ctx, param, key string) (bool, error) {
	value, err := strconv.Atoi(c.Params(param))
	if err != nil || value < 1 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}
	c.Locals(key, value)
	return true, nil
}

// InternshipPayload is the body for internship registration.
type InternshipPayload struct {
	StudentID   uint       `json:"student_id" validate:"required"`
	MentorID    *uint      `json:"mentor_id"`
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Company     string     `json:"company" validate:"required,min=2,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	StartedAt   *time.Time `json:"started_at"`
}

// CreateInternship validates internship registration requests.
func CreateInternship() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(InternshipPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInternship", reqData)
		return c.Next()
	}
}

// InternshipParam validates the internship route parameter.
func InternshipParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "internship_id", "internshipID"); !ok {
			return err
		}
		return c.Next()
	}
}

// ProjectParam validates the project route parameter.
func ProjectParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "project_id", "projectID"); !ok {
			return err
		}
		return c.Next()
	}
}

// TaskPayload is the body for adding a task.
type TaskPayload struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date"`
}

// AddTask validates task creation requests.
func AddTask() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TaskPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTask", reqData)
		return c.Next()
	}
}

// TaskStatusPayload is the body for task status changes.
type TaskStatusPayload struct {
	Status string `json:"status"`
}

// UpdateTaskStatus validates task status change requests.
func UpdateTaskStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "task_id", "taskID"); !ok {
			return err
		}

		reqData := new(TaskStatusPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Status {
		case progression.TaskPending, progression.TaskInProgress, progression.TaskCompleted:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be PENDING, IN_PROGRESS or COMPLETED!",
			})
		}

		c.Locals("validatedTaskStatus", reqData)
		return c.Next()
	}
}

// ProjectPayload is the body for project registration.
type ProjectPayload struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"max=2000"`
	RepoURL     string `json:"repo_url" validate:"omitempty,url"`
}

// CreateProject validates project registration requests.
func CreateProject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProjectPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProject", reqData)
		return c.Next()
	}
}
