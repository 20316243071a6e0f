package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"academy/middleware"
	courseModels "academy/models/course"
)

// CoursePayload is the body for creating a course.
type CoursePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Duration    int64  `json:"duration"`
	Price       int64  `json:"price"` // 0 means free
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ModulePayload is the body for creating a module.
type ModulePayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}

		reqData := new(ModulePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must not be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// LessonPayload is the body for creating a lesson.
type LessonPayload struct {
	Title       string `json:"title"`
	Kind        string `json:"kind"`
	TextContent string `json:"text_content"`
	VideoURL    string `json:"video_url"`
	OrderIndex  int    `json:"order_index"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "module_id", "moduleID"); !ok {
			return err
		}

		reqData := new(LessonPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		switch reqData.Kind {
		case "":
			reqData.Kind = courseModels.LessonText
		case courseModels.LessonText, courseModels.LessonVideo, courseModels.LessonAssignment, courseModels.LessonQuiz:
		default:
			errors["kind"] = "Kind must be TEXT, VIDEO, ASSIGNMENT or QUIZ!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// List validates pagination query parameters.
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
