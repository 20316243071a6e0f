package courseValidator

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"academy/middleware"
)

// paramInt parses a positive integer route parameter into locals under key.
func paramInt(c *fiber.Ctx, param, key string) (bool, error) {
	value, err := strconv.Atoi(c.Params(param))
	if err != nil || value < 1 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}
	c.Locals(key, value)
	return true, nil
}

// MarkLessonComplete validates the course/module/lesson route parameters.
func MarkLessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "module_id", "moduleID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "lesson_id", "lessonID"); !ok {
			return err
		}
		return c.Next()
	}
}

// ModuleAccess validates the course/module route parameters.
func ModuleAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "module_id", "moduleID"); !ok {
			return err
		}
		return c.Next()
	}
}

// CourseParam validates the course route parameter.
func CourseParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}
		return c.Next()
	}
}

// StudentCourseParams validates the student/course route parameters on
// staff progress lookups.
func StudentCourseParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "user_id", "studentID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}
		return c.Next()
	}
}

// OverridePayload is the body for staff unlock/lock/force-progress calls.
type OverridePayload struct {
	ModuleIndex int `json:"module_index"`
}

// ModuleOverride validates a staff unlock/lock/force-progress request.
func ModuleOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "user_id", "studentID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}

		reqData := new(OverridePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.ModuleIndex < 0 {
			errors["module_index"] = "Module index must not be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOverride", reqData)
		return c.Next()
	}
}
