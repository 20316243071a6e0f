package courseValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"academy/middleware"
)

var validate = validator.New()

// SubmitAssignment validates a student submission: the module must resolve
// and at least one of submission_link / file_url must be present.
func SubmitAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}
		if ok, err := paramInt(c, "module_id", "moduleID"); !ok {
			return err
		}

		reqData := new(struct {
			SubmissionLink string `json:"submission_link"`
			FileURL        string `json:"file_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.SubmissionLink) == "" && strings.TrimSpace(reqData.FileURL) == "" {
			errors["submission"] = "Either submission_link or file_url is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// ReviewPayload is the body of a staff assignment review.
type ReviewPayload struct {
	Status   string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Feedback string `json:"feedback"`
	Score    *int   `json:"score" validate:"omitempty,min=0,max=100"`
}

// ReviewAssignment validates a staff review request.
func ReviewAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "assignment_id", "assignmentID"); !ok {
			return err
		}

		reqData := new(ReviewPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Status":
					errors["status"] = "Status must be APPROVED or REJECTED!"
				case "Score":
					errors["score"] = "Score must be between 0 and 100!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

// AccessConfigPayload is the body for updating a course's unlock rule.
type AccessConfigPayload struct {
	AutoUnlockEnabled        bool `json:"auto_unlock_enabled"`
	AutoUnlockScoreThreshold *int `json:"auto_unlock_score_threshold" validate:"omitempty,min=0,max=100"`
}

// UpdateAccessConfig validates the unlock-rule update request.
func UpdateAccessConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "course_id", "courseID"); !ok {
			return err
		}

		reqData := new(AccessConfigPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"auto_unlock_score_threshold": "Threshold must be between 0 and 100!",
			})
		}

		c.Locals("validatedAccessConfig", reqData)
		return c.Next()
	}
}
