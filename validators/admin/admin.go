package adminValidator

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"academy/middleware"
)

var validate = validator.New()

// BadgePayload is the body for badge creation.
type BadgePayload struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	IconURL     string `json:"icon_url" validate:"omitempty,url"`
}

// CreateBadge validates badge creation requests.
func CreateBadge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BadgePayload)
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

		c.Locals("validatedBadge", reqData)
		return c.Next()
	}
}

// AwardPayload is the body for the batch badge award.
type AwardPayload struct {
	BadgeID uint   `json:"badge_id" validate:"required"`
	UserIDs []uint `json:"user_ids" validate:"required,min=1,dive,required"`
}

// AwardBadge validates batch badge award requests.
func AwardBadge() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AwardPayload)
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

		c.Locals("validatedAward", reqData)
		return c.Next()
	}
}

// TargetUserParam validates the user route parameter on admin user management.
func TargetUserParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, err := strconv.Atoi(c.Params("user_id"))
		if err != nil || value < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user_id!", nil)
		}
		c.Locals("targetUserID", value)
		return c.Next()
	}
}

// List validates pagination query parameters for admin listings.
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page == nil || *reqData.Page < 1 {
			defaultPage := 1
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			defaultLimit := 10
			reqData.Limit = &defaultLimit
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
