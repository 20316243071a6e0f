package messagingValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"academy/middleware"
)

func paramInt(c *fiber.Ctx, param, key string) (bool, error) {
	value, err := strconv.Atoi(c.Params(param))
	if err != nil || value < 1 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+"!", nil)
	}
	c.Locals(key, value)
	return true, nil
}

// ThreadPayload is the body for opening a thread.
type ThreadPayload struct {
	Subject  string `json:"subject"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

// OpenThread validates thread creation requests.
func OpenThread() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ThreadPayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if len(strings.TrimSpace(reqData.Subject)) < 3 {
			errors["subject"] = "Subject must be at least 3 characters!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Message body is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedThread", reqData)
		return c.Next()
	}
}

// MessagePayload is the body for a thread reply.
type MessagePayload struct {
	Body string `json:"body"`
}

// ReplyToThread validates thread replies.
func ReplyToThread() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "thread_id", "threadID"); !ok {
			return err
		}

		reqData := new(MessagePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Body) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"body": "Message body is required!",
			})
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}

// ThreadParam validates the thread route parameter.
func ThreadParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "thread_id", "threadID"); !ok {
			return err
		}
		return c.Next()
	}
}

// NotificationParam validates the notification route parameter.
func NotificationParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramInt(c, "notification_id", "notificationID"); !ok {
			return err
		}
		return c.Next()
	}
}
