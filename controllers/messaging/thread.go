package messagingController

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy/database"
	"academy/middleware"
	"academy/models"
	messagingValidator "academy/validators/messaging"
)

// OpenThread starts a new thread with an initial message.
func OpenThread(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedThread").(*messagingValidator.ThreadPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var thread models.MessageThread
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		thread = models.MessageThread{
			UserID:   userId,
			Subject:  reqData.Subject,
			Category: reqData.Category,
			Status:   models.ThreadOpen,
		}
		if thread.Category == "" {
			thread.Category = "GENERAL"
		}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}

		message := models.ThreadMessage{
			ThreadID:   thread.ID,
			SenderID:   userId,
			SenderRole: role,
			Body:       reqData.Body,
		}
		return tx.Create(&message).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Thread opened successfully!", thread)
}

// ReplyToThread appends a message to an open thread. Students may only
// reply to their own threads; staff may reply to any.
func ReplyToThread(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	threadID := c.Locals("threadID").(int)

	reqData, ok := c.Locals("validatedMessage").(*messagingValidator.MessagePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var thread models.MessageThread
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", threadID, false).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	if thread.Status == models.ThreadClosed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thread is closed!", nil)
	}

	if thread.UserID != userId && !models.IsStaffRole(role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	message := models.ThreadMessage{
		ThreadID:   thread.ID,
		SenderID:   userId,
		SenderRole: role,
		Body:       reqData.Body,
	}
	if err := database.Database.Db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", message)
}

// CloseThread marks a thread closed. Staff only.
func CloseThread(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	threadID := c.Locals("threadID").(int)

	var thread models.MessageThread
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", threadID, false).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	thread.Status = models.ThreadClosed
	if err := database.Database.Db.Save(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to close thread!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thread closed successfully!", thread)
}

// GetMyThreads lists the authenticated user's threads. Staff see all threads.
func GetMyThreads(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	query := database.Database.Db.Where("is_deleted = ?", false)
	if !models.IsStaffRole(role) {
		query = query.Where("user_id = ?", userId)
	}

	var threads []models.MessageThread
	if err := query.Order("updated_at desc").Find(&threads).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch threads!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Threads fetched successfully!", threads)
}

// GetThreadMessages returns a thread and its messages.
func GetThreadMessages(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	threadID := c.Locals("threadID").(int)

	var thread models.MessageThread
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", threadID, false).First(&thread).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Thread not found!", nil)
	}

	if thread.UserID != userId && !models.IsStaffRole(role) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	var messages []models.ThreadMessage
	database.Database.Db.Where("thread_id = ? AND is_deleted = ?", thread.ID, false).Order("created_at asc").Find(&messages)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully!", fiber.Map{
		"thread":   thread,
		"messages": messages,
	})
}

// GetMyNotifications lists the authenticated user's notifications and marks
// nothing read; reads are explicit.
func GetMyNotifications(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").
		Limit(50).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}

// MarkNotificationRead marks a single notification as read.
func MarkNotificationRead(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", notificationID, userId, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	notification.IsRead = true
	if err := database.Database.Db.Save(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", notification)
}
