package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"academy/config"
	"academy/database"
	"academy/models"
)

// NotificationPayload is the message body for a user notification.
type NotificationPayload struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// SendNotification persists an in-app notification and forwards it to the
// external notifier webhook when one is configured. Delivery is best-effort:
// failures are logged and never propagate to the caller, so a failed
// notification cannot fail the mutation that triggered it.
func SendNotification(userID uint, payload NotificationPayload) {
	notification := models.Notification{
		UserID:  userID,
		Type:    payload.Type,
		Title:   payload.Title,
		Message: payload.Message,
	}
	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("[NOTIFY] failed to store notification for user %d: %v", userID, err)
	}

	if config.AppConfig != nil && config.AppConfig.NotifyWebhookURL != "" {
		go postNotificationWebhook(userID, payload)
	}
}

func postNotificationWebhook(userID uint, payload NotificationPayload) {
	client := resty.New().SetTimeout(5 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"user_id": userID,
			"type":    payload.Type,
			"title":   payload.Title,
			"message": payload.Message,
		}).
		Post(config.AppConfig.NotifyWebhookURL)
	if err != nil {
		log.Printf("[NOTIFY] webhook dispatch failed for user %d: %v", userID, err)
		return
	}
	if resp.IsError() {
		log.Printf("[NOTIFY] webhook returned %d for user %d", resp.StatusCode(), userID)
	}
}
