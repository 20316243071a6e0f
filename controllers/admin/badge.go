package adminController

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/utils"
	adminValidator "academy/validators/admin"
)

// CreateBadge registers a new badge.
func CreateBadge(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBadge").(*adminValidator.BadgePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	badge := models.Badge{
		Name:        reqData.Name,
		Description: reqData.Description,
		IconURL:     reqData.IconURL,
	}

	if err := database.Database.Db.Create(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Badge already exists!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Badge created successfully!", badge)
}

// AwardBadge awards one badge to a batch of users inside a single
// transaction. Either every listed user gets the badge or none do.
func AwardBadge(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAward").(*adminValidator.AwardPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var badge models.Badge
	if err := db.Where("id = ? AND is_deleted = ?", reqData.BadgeID, false).First(&badge).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Badge not found!", nil)
	}

	now := time.Now()
	awarded := make([]models.UserBadge, 0, len(reqData.UserIDs))

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, userID := range reqData.UserIDs {
			var user models.User
			if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
				return fmt.Errorf("user %d not found", userID)
			}

			var existing models.UserBadge
			if err := tx.Where("user_id = ? AND badge_id = ? AND is_deleted = ?", userID, badge.ID, false).First(&existing).Error; err == nil {
				// Already holds the badge, skip silently.
				continue
			}

			record := models.UserBadge{
				UserID:    userID,
				BadgeID:   badge.ID,
				AwardedBy: adminID,
				AwardedAt: now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			awarded = append(awarded, record)
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to award badge: "+err.Error(), nil)
	}

	for _, record := range awarded {
		utils.SendNotification(record.UserID, utils.NotificationPayload{
			Type:    models.NotificationBadgeAwarded,
			Title:   "Badge awarded",
			Message: "You earned the \"" + badge.Name + "\" badge!",
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badge awarded successfully!", fiber.Map{
		"badge":   badge,
		"awarded": len(awarded),
	})
}

// GetUserBadges lists badges held by the authenticated user.
func GetUserBadges(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type BadgeWithAward struct {
		models.Badge
		AwardedAt time.Time `json:"awarded_at"`
	}

	var badges []BadgeWithAward
	err := database.Database.Db.Model(&models.Badge{}).
		Select("badges.*, user_badges.awarded_at").
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ? AND user_badges.is_deleted = ? AND badges.is_deleted = ?", userId, false, false).
		Order("user_badges.awarded_at desc").
		Scan(&badges).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", badges)
}
