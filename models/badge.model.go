package models

import (
	"time"

	"gorm.io/gorm"
)

// Badge is an achievement admins can award to users.
type Badge struct {
	gorm.Model
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
	IsDeleted   bool   `gorm:"default:false"`
}

// UserBadge records a badge awarded to a user. The unique pair keeps the
// batch award idempotent per user.
type UserBadge struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_badge;not null"`
	BadgeID   uint      `json:"badge_id" gorm:"uniqueIndex:idx_user_badge;not null"`
	AwardedBy uint      `json:"awarded_by"`
	AwardedAt time.Time `json:"awarded_at"`
	IsDeleted bool      `gorm:"default:false"`
}
