package models

import "gorm.io/gorm"

// Notification types
const (
	NotificationAssignmentReviewed = "ASSIGNMENT_REVIEWED"
	NotificationModuleUnlocked     = "MODULE_UNLOCKED"
	NotificationCertificateIssued  = "CERTIFICATE_ISSUED"
	NotificationBadgeAwarded       = "BADGE_AWARDED"
)

// Notification is a persisted in-app notification for a user.
type Notification struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
