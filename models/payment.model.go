package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentFailed  = "FAILED"
	PaymentExpired = "EXPIRED"
)

// CoursePayment is a course-fee checkout handled through the payment gateway.
type CoursePayment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	OrderID     string     `json:"order_id" gorm:"unique;not null"` // gateway order reference
	Amount      int64      `json:"amount"`
	SnapToken   string     `json:"snap_token"`
	RedirectURL string     `json:"redirect_url"`
	Status      string     `json:"status" gorm:"default:'PENDING'"` // PENDING, PAID, FAILED, EXPIRED
	PaidAt      *time.Time `json:"paid_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
