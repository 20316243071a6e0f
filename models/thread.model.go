package models

import "gorm.io/gorm"

// Thread statuses
const (
	ThreadOpen   = "OPEN"
	ThreadClosed = "CLOSED"
)

// MessageThread is a conversation a student opens with staff.
type MessageThread struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	Subject   string `json:"subject"`
	Category  string `json:"category" gorm:"default:'GENERAL'"`
	Status    string `json:"status" gorm:"default:'OPEN'"` // OPEN, CLOSED
	IsDeleted bool   `gorm:"default:false"`
}

// ThreadMessage is a single message within a thread.
type ThreadMessage struct {
	gorm.Model
	ThreadID   uint   `json:"thread_id" gorm:"index;not null"`
	SenderID   uint   `json:"sender_id" gorm:"not null"`
	SenderRole string `json:"sender_role"`
	Body       string `json:"body" gorm:"type:text"`
	IsDeleted  bool   `gorm:"default:false"`
}
