package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion. The
// hourly scheduler issues these automatically once an enrollment reaches
// 100%; the unique course/user existence check keeps the job idempotent.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	CertificateURL    string    `json:"certificate_url"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
