package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment statuses
const (
	AssignmentPending  = "PENDING"
	AssignmentApproved = "APPROVED"
	AssignmentRejected = "REJECTED"
)

// ModuleAssignment is a student's submission for a module, one active record
// per (student, course, module). Resubmission upserts onto the same row, so
// the unique triple is what prevents duplicate submissions, not application
// locking.
type ModuleAssignment struct {
	gorm.Model
	StudentID      uint       `json:"student_id" gorm:"uniqueIndex:idx_module_assignment;not null"`
	CourseID       uint       `json:"course_id" gorm:"uniqueIndex:idx_module_assignment;not null"`
	ModuleID       uint       `json:"module_id" gorm:"uniqueIndex:idx_module_assignment;not null"`
	Status         string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	SubmissionLink string     `json:"submission_link"`
	FileURL        string     `json:"file_url"`
	Score          *int       `json:"score"` // 0-100, optional
	Feedback       string     `json:"feedback" gorm:"type:text"`
	ApprovedBy     *uint      `json:"approved_by"`
	ApprovedAt     *time.Time `json:"approved_at"`
	IsDeleted      bool       `gorm:"default:false"`
}
