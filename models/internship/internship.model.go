package internship

import (
	"time"

	"gorm.io/gorm"

	"academy/progression"
)

// Internship statuses
const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
)

// Internship tracks a student through the six-stage internship program.
// Progress is derived from the current stage and the task list; it is
// recomputed on every task mutation and never edited directly.
type Internship struct {
	gorm.Model
	StudentID       uint                  `json:"student_id" gorm:"index;not null"`
	MentorID        *uint                 `json:"mentor_id"`
	Title           string                `json:"title"`
	Company         string                `json:"company"`
	Description     string                `json:"description"`
	CurrentStage    int                   `json:"current_stage" gorm:"default:1"` // 1-6
	CompletedStages progression.StringSet `json:"completed_stages" gorm:"type:jsonb"`
	Progress        int                   `json:"progress" gorm:"default:0"` // derived, 0-100
	Status          string                `json:"status" gorm:"default:'ACTIVE'"`
	StartedAt       *time.Time            `json:"started_at"`
	IsDeleted       bool                  `gorm:"default:false"`
}

// Task is a discrete unit of internship work within the current stage.
type Task struct {
	gorm.Model
	InternshipID uint       `json:"internship_id" gorm:"index;not null"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Stage        int        `json:"stage" gorm:"default:1;index"`      // stage the task was opened in
	Status       string     `json:"status" gorm:"default:'PENDING'"`   // PENDING, IN_PROGRESS, COMPLETED
	Priority     string     `json:"priority" gorm:"default:'MEDIUM'"`  // LOW, MEDIUM, HIGH
	DueDate      *time.Time `json:"due_date"`
	IsDeleted    bool       `gorm:"default:false"`
}
