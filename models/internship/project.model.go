package internship

import (
	"gorm.io/gorm"

	"academy/progression"
)

// Project is a student project tracked with the same stage/task progress
// model as internships.
type Project struct {
	gorm.Model
	StudentID       uint                  `json:"student_id" gorm:"index;not null"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	RepoURL         string                `json:"repo_url"`
	CurrentStage    int                   `json:"current_stage" gorm:"default:1"` // 1-6
	CompletedStages progression.StringSet `json:"completed_stages" gorm:"type:jsonb"`
	Progress        int                   `json:"progress" gorm:"default:0"` // derived, 0-100
	Status          string                `json:"status" gorm:"default:'ACTIVE'"`
	IsDeleted       bool                  `gorm:"default:false"`
}

// ProjectTask is a discrete unit of project work.
type ProjectTask struct {
	gorm.Model
	ProjectID   uint   `json:"project_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Stage       int    `json:"stage" gorm:"default:1;index"`     // stage the task was opened in
	Status      string `json:"status" gorm:"default:'PENDING'"`  // PENDING, IN_PROGRESS, COMPLETED
	Priority    string `json:"priority" gorm:"default:'MEDIUM'"` // LOW, MEDIUM, HIGH
	IsDeleted   bool   `gorm:"default:false"`
}
