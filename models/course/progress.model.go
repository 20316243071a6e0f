package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"academy/progression"
)

// ModuleProgress tracks a student's position in a course, one record per
// (student, course). Module zero is unlocked on creation and access checks
// consult the union of UnlockedModules and OverrideUnlockedModules. The
// date/actor maps are an audit trail only; they never drive unlock logic.
type ModuleProgress struct {
	gorm.Model
	StudentID          uint                  `json:"student_id" gorm:"uniqueIndex:idx_module_progress;not null"`
	CourseID           uint                  `json:"course_id" gorm:"uniqueIndex:idx_module_progress;not null"`
	CurrentModuleIndex int                   `json:"current_module_index" gorm:"default:0"`
	CompletedLessons   progression.StringSet `json:"completed_lessons" gorm:"type:jsonb"`
	UnlockedModules    progression.IntSet    `json:"unlocked_modules" gorm:"type:jsonb"`
	OverrideUnlocked   progression.IntSet    `json:"override_unlocked_modules" gorm:"column:override_unlocked_modules;type:jsonb"`

	LessonCompletionDates     datatypes.JSONMap `json:"lesson_completion_dates"`
	AssignmentSubmissionDates datatypes.JSONMap `json:"assignment_submission_dates"`
	ApprovalDates             datatypes.JSONMap `json:"approval_dates"`
	ApprovedByMap             datatypes.JSONMap `json:"approved_by_map"`
}

// NewModuleProgress builds the default record created lazily on the first
// progression call for a (student, course) pair.
func NewModuleProgress(studentID, courseID uint) ModuleProgress {
	return ModuleProgress{
		StudentID:                 studentID,
		CourseID:                  courseID,
		CurrentModuleIndex:        0,
		CompletedLessons:          progression.NewStringSet(),
		UnlockedModules:           progression.NewIntSet(0),
		OverrideUnlocked:          progression.NewIntSet(),
		LessonCompletionDates:     datatypes.JSONMap{},
		AssignmentSubmissionDates: datatypes.JSONMap{},
		ApprovalDates:             datatypes.JSONMap{},
		ApprovedByMap:             datatypes.JSONMap{},
	}
}
