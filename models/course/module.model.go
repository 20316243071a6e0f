package course

import "gorm.io/gorm"

// Module represents a section/module within a course. The stored ID is the
// only module identity; OrderIndex orders modules in the course but never
// identifies them, so reordering cannot corrupt recorded unlock state.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsDeleted   bool   `gorm:"default:false"`
}

// Lesson kinds. ASSIGNMENT and QUIZ lessons must be completed before the
// module assignment can be submitted.
const (
	LessonText       = "TEXT"
	LessonVideo      = "VIDEO"
	LessonAssignment = "ASSIGNMENT"
	LessonQuiz       = "QUIZ"
)

// Lesson represents a content unit within a module.
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Kind        string `json:"kind" gorm:"default:'TEXT'"` // TEXT, VIDEO, ASSIGNMENT, QUIZ
	TextContent string `json:"text_content" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// RequiresCompletionBeforeAssignment reports whether the lesson gates the
// module assignment.
func (l Lesson) RequiresCompletionBeforeAssignment() bool {
	return l.Kind == LessonAssignment || l.Kind == LessonQuiz
}
