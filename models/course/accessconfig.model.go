package course

import "gorm.io/gorm"

// ModuleAccessConfig governs the unlock rule for one course. With
// AutoUnlockEnabled, an approved assignment unlocks the next module only if
// its score clears the threshold; otherwise approval alone is enough.
type ModuleAccessConfig struct {
	gorm.Model
	CourseID                 uint `json:"course_id" gorm:"uniqueIndex;not null"`
	AutoUnlockEnabled        bool `json:"auto_unlock_enabled" gorm:"default:false"`
	AutoUnlockScoreThreshold int  `json:"auto_unlock_score_threshold" gorm:"default:80"`
}
