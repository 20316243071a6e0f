package progression

import "math"

// StageCount is the number of fixed phases in the internship/project
// program lifecycle.
const StageCount = 6

// Task statuses shared by internship and project task lists.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)

// RecomputeProgress derives the 0-100 completion percentage for a stage-based
// program. Completed stages contribute a fixed share each; the current
// stage contributes proportionally to its completed task fraction, so stages
// with wildly different task counts weigh the same.
func RecomputeProgress(stageCount, currentStage, totalTasks, completedTasks int) int {
	if stageCount <= 0 {
		return 0
	}
	if currentStage < 1 {
		currentStage = 1
	}
	base := float64(currentStage-1) / float64(stageCount) * 100

	fraction := 0.0
	if totalTasks > 0 {
		fraction = float64(completedTasks) / float64(totalTasks)
	}
	contribution := fraction * (100 / float64(stageCount))

	progress := int(math.Round(base + contribution))
	if progress > 100 {
		progress = 100
	}
	return progress
}

// CountCompleted counts tasks whose status is COMPLETED.
func CountCompleted(statuses []string) int {
	n := 0
	for _, s := range statuses {
		if s == TaskCompleted {
			n++
		}
	}
	return n
}
