package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeProgressStageThreeExample(t *testing.T) {
	// Stage 3 of 6 with 2 of 4 tasks done: 33.33 base + 8.33 stage share.
	assert.Equal(t, 42, RecomputeProgress(6, 3, 4, 2))
}

func TestRecomputeProgressNoTasks(t *testing.T) {
	assert.Equal(t, 0, RecomputeProgress(6, 1, 0, 0))
	assert.Equal(t, 33, RecomputeProgress(6, 3, 0, 0))
}

func TestRecomputeProgressCapsAtHundred(t *testing.T) {
	assert.Equal(t, 100, RecomputeProgress(6, 6, 3, 3))
	assert.Equal(t, 100, RecomputeProgress(6, 7, 10, 10))
}

func TestRecomputeProgressMonotonicWithinStage(t *testing.T) {
	prev := -1
	for completed := 0; completed <= 8; completed++ {
		p := RecomputeProgress(6, 4, 8, completed)
		assert.GreaterOrEqual(t, p, prev, "completing a task must never lower progress")
		prev = p
	}
}

func TestRecomputeProgressDefensiveInputs(t *testing.T) {
	assert.Equal(t, 0, RecomputeProgress(0, 3, 4, 2))
	assert.Equal(t, 8, RecomputeProgress(6, 0, 4, 2), "stage below one is treated as stage one")
}

func TestCountCompleted(t *testing.T) {
	statuses := []string{TaskPending, TaskCompleted, TaskInProgress, TaskCompleted}
	assert.Equal(t, 2, CountCompleted(statuses))
	assert.Equal(t, 0, CountCompleted(nil))
}
