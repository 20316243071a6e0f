package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCheckAccessUsesEffectiveUnlockSet(t *testing.T) {
	unlocked := NewIntSet(0, 1)
	override := NewIntSet(3)

	assert.True(t, CheckAccess(unlocked, override, 1, 0).Allowed)
	assert.True(t, CheckAccess(unlocked, override, 1, 1).Allowed)
	assert.True(t, CheckAccess(unlocked, override, 1, 3).Allowed, "staff override grants access outside the rule path")
	assert.False(t, CheckAccess(unlocked, override, 1, 2).Allowed)
}

func TestCheckAccessDenialSuggestsRedirect(t *testing.T) {
	access := CheckAccess(NewIntSet(0), NewIntSet(), 3, 5)

	assert.False(t, access.Allowed)
	assert.Equal(t, 2, access.RedirectIndex)

	// Never below module zero.
	access = CheckAccess(NewIntSet(0), NewIntSet(), 0, 5)
	assert.Equal(t, 0, access.RedirectIndex)
}

func TestMissingPrerequisites(t *testing.T) {
	completed := NewStringSet("l1", "l3")

	missing := MissingPrerequisites([]string{"l1", "l2", "l3", "l4"}, completed)
	assert.Equal(t, []string{"l2", "l4"}, missing)

	assert.Empty(t, MissingPrerequisites(nil, completed))
	assert.Empty(t, MissingPrerequisites([]string{"l1"}, completed))
}

func TestShouldUnlock(t *testing.T) {
	// Auto-unlock disabled: approval alone unlocks, score ignored.
	assert.True(t, ShouldUnlock(false, 80, nil))
	assert.True(t, ShouldUnlock(false, 80, intPtr(10)))

	// Auto-unlock enabled: score must clear the threshold.
	assert.False(t, ShouldUnlock(true, 80, intPtr(75)))
	assert.True(t, ShouldUnlock(true, 80, intPtr(85)))
	assert.True(t, ShouldUnlock(true, 80, intPtr(80)))

	// Missing score counts as not passing when the gate is on.
	assert.False(t, ShouldUnlock(true, 80, nil))
}

func TestUnlockThrough(t *testing.T) {
	s := NewIntSet(0)
	UnlockThrough(s, 3)
	assert.Equal(t, []int{0, 1, 2, 3}, s.Values())

	// Idempotent.
	UnlockThrough(s, 3)
	assert.Equal(t, []int{0, 1, 2, 3}, s.Values())
}

func TestCurrentIndexAfterLock(t *testing.T) {
	assert.Equal(t, 1, CurrentIndexAfterLock(3, 2), "locking at or below the current module resets it")
	assert.Equal(t, 1, CurrentIndexAfterLock(2, 2))
	assert.Equal(t, 1, CurrentIndexAfterLock(1, 2), "locking ahead leaves the current module alone")
	assert.Equal(t, 0, CurrentIndexAfterLock(0, 0))
}
