package progression

// DefaultUnlockScoreThreshold is the score an approved assignment must reach
// before the next module unlocks when auto-unlock is enabled for a course.
const DefaultUnlockScoreThreshold = 80

// Access is the outcome of a module access check. When Allowed is false,
// RedirectIndex is the module the client should route the student back to.
type Access struct {
	Allowed       bool `json:"allowed"`
	RedirectIndex int  `json:"redirect_index"`
}

// EffectiveUnlocked is the union of rule-based and staff-override unlocks;
// the set actually consulted for access checks.
func EffectiveUnlocked(unlocked, override IntSet) IntSet {
	return unlocked.Union(override)
}

// CheckAccess reports whether moduleIndex is reachable for a student whose
// progress record holds the given sets and current module index.
func CheckAccess(unlocked, override IntSet, currentModuleIndex, moduleIndex int) Access {
	if EffectiveUnlocked(unlocked, override).Has(moduleIndex) {
		return Access{Allowed: true, RedirectIndex: moduleIndex}
	}
	redirect := currentModuleIndex - 1
	if redirect < 0 {
		redirect = 0
	}
	return Access{Allowed: false, RedirectIndex: redirect}
}

// MissingPrerequisites returns the required lesson ids not yet completed,
// in lexical order. Empty means the assignment may be submitted.
func MissingPrerequisites(required []string, completed StringSet) []string {
	missing := NewStringSet()
	for _, id := range required {
		if !completed.Has(id) {
			missing.Add(id)
		}
	}
	return missing.Values()
}

// ShouldUnlock decides whether an approved assignment unlocks the next
// module. With auto-unlock disabled, approval alone is enough. With it
// enabled, the recorded score must clear the threshold; a missing score
// counts as not clearing it.
func ShouldUnlock(autoUnlockEnabled bool, threshold int, score *int) bool {
	if !autoUnlockEnabled {
		return true
	}
	return score != nil && *score >= threshold
}

// UnlockThrough adds every index 0..target inclusive to the set. Used by the
// staff force-progress override.
func UnlockThrough(s IntSet, target int) {
	for i := 0; i <= target; i++ {
		s.Add(i)
	}
}

// CurrentIndexAfterLock computes the current module index after staff lock
// moduleIndex: unchanged if the student was working below it, otherwise reset
// to the module just before the locked one.
func CurrentIndexAfterLock(currentModuleIndex, moduleIndex int) int {
	if currentModuleIndex < moduleIndex {
		return currentModuleIndex
	}
	if moduleIndex-1 < 0 {
		return 0
	}
	return moduleIndex - 1
}
