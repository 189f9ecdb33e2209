package classifier

import (
	"strings"
	"time"
)

const (
	highWindow   = 24 * time.Hour
	mediumWindow = 7 * 24 * time.Hour
)

// AssignPriority checks, in order: high keywords, due date proximity, medium keywords.
// The due date check sits between the two keyword checks on purpose; a medium keyword
// never downgrades a task due within a day.
func AssignPriority(text string, due *time.Time, now time.Time) Priority {
	if containsAny(text, highPriorityKeywords) {
		return PriorityHigh
	}

	if due != nil {
		delta := due.Sub(now)
		switch {
		case delta <= highWindow:
			return PriorityHigh
		case delta <= mediumWindow:
			return PriorityMedium
		}
	}

	if containsAny(text, mediumPriorityKeywords) {
		return PriorityMedium
	}
	return PriorityLow
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
