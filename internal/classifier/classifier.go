// Package classifier turns a task's free text into a category, a priority,
// extracted entities and canned next steps using fixed keyword and pattern tables.
//
// Everything here is read-only after package init and safe for concurrent use.
package classifier

import (
	"strings"
	"time"
)

type Classifier struct {
	now func() time.Time
}

type Option func(*Classifier)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Classifier) {
		if now != nil {
			c.now = now
		}
	}
}

func New(opts ...Option) *Classifier {
	c := &Classifier{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) Classify(title, description string, due *time.Time) Result {
	return ClassifyAt(title, description, due, c.now())
}

// ClassifyAt is the pure form of Classify with the current time passed in.
func ClassifyAt(title, description string, due *time.Time, now time.Time) Result {
	lower := strings.ToLower(title + " " + description)

	category := DetectCategory(lower)
	return Result{
		Category:         category,
		Priority:         AssignPriority(lower, due, now),
		Entities:         ExtractEntities(title, description),
		SuggestedActions: SuggestActions(category),
	}
}
