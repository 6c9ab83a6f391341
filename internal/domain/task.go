// Package domain defines the core business entities and errors.
package domain

import (
	"time"
	"unicode/utf8"
)

// Limits applied to task text fields. Sanitization truncates to these
// bounds, so Validate only rejects values that bypassed sanitization.
const (
	TitleMaxRunes       = 255
	DescriptionMaxRunes = 5000
)

// Task is the sole persisted entity: a titled, optionally described,
// timestamped record. ID is assigned by storage on insert and immutable
// afterwards; CreatedAt is set once, in UTC, and never mutated.
type Task struct {
	ID          int64
	Title       string
	Description string
	CreatedBy   *int64
	CreatedAt   time.Time
}

// Validate checks that the task satisfies the persisted-row invariants.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(t.Title) > TitleMaxRunes {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(t.Description) > DescriptionMaxRunes {
		return ErrDescriptionTooLong
	}
	return nil
}
