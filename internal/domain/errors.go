package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyTitle is returned when a task title is empty after sanitization.
	ErrEmptyTitle = errors.New("title is required")

	// ErrTitleTooLong is returned when a title exceeds TitleMaxRunes.
	ErrTitleTooLong = errors.New("title too long")

	// ErrDescriptionTooLong is returned when a description exceeds DescriptionMaxRunes.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNoFields is returned when a partial update submits no recognized field.
	ErrNoFields = errors.New("nothing to update")

	// ErrInvalidID is returned when a task ID is not a positive integer.
	ErrInvalidID = errors.New("invalid task ID")
)
