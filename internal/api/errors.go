package api

import (
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Gate errors raised when a settings toggle forbids the requested action.
// These are server-side gates, not UI hints: a client bypassing the UI is
// still rejected.
var (
	ErrEditingDisabled  = errors.New("editing tasks is disabled")
	ErrDeletionDisabled = errors.New("deleting tasks is disabled")
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Every
// error kind maps to exactly one status; anything unrecognized is a storage
// or programming fault and becomes a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	// Caller-fixable input errors
	case errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrTitleTooLong),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrNoFields),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Settings gates
	case errors.Is(err, ErrEditingDisabled),
		errors.Is(err, ErrDeletionDisabled):
		return http.StatusForbidden

	// Missing rows
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Storage faults and everything else
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the stable client-facing message for an
// error. Raw error text never reaches clients; it can carry SQL fragments
// or connection details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, domain.ErrEmptyTitle):
		return "Title is required"

	case errors.Is(err, domain.ErrTitleTooLong):
		return "Title is too long"

	case errors.Is(err, domain.ErrDescriptionTooLong):
		return "Description is too long"

	case errors.Is(err, domain.ErrNoFields):
		return "Nothing to update"

	case errors.Is(err, domain.ErrInvalidID):
		return "Bad ID"

	case errors.Is(err, ErrEditingDisabled):
		return "Editing from the list is disabled by settings."

	case errors.Is(err, ErrDeletionDisabled):
		return "Deleting from the list is disabled by settings."

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrInsertFailed):
		return "Failed to create task"

	case errors.Is(err, store.ErrUpdateFailed):
		return "Failed to update task"

	case errors.Is(err, store.ErrDeleteFailed):
		return "Failed to delete task"

	default:
		return "An unexpected error occurred"
	}
}
