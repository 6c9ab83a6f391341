package store

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskUpdate describes a partial update. Field presence is tracked separately
// from value: a nil pointer means "not submitted", while a pointer to an
// empty string means "submitted as empty". Update semantics depend on which
// fields were submitted, not just their values.
type TaskUpdate struct {
	Title       *string
	Description *string
}

// Empty reports whether no recognized field was submitted.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil
}

// TaskStore defines CRUD primitives over the tasks table. Implementations
// carry no business rules: text arrives already sanitized, and a zero
// affected count from Update or Delete is a valid outcome, not an error.
type TaskStore interface {
	// Insert persists a new task and returns the storage-assigned ID.
	// Fails with ErrInsertFailed on a storage fault.
	Insert(ctx context.Context, title, description string, createdBy *int64) (int64, error)

	// GetByID retrieves a task by ID. Returns ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListRecent returns up to limit tasks ordered by creation time
	// descending, ties broken by ID descending. The limit is clamped to
	// at least 1 before querying.
	ListRecent(ctx context.Context, limit int) ([]*domain.Task, error)

	// Update applies the submitted fields to the row and returns the number
	// of rows affected. Zero with a nil error means the row does not exist.
	Update(ctx context.Context, id int64, fields TaskUpdate) (int64, error)

	// Delete removes the row and returns the number of rows affected.
	// Zero with a nil error means the row does not exist. Deletion is hard;
	// there is no tombstone or undo.
	Delete(ctx context.Context, id int64) (int64, error)
}
