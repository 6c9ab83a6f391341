// Package tasks implements the application-level task service. It owns
// validation, sanitization and display formatting, and delegates persistence
// to the task store.
//
// Error handling follows the repository-wide convention: expected conditions
// are sentinel errors (domain.ErrEmptyTitle, domain.ErrNoFields,
// store.ErrTaskNotFound, the store fault sentinels) checked with errors.Is;
// everything else is wrapped in a ServiceError. The API layer maps each kind
// to exactly one HTTP status.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/sanitize"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Task is the service's view of a task. CreatedAt carries the stored UTC
// timestamp for internal ordering; CreatedAtDisplay is the presentation
// string rendered in the configured layout and zone. The conversion never
// alters the stored value.
type Task struct {
	ID               int64
	Title            string
	Description      string
	CreatedBy        *int64
	CreatedAt        time.Time
	CreatedAtDisplay string
}

// UpdateInput is a partial update as submitted by a caller. A nil field was
// not submitted; a non-nil pointer to an empty string was submitted empty.
type UpdateInput struct {
	Title       *string
	Description *string
}

// ServiceError wraps unexpected failures with the operation that produced them.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task %s: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task %s: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Service orchestrates the task store and the sanitization layer.
type Service struct {
	tasks  store.TaskStore
	layout string
	loc    *time.Location
	logger *slog.Logger
}

// NewService creates a task Service. The display configuration determines
// how stored UTC timestamps are rendered for callers; the zone name is
// resolved once, at construction.
func NewService(tasks store.TaskStore, display config.DisplayConfig, lg *slog.Logger) (*Service, error) {
	if tasks == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}

	loc, err := time.LoadLocation(display.TimeZone)
	if err != nil {
		return nil, &ServiceError{
			Operation: "create_service",
			Message:   fmt.Sprintf("unknown display time zone %q", display.TimeZone),
			Err:       err,
		}
	}

	if lg == nil {
		lg = slog.Default()
	}

	return &Service{
		tasks:  tasks,
		layout: display.TimeLayout,
		loc:    loc,
		logger: lg.With(slog.String("component", "task_service")),
	}, nil
}

// Create sanitizes both fields and persists a new task. A title that
// sanitizes to empty fails with domain.ErrEmptyTitle before storage is
// touched. On success the row is re-read by its assigned ID so the caller
// sees exactly what was persisted, including the server-assigned timestamp
// and ID, never an echo of unsanitized input.
func (s *Service) Create(ctx context.Context, title, description string, createdBy *int64) (*Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	title = sanitize.Title(title)
	description = sanitize.Description(description)

	if title == "" {
		log.Debug("rejected create with empty sanitized title")
		return nil, domain.ErrEmptyTitle
	}

	id, err := s.tasks.Insert(ctx, title, description, createdBy)
	if err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, id)
	if err != nil {
		// The row existed a moment ago; surface the re-read failure as-is.
		log.Error("failed to re-read task after insert",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return created, nil
}

// Get retrieves one task by ID. Returns store.ErrTaskNotFound when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidID
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.format(task), nil
}

// ListRecent returns up to limit tasks, newest first, ID descending on
// timestamp ties. The limit is clamped to at least 1 before querying.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Task, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.tasks.ListRecent(ctx, limit)
	if err != nil {
		return nil, &ServiceError{Operation: "list_recent", Message: "list query failed", Err: err}
	}

	out := make([]*Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.format(row))
	}
	return out, nil
}

// Update applies a partial update. Only submitted fields are touched. A
// submitted title that sanitizes to empty fails with domain.ErrEmptyTitle
// and performs no write, so either all submitted fields land or none. An
// empty field set fails with domain.ErrNoFields. A missing row is
// store.ErrTaskNotFound, distinct from store.ErrUpdateFailed. On success
// the row is re-read and returned in canonical form.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id <= 0 {
		return nil, domain.ErrInvalidID
	}

	var fields store.TaskUpdate
	if in.Title != nil {
		title := sanitize.Title(*in.Title)
		if title == "" {
			log.Debug("rejected update with empty sanitized title",
				slog.Int64("task_id", id))
			return nil, domain.ErrEmptyTitle
		}
		fields.Title = &title
	}
	if in.Description != nil {
		description := sanitize.Description(*in.Description)
		fields.Description = &description
	}

	if fields.Empty() {
		return nil, domain.ErrNoFields
	}

	affected, err := s.tasks.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrTaskNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a task permanently. A zero affected count is promoted to
// store.ErrTaskNotFound, distinct from the storage fault store.ErrDeleteFailed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}

	affected, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// format converts a stored row into the service view, rendering the UTC
// timestamp into the configured display layout and zone.
func (s *Service) format(t *domain.Task) *Task {
	out := &Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
	if !t.CreatedAt.IsZero() {
		out.CreatedAtDisplay = t.CreatedAt.In(s.loc).Format(s.layout)
	}
	return out
}
