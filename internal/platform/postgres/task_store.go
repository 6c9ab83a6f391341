// Package postgres implements the store interfaces against a PostgreSQL
// database reached through database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewTaskStore(db store.DBTX, lg *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: lg.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Insert implements store.TaskStore.Insert.
// The creation timestamp is assigned here, in UTC, and is immutable afterwards.
func (s *TaskStore) Insert(ctx context.Context, title, description string, createdBy *int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (title, description, created_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var creator sql.NullInt64
	if createdBy != nil {
		creator = sql.NullInt64{Int64: *createdBy, Valid: true}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, query, title, description, creator, time.Now().UTC()).Scan(&id)
	if err != nil {
		if IsNotNullViolation(err) {
			log.Warn("not null violation during task insert",
				slog.String("error", err.Error()))
		} else {
			log.Error("failed to insert task",
				slog.String("error", err.Error()))
		}
		return 0, fmt.Errorf("%w: %v", store.ErrInsertFailed, err)
	}

	log.Info("task created", slog.Int64("task_id", id))
	return id, nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, description, created_by, created_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	return task, nil
}

// ListRecent implements store.TaskStore.ListRecent.
// Ordering is newest first; ties on the creation timestamp fall back to ID
// descending so the result is deterministic under identical timestamps.
func (s *TaskStore) ListRecent(ctx context.Context, limit int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 1 {
		limit = 1
	}

	query := `
		SELECT id, title, description, created_by, created_at
		FROM tasks
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to query recent tasks",
			slog.String("error", err.Error()),
			slog.Int("limit", limit))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed recent tasks",
		slog.Int("limit", limit),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update.
// Only submitted fields appear in the SET clause, so the write is atomic for
// its own field set. A zero affected count with a nil error means the row
// does not exist; the service promotes that to a not-found condition.
func (s *TaskStore) Update(ctx context.Context, id int64, fields store.TaskUpdate) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if fields.Empty() {
		return 0, nil
	}

	set := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if fields.Title != nil {
		args = append(args, *fields.Title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if fields.Description != nil {
		args = append(args, *fields.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, fmt.Errorf("%w: %v", store.ErrUpdateFailed, err)
	}

	log.Debug("task update executed",
		slog.Int64("task_id", id),
		slog.Int64("rows_affected", affected))
	return affected, nil
}

// Delete implements store.TaskStore.Delete.
// Deletion is hard; a zero affected count means the row was already gone.
func (s *TaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, fmt.Errorf("%w: %v", store.ErrDeleteFailed, err)
	}

	if affected > 0 {
		log.Info("task deleted", slog.Int64("task_id", id))
	}
	return affected, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var creator sql.NullInt64

	err := row.Scan(&task.ID, &task.Title, &task.Description, &creator, &task.CreatedAt)
	if err != nil {
		return nil, err
	}

	if creator.Valid {
		task.CreatedBy = &creator.Int64
	}
	// Timestamps are stored in UTC; normalize in case the driver attached a
	// session zone.
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}
