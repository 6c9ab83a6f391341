package store

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// SettingsStore persists the single process-wide settings record.
type SettingsStore interface {
	// Get returns the persisted settings record, or ErrSettingsNotFound
	// when none has been saved yet.
	Get(ctx context.Context) (domain.Settings, error)

	// Put replaces the persisted settings record. The value is expected to
	// have passed domain.SanitizeSettings already.
	Put(ctx context.Context, s domain.Settings) error
}
