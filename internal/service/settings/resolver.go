// Package settings resolves the effective process-wide settings record.
// All call sites go through the Resolver rather than reading shared state
// ad hoc; the record is read fresh on each request.
package settings

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// Resolver supplies effective configuration merged with defaults.
type Resolver struct {
	store  store.SettingsStore
	logger *slog.Logger
}

// NewResolver creates a Resolver backed by the given settings store.
// If lg is nil, a default logger is used.
func NewResolver(st store.SettingsStore, lg *slog.Logger) *Resolver {
	if st == nil {
		panic("settings store cannot be nil")
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &Resolver{
		store:  st,
		logger: lg.With(slog.String("component", "settings_resolver")),
	}
}

// Effective returns the persisted settings merged with defaults. The items
// limit is clamped defensively even if a stale out-of-range value was
// persisted previously. A storage fault degrades to defaults rather than
// failing the request: feature gates falling back to their permissive
// defaults is acceptable staleness, a 500 on every request is not.
func (r *Resolver) Effective(ctx context.Context) domain.Settings {
	log := logger.FromContextOrDefault(ctx, r.logger)

	persisted, err := r.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSettingsNotFound) {
			log.Warn("falling back to default settings",
				slog.String("error", err.Error()))
		}
		return domain.DefaultSettings()
	}

	return persisted.Clamped()
}

// Update sanitizes the submitted payload and fully replaces the persisted
// record. Absent booleans become false; this is replace semantics, not merge.
func (r *Resolver) Update(ctx context.Context, in domain.SettingsInput) (domain.Settings, error) {
	sanitized := domain.SanitizeSettings(in)
	if err := r.store.Put(ctx, sanitized); err != nil {
		return domain.Settings{}, err
	}
	return sanitized, nil
}
