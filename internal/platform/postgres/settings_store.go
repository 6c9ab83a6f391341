package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// SettingsStore implements the store.SettingsStore interface using a
// PostgreSQL database as the storage backend. The settings table holds a
// single row pinned to id = 1.
type SettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSettingsStore creates a new PostgreSQL implementation of the
// store.SettingsStore interface. If logger is nil, a default logger is used.
func NewSettingsStore(db store.DBTX, lg *slog.Logger) *SettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if lg == nil {
		lg = slog.Default()
	}
	return &SettingsStore{
		db:     db,
		logger: lg.With(slog.String("component", "settings_store")),
	}
}

// Ensure SettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*SettingsStore)(nil)

// Get implements store.SettingsStore.Get.
// Returns store.ErrSettingsNotFound when no record has been persisted yet.
func (s *SettingsStore) Get(ctx context.Context) (domain.Settings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT items_limit, enable_delete, enable_edit
		FROM settings
		WHERE id = 1
	`

	var settings domain.Settings
	err := s.db.QueryRowContext(ctx, query).Scan(
		&settings.ItemsLimit,
		&settings.EnableDelete,
		&settings.EnableEdit,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no settings record persisted yet")
			return domain.Settings{}, store.ErrSettingsNotFound
		}
		log.Error("failed to get settings", slog.String("error", err.Error()))
		return domain.Settings{}, err
	}

	return settings, nil
}

// Put implements store.SettingsStore.Put with upsert semantics: the single
// record is created on first save and fully replaced on every later one.
func (s *SettingsStore) Put(ctx context.Context, settings domain.Settings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO settings (id, items_limit, enable_delete, enable_edit, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET items_limit = EXCLUDED.items_limit,
		    enable_delete = EXCLUDED.enable_delete,
		    enable_edit = EXCLUDED.enable_edit,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		settings.ItemsLimit,
		settings.EnableDelete,
		settings.EnableEdit,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to save settings", slog.String("error", err.Error()))
		return store.NewStoreError("settings", "put", "upsert failed", err)
	}

	log.Info("settings saved",
		slog.Int("items_limit", settings.ItemsLimit),
		slog.Bool("enable_delete", settings.EnableDelete),
		slog.Bool("enable_edit", settings.EnableEdit))
	return nil
}
