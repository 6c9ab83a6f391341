package domain

// Bounds and defaults for the settings record.
const (
	ItemsLimitMin     = 1
	ItemsLimitMax     = 20
	DefaultItemsLimit = 5
)

// Settings is the process-wide configuration controlling the default list
// size and the edit/delete feature gates. It is a value, not an entity with
// identity; the persisted record is read fresh on each request.
type Settings struct {
	ItemsLimit   int  `json:"items_limit"`
	EnableDelete bool `json:"enable_delete"`
	EnableEdit   bool `json:"enable_edit"`
}

// DefaultSettings returns the settings used when no record has been persisted.
func DefaultSettings() Settings {
	return Settings{
		ItemsLimit:   DefaultItemsLimit,
		EnableDelete: true,
		EnableEdit:   true,
	}
}

// Clamped returns a copy with ItemsLimit forced into [ItemsLimitMin,
// ItemsLimitMax]. Applied defensively on every read so a stale record
// persisted outside the bounds can never widen the effective limit.
func (s Settings) Clamped() Settings {
	if s.ItemsLimit < ItemsLimitMin {
		s.ItemsLimit = ItemsLimitMin
	}
	if s.ItemsLimit > ItemsLimitMax {
		s.ItemsLimit = ItemsLimitMax
	}
	return s
}

// SettingsInput is a submitted settings payload. ItemsLimit tracks presence
// so an absent value falls back to the default; the booleans carry
// full-replace semantics, meaning an absent checkbox is false, not
// "leave unchanged".
type SettingsInput struct {
	ItemsLimit   *int `json:"items_limit"`
	EnableDelete bool `json:"enable_delete"`
	EnableEdit   bool `json:"enable_edit"`
}

// SanitizeSettings validates a submitted settings payload into a persistable
// Settings value. ItemsLimit is clamped into range, or defaulted when absent.
func SanitizeSettings(in SettingsInput) Settings {
	out := Settings{
		ItemsLimit:   DefaultItemsLimit,
		EnableDelete: in.EnableDelete,
		EnableEdit:   in.EnableEdit,
	}
	if in.ItemsLimit != nil {
		out.ItemsLimit = *in.ItemsLimit
	}
	return out.Clamped()
}
