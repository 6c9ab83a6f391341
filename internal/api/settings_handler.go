package api

import (
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// SettingsHandler handles the /settings endpoints.
type SettingsHandler struct {
	settings SettingsProvider
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings SettingsProvider) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /settings and returns the effective settings, defaults
// filled in and limits clamped.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		Success:  true,
		Settings: h.settings.Effective(r.Context()),
	})
}

// Put handles PUT /settings. The write is a full replace: an absent boolean
// means false, not "leave unchanged".
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	saved, err := h.settings.Update(r.Context(), domain.SettingsInput{
		ItemsLimit:   req.ItemsLimit,
		EnableDelete: req.EnableDelete,
		EnableEdit:   req.EnableEdit,
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SettingsResponse{
		Success:  true,
		Settings: saved,
	})
}
