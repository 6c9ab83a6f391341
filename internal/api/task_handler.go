package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/tasks"
)

// Direct API callers may ask for more items than the settings page allows,
// up to this ceiling.
const listLimitMax = 100

// TaskService is the slice of the task service the handlers need.
type TaskService interface {
	Create(ctx context.Context, title, description string, createdBy *int64) (*tasks.Task, error)
	Get(ctx context.Context, id int64) (*tasks.Task, error)
	ListRecent(ctx context.Context, limit int) ([]*tasks.Task, error)
	Update(ctx context.Context, id int64, in tasks.UpdateInput) (*tasks.Task, error)
	Delete(ctx context.Context, id int64) error
}

// SettingsProvider yields the effective settings for each request. Settings
// are read fresh per request, never cached in the handler.
type SettingsProvider interface {
	Effective(ctx context.Context) domain.Settings
	Update(ctx context.Context, in domain.SettingsInput) (domain.Settings, error)
}

// TaskHandler handles the /tasks endpoints.
type TaskHandler struct {
	service  TaskService
	settings SettingsProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service TaskService, settings SettingsProvider) *TaskHandler {
	return &TaskHandler{
		service:  service,
		settings: settings,
	}
}

// List handles GET /tasks. An explicit limit query parameter is clamped to
// [1, listLimitMax]; when absent the effective settings limit applies.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := h.settings.Effective(r.Context()).ItemsLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = clampListLimit(parsed)
	}

	list, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Success: true,
		Items:   tasksToResponses(list),
	})
}

// Create handles POST /tasks. The response carries both the created item
// and a refreshed list sized per settings.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := h.service.Create(r.Context(), req.Title, req.Description, middleware.PrincipalID(r))
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	list, err := h.service.ListRecent(r.Context(), h.settings.Effective(r.Context()).ItemsLimit)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateResponse{
		Success: true,
		Item:    taskToResponse(created),
		Items:   tasksToResponses(list),
	})
}

// Update handles PUT and PATCH /tasks/{id}. The edit gate is checked before
// the body is even decoded.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.settings.Effective(r.Context()).EnableEdit {
		respondMappedError(w, r, ErrEditingDisabled)
		return
	}

	id, err := taskIDFromPath(r)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.service.Update(r.Context(), id, tasks.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdateResponse{
		Success: true,
		Item:    taskToResponse(updated),
	})
}

// Delete handles DELETE /tasks/{id}. The delete gate is checked before the
// service is reached; success returns the refreshed list.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.settings.Effective(r.Context()).EnableDelete {
		respondMappedError(w, r, ErrDeletionDisabled)
		return
	}

	id, err := taskIDFromPath(r)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondMappedError(w, r, err)
		return
	}

	list, err := h.service.ListRecent(r.Context(), h.settings.Effective(r.Context()).ItemsLimit)
	if err != nil {
		respondMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Success: true,
		Items:   tasksToResponses(list),
	})
}

// taskIDFromPath parses the {id} route parameter. Non-numeric and
// non-positive values are both bad IDs.
func taskIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func clampListLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > listLimitMax {
		return listLimitMax
	}
	return limit
}

// respondMappedError converts an internal error to its one status code and
// stable message, logging the underlying cause.
func respondMappedError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
