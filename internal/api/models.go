package api

import (
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/tasks"
)

// TaskResponse is the wire shape of a single task. Description and
// created_at serialize as null when absent rather than as empty strings.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CreatedAt   *string `json:"created_at"`
}

// ListResponse is the success envelope for List and any operation that
// returns only the refreshed list.
type ListResponse struct {
	Success bool           `json:"success"`
	Items   []TaskResponse `json:"items"`
}

// CreateResponse carries both the created item and a refreshed list so a
// caller can update its view in one round trip.
type CreateResponse struct {
	Success bool           `json:"success"`
	Item    TaskResponse   `json:"item"`
	Items   []TaskResponse `json:"items"`
}

// UpdateResponse carries the canonical post-update item.
type UpdateResponse struct {
	Success bool         `json:"success"`
	Item    TaskResponse `json:"item"`
}

// SettingsResponse is the success envelope for the settings endpoints.
type SettingsResponse struct {
	Success  bool            `json:"success"`
	Settings domain.Settings `json:"settings"`
}

// CreateTaskRequest is the body for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the body for PUT/PATCH /tasks/{id}. Pointers
// distinguish "absent" from "present but empty".
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateSettingsRequest is the body for PUT /settings. Booleans default to
// false when absent: the settings write is a full replace, not a merge.
type UpdateSettingsRequest struct {
	ItemsLimit   *int `json:"items_limit"`
	EnableDelete bool `json:"enable_delete"`
	EnableEdit   bool `json:"enable_edit"`
}

// taskToResponse converts a service task view to its wire shape.
func taskToResponse(t *tasks.Task) TaskResponse {
	resp := TaskResponse{
		ID:    t.ID,
		Title: t.Title,
	}
	if t.Description != "" {
		desc := t.Description
		resp.Description = &desc
	}
	if t.CreatedAtDisplay != "" {
		display := t.CreatedAtDisplay
		resp.CreatedAt = &display
	}
	return resp
}

// tasksToResponses converts a list, preserving order. Always returns a
// non-nil slice so an empty list serializes as [] rather than null.
func tasksToResponses(list []*tasks.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, taskToResponse(t))
	}
	return out
}
