// Package client is a Go consumer of the task API. It speaks the same
// envelope the server emits and never mutates its local view before the
// server confirms a write.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrRequestFailed is returned for any transport-level failure. Callers
// treat it as a generic failure; the typed *APIError covers everything the
// server actually said.
var ErrRequestFailed = errors.New("request failed")

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Task mirrors the wire shape of a task.
type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CreatedAt   *string `json:"created_at"`
}

// Settings mirrors the wire shape of the settings record.
type Settings struct {
	ItemsLimit   int  `json:"items_limit"`
	EnableDelete bool `json:"enable_delete"`
	EnableEdit   bool `json:"enable_edit"`
}

type envelope struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Item     *Task     `json:"item"`
	Items    []Task    `json:"items"`
	Settings *Settings `json:"settings"`
}

// Client calls the task API.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithToken attaches a bearer token to every request, attributing created
// tasks to the token's principal.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches up to limit tasks, newest first. A limit of 0 lets the
// server apply its configured default.
func (c *Client) List(ctx context.Context, limit int) ([]Task, error) {
	path := "/tasks"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(strconv.Itoa(limit))
	}
	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// CreateResult is what a successful create returns: the created item plus
// the server's refreshed list.
type CreateResult struct {
	Item  Task
	Items []Task
}

// Create adds a task. Description may be empty.
func (c *Client) Create(ctx context.Context, title, description string) (*CreateResult, error) {
	env, err := c.do(ctx, http.MethodPost, "/tasks", map[string]string{
		"title":       title,
		"description": description,
	})
	if err != nil {
		return nil, err
	}
	if env.Item == nil {
		return nil, fmt.Errorf("%w: response missing item", ErrRequestFailed)
	}
	return &CreateResult{Item: *env.Item, Items: env.Items}, nil
}

// Update changes the submitted fields of a task. Nil means "leave alone";
// a pointer to the empty string clears the field (titles excepted, the
// server rejects empty titles).
func (c *Client) Update(ctx context.Context, id int64, title, description *string) (*Task, error) {
	body := map[string]*string{}
	if title != nil {
		body["title"] = title
	}
	if description != nil {
		body["description"] = description
	}
	env, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), body)
	if err != nil {
		return nil, err
	}
	if env.Item == nil {
		return nil, fmt.Errorf("%w: response missing item", ErrRequestFailed)
	}
	return env.Item, nil
}

// Delete removes a task and returns the server's refreshed list.
func (c *Client) Delete(ctx context.Context, id int64) ([]Task, error) {
	env, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return env.Items, nil
}

// GetSettings fetches the effective settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	env, err := c.do(ctx, http.MethodGet, "/settings", nil)
	if err != nil {
		return nil, err
	}
	if env.Settings == nil {
		return nil, fmt.Errorf("%w: response missing settings", ErrRequestFailed)
	}
	return env.Settings, nil
}

// PutSettings replaces the settings record and returns the sanitized
// result the server persisted.
func (c *Client) PutSettings(ctx context.Context, s Settings) (*Settings, error) {
	env, err := c.do(ctx, http.MethodPut, "/settings", s)
	if err != nil {
		return nil, err
	}
	if env.Settings == nil {
		return nil, fmt.Errorf("%w: response missing settings", ErrRequestFailed)
	}
	return env.Settings, nil
}

// do issues one request and decodes the envelope. Transport failures wrap
// ErrRequestFailed; decoded server failures become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return &env, nil
}
