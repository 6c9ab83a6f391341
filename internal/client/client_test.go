package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/client"
)

func TestClientList(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"items":[{"id":2,"title":"b"},{"id":1,"title":"a"}]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	items, err := c.List(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, "b", items[0].Title)
}

func TestClientCreate(t *testing.T) {
	t.Parallel()

	t.Run("success_returns_item_and_refreshed_list", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Buy milk", body["title"])

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"item":{"id":7,"title":"Buy milk"},"items":[{"id":7,"title":"Buy milk"}]}`))
		}))
		defer srv.Close()

		c := client.New(srv.URL)
		res, err := c.Create(context.Background(), "Buy milk", "2%")

		require.NoError(t, err)
		assert.Equal(t, int64(7), res.Item.ID)
		assert.Len(t, res.Items, 1)
	})

	t.Run("server_rejection_is_api_error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"message":"Title is required"}`))
		}))
		defer srv.Close()

		c := client.New(srv.URL)
		_, err := c.Create(context.Background(), "", "")

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "Title is required", apiErr.Message)
	})

	t.Run("transport_failure_is_generic", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		c := client.New(srv.URL)
		_, err := c.Create(context.Background(), "x", "")

		assert.ErrorIs(t, err, client.ErrRequestFailed)
	})
}

func TestClientDelete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tasks/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"items":[]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	items, err := c.Delete(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClientHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := client.New(srv.URL)
	_, err := c.List(ctx, 5)

	require.ErrorIs(t, err, client.ErrRequestFailed)
	assert.ErrorContains(t, err, "context deadline exceeded")
}

func TestClientSendsBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"items":[]}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, client.WithToken("abc.def.ghi"))
	_, err := c.List(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, "Bearer abc.def.ghi", gotAuth)
}
