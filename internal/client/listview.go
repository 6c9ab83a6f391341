package client

import (
	"context"
	"sync"
)

// ListView maintains a local snapshot of the task list across overlapping
// refreshes. Responses can arrive out of order; only the last-issued
// request's result may land in the snapshot, so a slow stale fetch never
// overwrites a newer one.
type ListView struct {
	client *Client

	mu      sync.Mutex
	seq     uint64 // last issued request
	applied uint64 // request whose result is currently visible
	items   []Task
}

// NewListView creates an empty view backed by the given client.
func NewListView(c *Client) *ListView {
	return &ListView{client: c}
}

// Refresh fetches the list and applies the result unless a newer refresh
// was issued in the meantime. It returns the items this call fetched even
// when they were not applied, plus whether they were.
func (v *ListView) Refresh(ctx context.Context, limit int) ([]Task, bool, error) {
	v.mu.Lock()
	v.seq++
	ticket := v.seq
	v.mu.Unlock()

	items, err := v.client.List(ctx, limit)
	if err != nil {
		return nil, false, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if ticket < v.seq || ticket <= v.applied {
		// A newer refresh was issued (or already applied) while this one
		// was in flight; its result is stale.
		return items, false, nil
	}
	v.applied = ticket
	v.items = items
	return items, true, nil
}

// Items returns the currently visible snapshot.
func (v *ListView) Items() []Task {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Task, len(v.items))
	copy(out, v.items)
	return out
}
