package tasks

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/config"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// fakeTaskStore is an in-memory store.TaskStore used across service tests.
// Error fields, when set, simulate storage faults for the matching operation.
type fakeTaskStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Task

	insertErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	lastListLimit int
	now           func() time.Time
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{
		rows: make(map[int64]*domain.Task),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (f *fakeTaskStore) Insert(ctx context.Context, title, description string, createdBy *int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.nextID++
	f.rows[f.nextID] = &domain.Task{
		ID:          f.nextID,
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   f.now(),
	}
	return f.nextID, nil
}

func (f *fakeTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeTaskStore) ListRecent(ctx context.Context, limit int) ([]*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastListLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Task, 0, len(f.rows))
	for _, row := range f.rows {
		copied := *row
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTaskStore) Update(ctx context.Context, id int64, fields store.TaskUpdate) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	row, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	if fields.Title != nil {
		row.Title = *fields.Title
	}
	if fields.Description != nil {
		row.Description = *fields.Description
	}
	return 1, nil
}

func (f *fakeTaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

var testDisplay = config.DisplayConfig{
	TimeLayout: "2006-01-02 15:04",
	TimeZone:   "UTC",
}

func newTestService(t *testing.T, st store.TaskStore) *Service {
	t.Helper()
	svc, err := NewService(st, testDisplay, nil)
	require.NoError(t, err)
	return svc
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_sanitized_persisted_values", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		got, err := svc.Create(ctx, "  <strong>Buy</strong> milk ", "<script>x</script>2%", nil)

		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
		assert.NotContains(t, got.Description, "<script>")
		assert.Contains(t, got.Description, "2%")
		assert.Positive(t, got.ID)
		assert.NotEmpty(t, got.CreatedAtDisplay)

		// What the service returned is what a later read returns: canonical
		// re-read, not an echo of the input.
		again, err := svc.Get(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("empty_title_fails_before_storage", func(t *testing.T) {
		st := newFakeTaskStore()
		st.insertErr = errors.New("insert must not be reached")
		svc := newTestService(t, st)

		_, err := svc.Create(ctx, "  <p></p>  ", "desc", nil)

		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})

	t.Run("insert_fault_propagates", func(t *testing.T) {
		st := newFakeTaskStore()
		st.insertErr = store.ErrInsertFailed
		svc := newTestService(t, st)

		_, err := svc.Create(ctx, "ok", "", nil)

		assert.ErrorIs(t, err, store.ErrInsertFailed)
	})

	t.Run("records_creating_principal", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)
		creator := int64(42)

		got, err := svc.Create(ctx, "with creator", "", &creator)

		require.NoError(t, err)
		require.NotNil(t, got.CreatedBy)
		assert.Equal(t, creator, *got.CreatedBy)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	st := newFakeTaskStore()
	svc := newTestService(t, st)

	t.Run("invalid_id", func(t *testing.T) {
		_, err := svc.Get(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.Get(ctx, 9999)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestListRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("orders_newest_first_id_desc_on_ties", func(t *testing.T) {
		st := newFakeTaskStore()
		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		st.now = func() time.Time { return fixed }
		svc := newTestService(t, st)

		for _, title := range []string{"first", "second", "third"} {
			_, err := svc.Create(ctx, title, "", nil)
			require.NoError(t, err)
		}

		got, err := svc.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		// Identical timestamps: deterministic fallback to ID descending.
		assert.Equal(t, "third", got[0].Title)
		assert.Equal(t, "second", got[1].Title)
		assert.Equal(t, "first", got[2].Title)
	})

	t.Run("truncates_to_limit", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)
		for i := 0; i < 5; i++ {
			_, err := svc.Create(ctx, "task", "", nil)
			require.NoError(t, err)
		}

		got, err := svc.ListRecent(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("clamps_limit_to_one", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		_, err := svc.ListRecent(ctx, -3)
		require.NoError(t, err)
		assert.Equal(t, 1, st.lastListLimit)
	})

	t.Run("empty_store_returns_empty_slice", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		got, err := svc.ListRecent(ctx, 5)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	strptr := func(s string) *string { return &s }

	t.Run("empty_title_fails_and_leaves_row_unchanged", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)
		created, err := svc.Create(ctx, "original", "keep me", nil)
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateInput{
			Title:       strptr("  <br/>  "),
			Description: strptr("must not land"),
		})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)

		after, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", after.Title)
		assert.Equal(t, "keep me", after.Description, "no submitted field may land when one fails validation")
	})

	t.Run("no_fields", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		_, err := svc.Update(ctx, 1, UpdateInput{})
		assert.ErrorIs(t, err, domain.ErrNoFields)
	})

	t.Run("missing_row_is_not_found_not_storage_fault", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		_, err := svc.Update(ctx, 123, UpdateInput{Title: strptr("new")})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.NotErrorIs(t, err, store.ErrUpdateFailed)
	})

	t.Run("storage_fault_is_distinct_from_not_found", func(t *testing.T) {
		st := newFakeTaskStore()
		st.updateErr = store.ErrUpdateFailed
		svc := newTestService(t, st)

		_, err := svc.Update(ctx, 1, UpdateInput{Title: strptr("new")})
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("touches_only_submitted_fields", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)
		created, err := svc.Create(ctx, "title stays", "old description", nil)
		require.NoError(t, err)

		got, err := svc.Update(ctx, created.ID, UpdateInput{Description: strptr("new description")})
		require.NoError(t, err)
		assert.Equal(t, "title stays", got.Title)
		assert.Equal(t, "new description", got.Description)
	})

	t.Run("submitted_empty_description_is_written", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)
		created, err := svc.Create(ctx, "t", "something", nil)
		require.NoError(t, err)

		got, err := svc.Update(ctx, created.ID, UpdateInput{Description: strptr("")})
		require.NoError(t, err)
		assert.Equal(t, "", got.Description, "present-but-empty differs from absent")
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes_row", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)
		created, err := svc.Create(ctx, "doomed", "", nil)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("missing_row_is_not_found", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		err := svc.Delete(ctx, 42)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.NotErrorIs(t, err, store.ErrDeleteFailed)
	})

	t.Run("storage_fault_is_delete_failed", func(t *testing.T) {
		st := newFakeTaskStore()
		st.deleteErr = store.ErrDeleteFailed
		svc := newTestService(t, st)

		err := svc.Delete(ctx, 1)
		assert.ErrorIs(t, err, store.ErrDeleteFailed)
	})

	t.Run("invalid_id", func(t *testing.T) {
		st := newFakeTaskStore()
		svc := newTestService(t, st)

		assert.ErrorIs(t, svc.Delete(ctx, -1), domain.ErrInvalidID)
	})
}

func TestDisplayFormatting(t *testing.T) {
	ctx := context.Background()
	st := newFakeTaskStore()
	stored := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return stored }

	svc, err := NewService(st, config.DisplayConfig{
		TimeLayout: "2006-01-02 15:04",
		TimeZone:   "Europe/Berlin",
	}, nil)
	require.NoError(t, err)

	got, err := svc.Create(ctx, "clock check", "", nil)
	require.NoError(t, err)

	// March 1st is CET (UTC+1); the display string shifts, the stored
	// value does not.
	assert.Equal(t, "2026-03-01 13:00", got.CreatedAtDisplay)
	assert.True(t, got.CreatedAt.Equal(stored))
}

func TestNewServiceRejectsUnknownZone(t *testing.T) {
	_, err := NewService(newFakeTaskStore(), config.DisplayConfig{
		TimeLayout: time.RFC822,
		TimeZone:   "Mars/Olympus_Mons",
	}, nil)
	require.Error(t, err)

	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
}

func TestConcurrentUpdatesAreEachAtomic(t *testing.T) {
	ctx := context.Background()
	st := newFakeTaskStore()
	svc := newTestService(t, st)
	strptr := func(s string) *string { return &s }

	created, err := svc.Create(ctx, "start", "start", nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	writes := []UpdateInput{
		{Title: strptr("alpha"), Description: strptr("alpha desc")},
		{Title: strptr("beta"), Description: strptr("beta desc")},
	}
	for _, w := range writes {
		wg.Add(1)
		go func(in UpdateInput) {
			defer wg.Done()
			_, err := svc.Update(ctx, created.ID, in)
			assert.NoError(t, err)
		}(w)
	}
	wg.Wait()

	// Last write wins, but each write is atomic for its own field set:
	// the final row is one submission in full, never a mix.
	final, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	ok := (final.Title == "alpha" && final.Description == "alpha desc") ||
		(final.Title == "beta" && final.Description == "beta desc")
	assert.True(t, ok, "final state mixes two writes: %q / %q", final.Title, final.Description)
}
