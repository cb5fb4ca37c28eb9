package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := NewRunStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.SaveRun(ctx, driven.RunRecord{
			ID:        uuid.NewString(),
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Duration:  90 * time.Second,
			Processed: i + 1,
			Errors:    []string{},
		})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	// Newest first.
	assert.Equal(t, 3, runs[0].Processed)
	assert.Equal(t, 1, runs[2].Processed)
	assert.Equal(t, 90*time.Second, runs[0].Duration)
}

func TestListRunsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := store.SaveRun(ctx, driven.RunRecord{
			ID:        uuid.NewString(),
			StartedAt: time.Now().Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRunErrorsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveRun(ctx, driven.RunRecord{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Processed: 1,
		Errors:    []string{"Daily/2026-03-01.md: ollama: request timed out"},
	})
	require.NoError(t, err)

	runs, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, []string{"Daily/2026-03-01.md: ollama: request timed out"}, runs[0].Errors)
}

func TestListRunsEmpty(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestReopenKeepsHistory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewRunStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(ctx, driven.RunRecord{ID: uuid.NewString(), StartedAt: time.Now(), Processed: 2}))
	require.NoError(t, store.Close())

	reopened, err := NewRunStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Processed)
}
