package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/settingsstore"
)

// pageFetcher serves up to available pages.
type pageFetcher struct {
	requested []int
	available int
	err       error
}

func newPageFetcher() *pageFetcher {
	return &pageFetcher{available: browse.MaxFetchPages}
}

func (f *pageFetcher) FetchPages(ctx context.Context, pages int) (int, error) {
	f.requested = append(f.requested, pages)
	if f.err != nil {
		return 0, f.err
	}
	return min(pages, f.available), nil
}

type stubRefresher struct {
	result breeds.SyncResult
	err    error
}

func (r stubRefresher) Refresh(ctx context.Context) (breeds.SyncResult, error) {
	return r.result, r.err
}

type recordedStatus struct {
	status  string
	message string
	changed int
}

type statusRecorder struct {
	records []recordedStatus
}

func (s *statusRecorder) SetBreedSyncStatus(ctx context.Context, status, message string, changed int) error {
	s.records = append(s.records, recordedStatus{status, message, changed})
	return nil
}

func TestFetchMoreBreedsTaskConfig(t *testing.T) {
	cfg := FetchMoreBreedsTask{Pages: 2}.Config()

	assert.Equal(t, "fetch_more_breeds", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.NotNil(t, cfg.Retention)
}

func TestRefreshBreedsTaskConfig(t *testing.T) {
	cfg := RefreshBreedsTask{Trigger: "api"}.Config()

	assert.Equal(t, "refresh_breeds", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Timeout)
}

func TestFetchMoreBreedsProcessor(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches at least one page", func(t *testing.T) {
		f := newPageFetcher()
		require.NoError(t, FetchMoreBreedsProcessor(f)(ctx, FetchMoreBreedsTask{}))
		assert.Equal(t, []int{1}, f.requested)
	})

	t.Run("fetches requested pages", func(t *testing.T) {
		f := newPageFetcher()
		require.NoError(t, FetchMoreBreedsProcessor(f)(ctx, FetchMoreBreedsTask{Pages: 3}))
		assert.Equal(t, []int{3}, f.requested)
	})

	t.Run("clamps the page count", func(t *testing.T) {
		f := newPageFetcher()
		require.NoError(t, FetchMoreBreedsProcessor(f)(ctx, FetchMoreBreedsTask{Pages: 100000}))
		assert.Equal(t, []int{browse.MaxFetchPages}, f.requested)
	})

	t.Run("pages beyond the end of the catalog succeed", func(t *testing.T) {
		f := newPageFetcher()
		f.available = 2
		require.NoError(t, FetchMoreBreedsProcessor(f)(ctx, FetchMoreBreedsTask{Pages: 5}))
		assert.Equal(t, []int{5}, f.requested)
	})

	t.Run("failure", func(t *testing.T) {
		f := newPageFetcher()
		f.err = errors.New("offline")
		assert.Error(t, FetchMoreBreedsProcessor(f)(ctx, FetchMoreBreedsTask{Pages: 5}))
	})

	t.Run("busy fetcher counts as done", func(t *testing.T) {
		f := newPageFetcher()
		f.err = browse.ErrBusy
		assert.NoError(t, FetchMoreBreedsProcessor(f)(ctx, FetchMoreBreedsTask{Pages: 2}))
		assert.Len(t, f.requested, 1)
	})

	t.Run("missing fetcher", func(t *testing.T) {
		assert.Error(t, FetchMoreBreedsProcessor(nil)(ctx, FetchMoreBreedsTask{}))
	})
}

func TestRunRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("records success", func(t *testing.T) {
		status := &statusRecorder{}
		result, err := RunRefresh(ctx, stubRefresher{result: breeds.SyncResult{Fetched: 20, Upserted: 3, Deleted: 1}}, status)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Upserted)

		require.Len(t, status.records, 1)
		assert.Equal(t, settingsstore.BreedSyncStatusSuccess, status.records[0].status)
		assert.Equal(t, 4, status.records[0].changed)
		assert.Contains(t, status.records[0].message, "upserted 3")
	})

	t.Run("records failure", func(t *testing.T) {
		status := &statusRecorder{}
		_, err := RunRefresh(ctx, stubRefresher{result: breeds.SyncResult{Upserted: 1, Failed: 2}, err: errors.New("disk full")}, status)
		require.Error(t, err)

		require.Len(t, status.records, 1)
		assert.Equal(t, settingsstore.BreedSyncStatusFailed, status.records[0].status)
		assert.Contains(t, status.records[0].message, "disk full")
	})

	t.Run("busy refresh is skipped", func(t *testing.T) {
		status := &statusRecorder{}
		_, err := RunRefresh(ctx, stubRefresher{err: browse.ErrBusy}, status)
		assert.NoError(t, err)
		assert.Empty(t, status.records)
	})

	t.Run("without recorder", func(t *testing.T) {
		_, err := RunRefresh(ctx, stubRefresher{}, nil)
		assert.NoError(t, err)
	})
}

func TestRefreshQueueRunsTask(t *testing.T) {
	client, err := NewClient(t.TempDir()+"/breeds.db", Config{Workers: 1, ReleaseAfter: time.Minute, CleanupInterval: time.Hour})
	require.NoError(t, err)
	defer client.Close()

	done := make(chan struct{})
	status := &notifyingRecorder{done: done}
	client.Register(NewRefreshBreedsQueue(stubRefresher{result: breeds.SyncResult{Fetched: 1}}, status))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	_, err = client.Enqueue(ctx, RefreshBreedsTask{Trigger: "test"})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh task was not executed within timeout")
	}
}

type notifyingRecorder struct {
	done chan struct{}
}

func (r *notifyingRecorder) SetBreedSyncStatus(ctx context.Context, status, message string, changed int) error {
	close(r.done)
	return nil
}
