package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/breedy/internal/browse"
)

// BreedFetcher stores catalog pages after the cursor and reports how many
// were stored before the end of the catalog.
type BreedFetcher interface {
	FetchPages(ctx context.Context, pages int) (int, error)
}

// FetchMoreBreedsTask stores the next Pages catalog pages, one at a time.
// Pages is clamped to 1..browse.MaxFetchPages.
type FetchMoreBreedsTask struct {
	Pages int `json:"pages"`
}

// Config returns the queue configuration for fetch-more tasks.
func (t FetchMoreBreedsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "fetch_more_breeds",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// FetchMoreBreedsProcessor creates a processor function for FetchMoreBreedsTask.
// A fetch that is already running elsewhere counts as done.
func FetchMoreBreedsProcessor(fetcher BreedFetcher) backlite.QueueProcessor[FetchMoreBreedsTask] {
	return func(ctx context.Context, task FetchMoreBreedsTask) error {
		if fetcher == nil {
			return fmt.Errorf("breed fetcher not configured")
		}

		pages := min(max(task.Pages, 1), browse.MaxFetchPages)
		fetched, err := fetcher.FetchPages(ctx, pages)
		if errors.Is(err, browse.ErrBusy) {
			log.Printf("[TASK] Fetch-more skipped: a fetch is already running")
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch page %d of %d: %w", fetched+1, pages, err)
		}

		if fetched < pages {
			log.Printf("[TASK] Fetched %d of %d catalog page(s), end of catalog reached", fetched, pages)
			return nil
		}
		log.Printf("[TASK] Fetched %d catalog page(s)", fetched)
		return nil
	}
}

// NewFetchMoreBreedsQueue creates a backlite queue for fetch-more tasks.
func NewFetchMoreBreedsQueue(fetcher BreedFetcher) backlite.Queue {
	return backlite.NewQueue(FetchMoreBreedsProcessor(fetcher))
}
