package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/tasks"
	"github.com/mrlokans/breedy/internal/watch"
)

// ListService is the breed list state.
type ListService interface {
	State(favoritesOnly bool) browse.ListState
	Watch(ctx context.Context, favoritesOnly bool) *watch.Feed[browse.ListState]
	FetchPages(ctx context.Context, pages int) (int, error)
	Refresh(ctx context.Context) (breeds.SyncResult, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	ClearError()
}

// SearchService runs breed searches.
type SearchService interface {
	Search(ctx context.Context, query string) (browse.SearchState, error)
}

// DetailsService looks up a single breed.
type DetailsService interface {
	Get(ctx context.Context, id string) (browse.DetailsState, bool, error)
	Watch(ctx context.Context, id string) (*watch.Feed[browse.DetailsState], bool)
}

// refreshTimeout bounds an inline refresh. Matches the refresh task timeout.
const refreshTimeout = 10 * time.Minute

type BreedsController struct {
	list    ListService
	search  SearchService
	details DetailsService
	queue   TaskQueue
}

func NewBreedsController(list ListService, search SearchService, details DetailsService, queue TaskQueue) *BreedsController {
	return &BreedsController{
		list:    list,
		search:  search,
		details: details,
		queue:   queue,
	}
}

// GetList returns the current list state.
// GET /api/breeds?favorites=true
func (bc *BreedsController) GetList(c *gin.Context) {
	favoritesOnly, ok := parseBoolQuery(c, "favorites")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bc.list.State(favoritesOnly))
}

// Stream sends the list state as server-sent events, the current state
// first and then every change until the client goes away.
// GET /api/breeds/stream?favorites=true
func (bc *BreedsController) Stream(c *gin.Context) {
	favoritesOnly, ok := parseBoolQuery(c, "favorites")
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	streamStates(c, bc.list.Watch(ctx, favoritesOnly))
}

// FetchResponse is the outcome of an inline fetch.
type FetchResponse struct {
	Requested int              `json:"requested"`
	Fetched   int              `json:"fetched"`
	State     browse.ListState `json:"state"`
}

// FetchMore stores up to pages catalog pages and returns how many were
// stored with the list state. With async=true, or several pages and a task
// queue, the fetch is enqueued instead.
// POST /api/breeds/fetch?pages=2&async=true
func (bc *BreedsController) FetchMore(c *gin.Context) {
	async, ok := parseBoolQuery(c, "async")
	if !ok {
		return
	}
	pages, ok := parseQueryInt(c, "pages", 1)
	if !ok {
		return
	}
	if pages > browse.MaxFetchPages {
		respondBadRequest(c, fmt.Sprintf("pages must be at most %d", browse.MaxFetchPages))
		return
	}

	if async || (pages > 1 && bc.queue != nil) {
		if bc.queue == nil {
			respondError(c, http.StatusServiceUnavailable, "task queue not enabled")
			return
		}
		taskID, err := bc.queue.Enqueue(c.Request.Context(), tasks.FetchMoreBreedsTask{Pages: pages})
		if err != nil {
			respondInternalError(c, err, "enqueue fetch")
			return
		}
		respondAccepted(c, "fetch enqueued", gin.H{"task_id": taskID, "pages": pages})
		return
	}

	fetched, err := bc.list.FetchPages(c.Request.Context(), pages)
	if err != nil {
		respondJobError(c, err, "fetch more breeds")
		return
	}
	c.JSON(http.StatusOK, FetchResponse{
		Requested: pages,
		Fetched:   fetched,
		State:     bc.list.State(false),
	})
}

// Refresh reconciles the stored breeds with the catalog. With a task queue
// the refresh is enqueued and the task id returned.
// POST /api/breeds/refresh
func (bc *BreedsController) Refresh(c *gin.Context) {
	if bc.queue != nil {
		taskID, err := bc.queue.Enqueue(c.Request.Context(), tasks.RefreshBreedsTask{Trigger: "api"})
		if err != nil {
			respondInternalError(c, err, "enqueue refresh")
			return
		}
		respondAccepted(c, "refresh enqueued", gin.H{"task_id": taskID})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), refreshTimeout)
	defer cancel()

	result, err := bc.list.Refresh(ctx)
	if err != nil {
		if !errors.Is(err, browse.ErrBusy) {
			log.Printf("[HTTP] Refresh ended after %d upserts, %d deletes, %d failures", result.Upserted, result.Deleted, result.Failed)
		}
		respondJobError(c, err, "refresh breeds")
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClearError dismisses the list error.
// DELETE /api/breeds/error
func (bc *BreedsController) ClearError(c *gin.Context) {
	bc.list.ClearError()
	respondSuccess(c, "error cleared")
}

// Search looks breeds up by name in the catalog, falling back to the
// stored breeds when the catalog is unreachable.
// GET /api/breeds/search?q=sib
func (bc *BreedsController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	state, err := bc.search.Search(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "search breeds")
		return
	}
	c.JSON(http.StatusOK, state)
}

// GetBreed returns a breed seen by this process with its favorite status.
// GET /api/breeds/:id
func (bc *BreedsController) GetBreed(c *gin.Context) {
	id, ok := parseBreedID(c, "id")
	if !ok {
		return
	}

	state, found, err := bc.details.Get(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get breed")
		return
	}
	if !found {
		respondNotFound(c, "breed")
		return
	}
	c.JSON(http.StatusOK, state)
}

// StreamBreed sends a breed with its favorite status as server-sent events
// until the client goes away.
// GET /api/breeds/:id/stream
func (bc *BreedsController) StreamBreed(c *gin.Context) {
	id, ok := parseBreedID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	feed, found := bc.details.Watch(ctx, id)
	if !found {
		respondNotFound(c, "breed")
		return
	}
	streamStates(c, feed)
}

func streamStates[T any](c *gin.Context, feed *watch.Feed[T]) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		state, ok := <-feed.C()
		if !ok {
			return false
		}
		c.SSEvent("state", state)
		return true
	})
}
