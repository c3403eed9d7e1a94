// Package catalog is the HTTP client for the remote cat-breed catalog
// (TheCatAPI-compatible).
//
// Records are stamped with a client-side CreatedAt when decoded, and
// records without an id are dropped.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/breedy/internal/config"
	"github.com/mrlokans/breedy/internal/entities"
)

const userAgent = "Breedy/1.0 (https://github.com/mrlokans/breedy)"

// Client fetches breed records from the catalog API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rateLimiter
	now         func() time.Time
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		timer := time.NewTimer(r.interval - since)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.lastCall = time.Now()
	return nil
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg config.Catalog) *Client {
	host := cfg.Host
	if host == "" {
		host = config.DefaultCatalogHost
	}
	version := cfg.Version
	if version == "" {
		version = config.DefaultCatalogVersion
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(host, "/") + "/" + strings.Trim(version, "/"),
		apiKey:      cfg.APIKey,
		rateLimiter: newRateLimiter(cfg.MinInterval),
		now:         time.Now,
	}
}

// ListBreeds returns one page of the catalog. Pages are zero-based.
func (c *Client) ListBreeds(ctx context.Context, limit, page int) ([]entities.Breed, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("page", strconv.Itoa(page))

	return c.getBreeds(ctx, "list breeds", "/breeds?"+query.Encode())
}

// SearchBreeds returns catalog records whose name matches q.
func (c *Client) SearchBreeds(ctx context.Context, q string) ([]entities.Breed, error) {
	query := url.Values{}
	query.Set("q", q)

	return c.getBreeds(ctx, "search breeds", "/breeds/search?"+query.Encode())
}

func (c *Client) getBreeds(ctx context.Context, op, path string) ([]entities.Breed, error) {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	var records []entities.Breed
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op, err)
	}

	return c.validated(records), nil
}

// validated drops records without an id and stamps the rest with the
// decode time.
func (c *Client) validated(records []entities.Breed) []entities.Breed {
	createdAt := c.now().UnixMilli()
	out := make([]entities.Breed, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			continue
		}
		r.CreatedAt = createdAt
		out = append(out, r)
	}
	return out
}
