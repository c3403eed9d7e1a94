package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/breedy/internal/database"
)

// Counter reports the number of stored rows.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version,omitempty"`
	Checks     map[string]string `json:"checks"`
	Breeds     *int64            `json:"breeds,omitempty"`
	Favourites *int64            `json:"favourites,omitempty"`
}

type HealthController struct {
	db         *database.Database
	breeds     Counter
	favourites Counter
	version    string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// WithCounters adds stored breed and favourite counts to the report.
func (h *HealthController) WithCounters(breeds, favourites Counter) *HealthController {
	h.breeds = breeds
	h.favourites = favourites
	return h
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Check database connectivity
	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	if status == "healthy" {
		health.Breeds = h.count(c.Request.Context(), h.breeds, "breeds", checks)
		health.Favourites = h.count(c.Request.Context(), h.favourites, "favourites", checks)
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) count(ctx context.Context, counter Counter, name string, checks map[string]string) *int64 {
	if counter == nil {
		return nil
	}
	n, err := counter.Count(ctx)
	if err != nil {
		checks[name] = "error: " + err.Error()
		return nil
	}
	return &n
}
