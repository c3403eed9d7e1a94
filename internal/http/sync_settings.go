package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/breedy/internal/settingsstore"
)

// SyncSettingsStore reads and writes the periodic refresh settings.
type SyncSettingsStore interface {
	GetBreedSyncConfig(ctx context.Context) settingsstore.BreedSyncConfig
	GetBreedSyncConfigInfo(ctx context.Context) settingsstore.BreedSyncConfigInfo
	GetBreedSyncStatus(ctx context.Context) settingsstore.BreedSyncStatus
	SetBreedSyncEnabled(ctx context.Context, enabled bool) error
	SetBreedSyncSchedule(ctx context.Context, schedule string) error
	ClearBreedSyncSettings(ctx context.Context) error
}

// SyncScheduler runs the periodic refresh.
type SyncScheduler interface {
	Reschedule(ctx context.Context) error
	RunNow()
	IsRunning() bool
	IsSyncing() bool
	GetNextRunTime() *time.Time
}

// SyncSettingsController handles periodic refresh settings and operations
type SyncSettingsController struct {
	settingsStore SyncSettingsStore
	scheduler     SyncScheduler
}

// NewSyncSettingsController creates a new controller
func NewSyncSettingsController(store SyncSettingsStore, sched SyncScheduler) *SyncSettingsController {
	return &SyncSettingsController{
		settingsStore: store,
		scheduler:     sched,
	}
}

// SyncSettingsResponse is the response for GET /api/settings/sync
type SyncSettingsResponse struct {
	Config    settingsstore.BreedSyncConfigInfo `json:"config"`
	Status    settingsstore.BreedSyncStatus     `json:"status"`
	NextRun   *time.Time                        `json:"next_run,omitempty"`
	IsRunning bool                              `json:"is_running"`
	IsSyncing bool                              `json:"is_syncing"`
	Presets   []SchedulePreset                  `json:"presets"`
}

// SchedulePreset is a predefined schedule option
type SchedulePreset struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

var schedulePresets = []SchedulePreset{
	{Label: "Every 30 minutes", Value: "*/30 * * * *", Description: "Runs at :00, :30"},
	{Label: "Every hour", Value: "0 * * * *", Description: "Runs at the top of every hour"},
	{Label: "Every 6 hours", Value: "0 */6 * * *", Description: "Runs at midnight, 6am, noon, 6pm"},
	{Label: "Daily at midnight", Value: "0 0 * * *", Description: "Runs once daily at 00:00"},
	{Label: "Weekly on Sunday", Value: "0 0 * * 0", Description: "Runs every Sunday at midnight"},
}

// GetSettings returns current periodic refresh settings
func (sc *SyncSettingsController) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	response := SyncSettingsResponse{
		Config:  sc.settingsStore.GetBreedSyncConfigInfo(ctx),
		Status:  sc.settingsStore.GetBreedSyncStatus(ctx),
		Presets: schedulePresets,
	}
	sc.fillSchedulerState(&response.NextRun, &response.IsRunning, &response.IsSyncing)

	c.JSON(http.StatusOK, response)
}

// UpdateSettingsRequest is the request body for POST /api/settings/sync
type UpdateSettingsRequest struct {
	Enabled  *bool  `form:"enabled" json:"enabled"`
	Schedule string `form:"schedule" json:"schedule"`
}

// UpdateSettings saves periodic refresh settings
func (sc *SyncSettingsController) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBadRequest(c, "invalid request: "+err.Error())
		return
	}

	ctx := c.Request.Context()

	// Validate before saving anything
	if req.Schedule != "" {
		if err := settingsstore.ValidateCronSchedule(req.Schedule); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	if req.Enabled != nil {
		if err := sc.settingsStore.SetBreedSyncEnabled(ctx, *req.Enabled); err != nil {
			respondInternalError(c, err, "save sync enabled")
			return
		}
	}
	if req.Schedule != "" {
		if err := sc.settingsStore.SetBreedSyncSchedule(ctx, req.Schedule); err != nil {
			respondInternalError(c, err, "save sync schedule")
			return
		}
	}

	// Reschedule the sync job if scheduler is available
	if sc.scheduler != nil {
		if err := sc.scheduler.Reschedule(ctx); err != nil {
			respondInternalError(c, err, "reschedule sync")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  sc.settingsStore.GetBreedSyncConfigInfo(ctx),
	})
}

// ResetSettings clears database overrides, reverting to env/defaults
func (sc *SyncSettingsController) ResetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	if err := sc.settingsStore.ClearBreedSyncSettings(ctx); err != nil {
		respondInternalError(c, err, "reset sync settings")
		return
	}

	// Reschedule with new settings
	if sc.scheduler != nil {
		_ = sc.scheduler.Reschedule(ctx)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"config":  sc.settingsStore.GetBreedSyncConfigInfo(ctx),
	})
}

// SyncNow triggers an immediate refresh
func (sc *SyncSettingsController) SyncNow(c *gin.Context) {
	if sc.scheduler == nil {
		respondError(c, http.StatusServiceUnavailable, "scheduler not available")
		return
	}
	if sc.scheduler.IsSyncing() {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "sync already running", Code: CodeBusy})
		return
	}

	sc.scheduler.RunNow()
	respondAccepted(c, "sync started in background", nil)
}

// GetStatus returns just the sync status (for polling)
func (sc *SyncSettingsController) GetStatus(c *gin.Context) {
	var nextRun *time.Time
	var isRunning, isSyncing bool
	sc.fillSchedulerState(&nextRun, &isRunning, &isSyncing)

	c.JSON(http.StatusOK, gin.H{
		"status":     sc.settingsStore.GetBreedSyncStatus(c.Request.Context()),
		"next_run":   nextRun,
		"is_running": isRunning,
		"is_syncing": isSyncing,
	})
}

func (sc *SyncSettingsController) fillSchedulerState(nextRun **time.Time, isRunning, isSyncing *bool) {
	if sc.scheduler == nil {
		return
	}
	*nextRun = sc.scheduler.GetNextRunTime()
	*isRunning = sc.scheduler.IsRunning()
	*isSyncing = sc.scheduler.IsSyncing()
}
