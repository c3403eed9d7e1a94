package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Optional dependencies that are nil leave their routes unregistered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Database, cfg.Version).
		WithCounters(cfg.BreedCounter, cfg.FavouriteCounter)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Breeds endpoints
	if cfg.List != nil {
		breedsController := NewBreedsController(cfg.List, cfg.Search, cfg.Details, cfg.TaskQueue)
		api.GET("/breeds", breedsController.GetList)
		api.GET("/breeds/stream", breedsController.Stream)
		api.POST("/breeds/fetch", breedsController.FetchMore)
		api.POST("/breeds/refresh", breedsController.Refresh)
		api.DELETE("/breeds/error", breedsController.ClearError)
		if cfg.Search != nil {
			api.GET("/breeds/search", breedsController.Search)
		}
		if cfg.Details != nil {
			api.GET("/breeds/:id", breedsController.GetBreed)
			api.GET("/breeds/:id/stream", breedsController.StreamBreed)
		}
	}

	// Favourites endpoints
	if cfg.Favorites != nil && cfg.List != nil {
		favouritesController := NewFavouritesController(cfg.Favorites, cfg.List)
		api.POST("/breeds/:id/favourite", favouritesController.AddFavourite)
		api.DELETE("/breeds/:id/favourite", favouritesController.RemoveFavourite)
		api.GET("/favourites", favouritesController.ListFavourites)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	// Periodic refresh settings
	if cfg.SyncSettings != nil {
		syncController := NewSyncSettingsController(cfg.SyncSettings, cfg.SyncScheduler)
		api.GET("/settings/sync", syncController.GetSettings)
		api.POST("/settings/sync", syncController.UpdateSettings)
		api.POST("/settings/sync/reset", syncController.ResetSettings)
		api.POST("/settings/sync/run", syncController.SyncNow)
		api.GET("/settings/sync/status", syncController.GetStatus)
	}

	return router
}
