package entrypoint

import (
	"context"
	"fmt"
	"log"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/catalog"
	"github.com/mrlokans/breedy/internal/config"
	"github.com/mrlokans/breedy/internal/database"
	breedsdb "github.com/mrlokans/breedy/internal/database/breeds"
	favouritesdb "github.com/mrlokans/breedy/internal/database/favourites"
	"github.com/mrlokans/breedy/internal/favourites"
	"github.com/mrlokans/breedy/internal/settingsstore"
	"github.com/mrlokans/breedy/internal/watch"
)

// App holds the components shared by the server and the CLI commands.
type App struct {
	Config   *config.Config
	DB       *database.Database
	Catalog  *catalog.Client
	Settings *settingsstore.SettingsStore

	BreedStore     *breedsdb.Repository
	FavouriteStore *favouritesdb.Repository

	Breeds *breeds.Repository
	Ledger *favourites.Ledger

	List    *browse.List
	Search  *browse.Search
	Details *browse.Details
}

// NewApp opens the database and wires the breed engine, the favorites
// ledger and the views on top of it.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client := catalog.NewClient(cfg.Catalog)
	settings := settingsstore.New(db)
	breedStore := breedsdb.NewRepository(db.DB, db.Changes)
	favouriteStore := favouritesdb.NewRepository(db.DB, db.Changes)

	engine := breeds.NewRepository(client, breedStore, settings)
	ledger := favourites.NewLedger(favouriteStore)

	return &App{
		Config:         cfg,
		DB:             db,
		Catalog:        client,
		Settings:       settings,
		BreedStore:     breedStore,
		FavouriteStore: favouriteStore,
		Breeds:         engine,
		Ledger:         ledger,
		List:           browse.NewList(engine, ledger),
		Search:         browse.NewSearch(engine, ledger),
		Details:        browse.NewDetails(engine, ledger),
	}, nil
}

// WarmCache loads the stored breeds into the in-memory cache. Commands
// that do not start the list call it before reconciling or favoriting.
func (a *App) WarmCache(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stored, err := watch.First(ctx, a.Breeds.ObserveBreeds(ctx))
	if err != nil {
		return fmt.Errorf("failed to load stored breeds: %w", err)
	}
	log.Printf("[BREEDS] Loaded %d stored breeds", len(stored))
	return nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
