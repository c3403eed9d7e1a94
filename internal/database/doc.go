// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, change notifier
//	├── breeds/          # Stored breeds and their live queries
//	├── favourites/      # Favorite markers joined to stored breeds
//	└── settings/        # Key/value preferences
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./breedy.db")
//
//	breedsRepo := breeds.NewRepository(db.DB, db.Changes)
//	favouritesRepo := favourites.NewRepository(db.DB, db.Changes)
//	settingsRepo := settings.NewRepository(db.DB)
//
//	feed := breedsRepo.Watch(ctx)
//	for rows := range feed.C() {
//		...
//	}
//
// # Live Queries
//
// Writes signal db.Changes with the table they touched once the statement
// has returned. Watch methods reload on those signals and skip results equal
// to the previous emission. The favorites feed joins the breeds table, so it
// also wakes on breeds writes.
//
// # Interface Implementations
//
//   - breeds.Repository: implements breeds.BreedStore (internal/breeds)
//   - favourites.Repository: implements favourites.MarkerStore (internal/favourites)
//   - settingsstore.SettingsStore wraps settings.Repository and implements
//     breeds.Preferences
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Add the entity to Migrate and a table constant for change notifications
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
