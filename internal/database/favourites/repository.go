// Package favourites provides database operations for favorite breed markers.
//
// A marker may exist for an id that is not in the breeds table. The joined
// queries (SelectAll, Watch) only return markers whose breed is stored.
//
// # Usage
//
//	repo := favourites.NewRepository(db.DB, db.Changes)
//	err := repo.Upsert(ctx, "abys", time.Now().UnixMilli())
//	feed := repo.Watch(ctx)
package favourites

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/breedy/internal/database/breeds"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// Table is the name of the favorite markers table and its change topic.
const Table = "favorite_breeds"

// Repository handles all favourites database operations.
type Repository struct {
	db      *gorm.DB
	changes *watch.Notifier
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB, changes *watch.Notifier) *Repository {
	return &Repository{db: db, changes: changes}
}

// Upsert inserts or replaces the marker for id.
func (r *Repository) Upsert(ctx context.Context, id string, createdAt int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marker := entities.FavoriteBreedEntity{ID: id, CreatedAt: createdAt}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&marker).Error
	})
	if err != nil {
		return err
	}
	r.changes.Notify(Table)
	return nil
}

// Delete removes the marker for id. Deleting a missing marker is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&entities.FavoriteBreedEntity{})
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return err
	}
	if affected > 0 {
		r.changes.Notify(Table)
	}
	return nil
}

// SelectAll returns the stored breeds that are marked favorite, oldest
// marker first.
func (r *Repository) SelectAll(ctx context.Context) ([]entities.BreedEntity, error) {
	var rows []entities.BreedEntity
	err := r.db.WithContext(ctx).
		Table(breeds.Table).
		Select(breeds.Table+".*").
		Joins("JOIN "+Table+" ON "+Table+".id = "+breeds.Table+".id").
		Order(Table + ".created_at ASC, " + Table + ".id ASC").
		Find(&rows).Error
	return rows, err
}

// Watch returns a live view of SelectAll. It re-runs after changes to
// either the markers or the breeds they join.
func (r *Repository) Watch(ctx context.Context) *watch.Feed[[]entities.BreedEntity] {
	return watch.Query(ctx, r.changes, r.SelectAll, slices.Equal[[]entities.BreedEntity], Table, breeds.Table)
}

// SelectByID returns the marker for id, or nil if there is none.
func (r *Repository) SelectByID(ctx context.Context, id string) (*entities.FavoriteBreedEntity, error) {
	var marker entities.FavoriteBreedEntity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &marker, nil
}

// WatchByID returns a live view of SelectByID.
func (r *Repository) WatchByID(ctx context.Context, id string) *watch.Feed[*entities.FavoriteBreedEntity] {
	load := func(ctx context.Context) (*entities.FavoriteBreedEntity, error) {
		return r.SelectByID(ctx, id)
	}
	return watch.Query(ctx, r.changes, load, sameMarker, Table)
}

// Count returns the number of favorite markers, including markers whose
// breed is not stored.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.FavoriteBreedEntity{}).Count(&count).Error
	return count, err
}

func sameMarker(a, b *entities.FavoriteBreedEntity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
