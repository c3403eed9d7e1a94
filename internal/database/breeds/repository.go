// Package breeds provides database operations for the locally stored breed
// catalog.
//
// Every successful write signals the breeds table on the change notifier, so
// live queries created with Watch re-run after the write commits.
//
// # Usage
//
//	repo := breeds.NewRepository(db.DB, db.Changes)
//	err := repo.Upsert(ctx, breed)
//	feed := repo.Watch(ctx)
package breeds

import (
	"context"
	"errors"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// Table is the name of the breeds table and its change topic.
const Table = "breeds"

// Repository handles all breed database operations.
type Repository struct {
	db      *gorm.DB
	changes *watch.Notifier
}

// NewRepository creates a new breeds repository.
func NewRepository(db *gorm.DB, changes *watch.Notifier) *Repository {
	return &Repository{db: db, changes: changes}
}

// Upsert inserts the breed or overwrites the stored row with the same id.
func (r *Repository) Upsert(ctx context.Context, breed entities.Breed) error {
	row := entities.NewBreedEntity(breed)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return err
	}
	r.changes.Notify(Table)
	return nil
}

// Delete removes the breed with the given id. Deleting a missing id is not
// an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.BreedEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		r.changes.Notify(Table)
	}
	return nil
}

// SelectAll returns every stored breed in insertion order.
func (r *Repository) SelectAll(ctx context.Context) ([]entities.BreedEntity, error) {
	var rows []entities.BreedEntity
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

// Watch returns a live view of SelectAll that re-runs after every committed
// change to the breeds table and skips unchanged results.
func (r *Repository) Watch(ctx context.Context) *watch.Feed[[]entities.BreedEntity] {
	return watch.Query(ctx, r.changes, r.SelectAll, slices.Equal[[]entities.BreedEntity], Table)
}

// SelectByNameLike returns breeds whose name contains name, case-insensitively.
func (r *Repository) SelectByNameLike(ctx context.Context, name string) ([]entities.BreedEntity, error) {
	var rows []entities.BreedEntity
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+name+"%").
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

// SelectByID returns the breed with the given id, or nil if none is stored.
func (r *Repository) SelectByID(ctx context.Context, id string) (*entities.BreedEntity, error) {
	var row entities.BreedEntity
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Count returns the number of stored breeds.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BreedEntity{}).Count(&count).Error
	return count, err
}
