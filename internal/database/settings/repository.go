// Package settings provides database operations for stored preferences.
//
// # Usage
//
//	repo := settings.NewRepository(db.DB)
//	pref, err := repo.GetPreference(ctx, "last_page")
package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/breedy/internal/entities"
)

// Repository handles all preference database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetPreference retrieves a preference by key. A missing key returns nil
// without an error.
func (r *Repository) GetPreference(ctx context.Context, key string) (*entities.Preference, error) {
	var pref entities.Preference
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// SetPreference creates or updates a preference.
func (r *Repository) SetPreference(ctx context.Context, key, value string) error {
	pref := entities.Preference{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&pref).Error
}

// DeletePreference removes a preference by key.
func (r *Repository) DeletePreference(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Preference{}).Error
}
