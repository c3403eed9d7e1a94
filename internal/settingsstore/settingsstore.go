package settingsstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mrlokans/breedy/internal/database"
	"github.com/mrlokans/breedy/internal/database/settings"
)

// Values are stored as text. Typed reads fall back to the caller's default
// when the key is missing or the stored text does not parse.
type SettingsStore struct {
	repo *settings.Repository
}

func New(db *database.Database) *SettingsStore {
	return &SettingsStore{repo: settings.NewRepository(db.DB)}
}

// ReadString returns the stored value for key, or def when unset.
func (s *SettingsStore) ReadString(ctx context.Context, key, def string) (string, error) {
	pref, err := s.repo.GetPreference(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	if pref == nil {
		return def, nil
	}
	return pref.Value, nil
}

func (s *SettingsStore) WriteString(ctx context.Context, key, value string) error {
	if err := s.repo.SetPreference(ctx, key, value); err != nil {
		return fmt.Errorf("failed to write preference %q: %w", key, err)
	}
	return nil
}

// ReadInt returns the stored integer for key, or def when unset or unparsable.
func (s *SettingsStore) ReadInt(ctx context.Context, key string, def int) (int, error) {
	pref, err := s.repo.GetPreference(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read preference %q: %w", key, err)
	}
	if pref == nil {
		return def, nil
	}
	v, err := strconv.Atoi(pref.Value)
	if err != nil {
		return def, nil
	}
	return v, nil
}

func (s *SettingsStore) WriteInt(ctx context.Context, key string, value int) error {
	return s.WriteString(ctx, key, strconv.Itoa(value))
}

// ReadBool returns the stored boolean for key, or def when unset or unparsable.
func (s *SettingsStore) ReadBool(ctx context.Context, key string, def bool) (bool, error) {
	raw, err := s.ReadString(ctx, key, "")
	if err != nil || raw == "" {
		return def, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, nil
	}
	return v, nil
}

func (s *SettingsStore) WriteBool(ctx context.Context, key string, value bool) error {
	return s.WriteString(ctx, key, strconv.FormatBool(value))
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	if err := s.repo.DeletePreference(ctx, key); err != nil {
		return fmt.Errorf("failed to delete preference %q: %w", key, err)
	}
	return nil
}
