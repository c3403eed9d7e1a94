package entities

import (
	"time"
)

// Preference is a small scalar persisted as text under a unique key.
type Preference struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}

// Known preference keys
const (
	// PreferenceKeyLastPage is the pagination cursor: the last catalog page
	// fetched by fetch-more.
	PreferenceKeyLastPage = "last_page"

	// Breed sync overrides (take priority over environment)
	PreferenceKeyBreedSyncEnabled  = "breed_sync_enabled"
	PreferenceKeyBreedSyncSchedule = "breed_sync_schedule"

	// Breed sync bookkeeping
	PreferenceKeyBreedSyncLastAt      = "breed_sync_last_at"
	PreferenceKeyBreedSyncLastStatus  = "breed_sync_last_status"
	PreferenceKeyBreedSyncLastMessage = "breed_sync_last_message"
	PreferenceKeyBreedSyncLastCount   = "breed_sync_last_count"
)
