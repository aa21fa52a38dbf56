package state

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// PreferenceNameAuthToken names the stored bearer credential.
	PreferenceNameAuthToken = "auth_token"
	// PreferenceNameDisplayMode names the stored light/dark preference.
	PreferenceNameDisplayMode = "display_mode"

	errorMessageMissingDatabase       = "state: missing database handle"
	errorMessageMissingPreferenceName = "state: missing preference name"
	errorMessageReadPreference        = "state: read preference"
	errorMessageWritePreference       = "state: write preference"
	errorMessageErasePreference       = "state: erase preference"
)

var (
	// ErrMissingDatabase indicates the store was constructed without a database handle.
	ErrMissingDatabase = errors.New(errorMessageMissingDatabase)
	// ErrMissingPreferenceName indicates an empty preference name was supplied.
	ErrMissingPreferenceName = errors.New(errorMessageMissingPreferenceName)
)

// Preference is one durably stored console setting.
type Preference struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"not null;size:4000"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Store persists the console's durable settings (the bearer token and the
// display-mode preference) across process restarts.
type Store struct {
	database *gorm.DB
}

// NewStore constructs a Store over an opened and migrated database.
func NewStore(database *gorm.DB) (*Store, error) {
	if database == nil {
		return nil, ErrMissingDatabase
	}
	return &Store{database: database}, nil
}

// Read returns the stored value for the preference, or an empty string and
// found=false when nothing is stored under that name.
func (store *Store) Read(preferenceName string) (string, bool, error) {
	trimmedName := strings.TrimSpace(preferenceName)
	if trimmedName == "" {
		return "", false, ErrMissingPreferenceName
	}

	var preference Preference
	queryErr := store.database.First(&preference, "name = ?", trimmedName).Error
	if errors.Is(queryErr, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if queryErr != nil {
		return "", false, fmt.Errorf("%s: %w", errorMessageReadPreference, queryErr)
	}

	return preference.Value, true, nil
}

// Write stores the value under the preference name, replacing any previous
// value.
func (store *Store) Write(preferenceName string, preferenceValue string) error {
	trimmedName := strings.TrimSpace(preferenceName)
	if trimmedName == "" {
		return ErrMissingPreferenceName
	}

	preference := Preference{Name: trimmedName, Value: preferenceValue}
	writeErr := store.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&preference).Error
	if writeErr != nil {
		return fmt.Errorf("%s: %w", errorMessageWritePreference, writeErr)
	}

	return nil
}

// Erase removes the stored value for the preference name. Erasing a name that
// holds no value is not an error.
func (store *Store) Erase(preferenceName string) error {
	trimmedName := strings.TrimSpace(preferenceName)
	if trimmedName == "" {
		return ErrMissingPreferenceName
	}

	eraseErr := store.database.Delete(&Preference{}, "name = ?", trimmedName).Error
	if eraseErr != nil {
		return fmt.Errorf("%s: %w", errorMessageErasePreference, eraseErr)
	}

	return nil
}
