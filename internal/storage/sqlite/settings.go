package sqlite

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/storage"
)

const (
	keyBaseURL        = "base_url"
	keyDarkMode       = "dark_mode"
	keySleepEnabled   = "sleep_enabled"
	keyRequestTimeout = "request_timeout_sec"
	keyConfirmDelete  = "confirm_delete"
)

// GetSettings reads the settings table. Keys that are missing keep their
// default value.
func (s *Store) GetSettings() (models.Settings, error) {
	db, err := s.conn()
	if err != nil {
		return models.Settings{}, err
	}
	rows, err := db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := storage.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case keyBaseURL:
			settings.BaseURL = value
		case keyDarkMode:
			settings.DarkMode = value == "true"
		case keySleepEnabled:
			settings.SleepEnabled = value == "true"
		case keyRequestTimeout:
			n, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing %s: %w", keyRequestTimeout, err)
			}
			settings.RequestTimeoutSec = n
		case keyConfirmDelete:
			settings.ConfirmDelete = value == "true"
		}
	}
	return settings, rows.Err()
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	db, err := s.conn()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	values := [][2]string{
		{keyBaseURL, strings.TrimRight(settings.BaseURL, "/")},
		{keyDarkMode, strconv.FormatBool(settings.DarkMode)},
		{keySleepEnabled, strconv.FormatBool(settings.SleepEnabled)},
		{keyRequestTimeout, strconv.Itoa(settings.RequestTimeoutSec)},
		{keyConfirmDelete, strconv.FormatBool(settings.ConfirmDelete)},
	}
	for _, kv := range values {
		if _, err := stmt.Exec(kv[0], kv[1]); err != nil {
			return fmt.Errorf("saving %s: %w", kv[0], err)
		}
	}

	return tx.Commit()
}

func validateSettings(settings models.Settings) error {
	if strings.TrimSpace(settings.BaseURL) == "" {
		return fmt.Errorf("base_url cannot be empty")
	}
	if settings.RequestTimeoutSec <= 0 {
		return fmt.Errorf("request_timeout_sec must be positive, got %d", settings.RequestTimeoutSec)
	}
	return nil
}
