// Package storage defines the local persistence used by the client. Nothing
// about habits lives here; the server owns all domain state.
package storage

import (
	"errors"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// ErrNotInitialized is returned by Load before `habitdash init` has run
var ErrNotInitialized = errors.New("storage not initialized, run 'habitdash init' first")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Known servers
	RememberServer(baseURL, username string) error
	LastUsername(baseURL string) (string, error)

	GetConfigPath() string
}

// DefaultSettings are written by Init and fill any key missing from the table
func DefaultSettings() models.Settings {
	return models.Settings{
		BaseURL:           constants.DefaultBaseURL,
		DarkMode:          constants.DefaultDarkMode,
		SleepEnabled:      constants.DefaultSleepEnabled,
		RequestTimeoutSec: constants.DefaultRequestTimeoutSec,
		ConfirmDelete:     constants.DefaultConfirmDelete,
	}
}
