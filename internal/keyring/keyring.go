package keyring

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitdash/internal/constants"
)

var (
	// ErrNotFound is returned when no session is stored in the keyring
	ErrNotFound = errors.New("session not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SessionStore keeps the server session cookie in the OS keyring, one entry
// per API base URL, so separate CLI invocations share one login.
type SessionStore struct {
	baseURL string
}

// NewSessionStore returns a store scoped to the given API base URL
func NewSessionStore(baseURL string) *SessionStore {
	return &SessionStore{baseURL: baseURL}
}

func (s *SessionStore) user() string {
	return constants.KeyringSessionPrefix + s.baseURL
}

// Load returns the stored cookies. Returns ErrNotFound if nothing is stored.
func (s *SessionStore) Load() ([]*http.Cookie, error) {
	data, err := keyring.Get(constants.AppName, s.user())
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var stored []storedCookie
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("stored session is corrupt: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	return cookies, nil
}

// Save replaces the stored cookies. Saving an empty set clears the entry.
func (s *SessionStore) Save(cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return s.Clear()
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	if err := keyring.Set(constants.AppName, s.user(), string(data)); err != nil {
		return fmt.Errorf("failed to store session in keyring: %w", err)
	}
	return nil
}

// Clear removes the stored session. A missing entry is not an error.
func (s *SessionStore) Clear() error {
	err := keyring.Delete(constants.AppName, s.user())
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete session from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// If the error is ErrNotFound, the keyring is available but empty
	return err == nil || err == keyring.ErrNotFound
}
