package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "habitdash.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitWritesDefaults(t *testing.T) {
	store := setupStore(t)

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got != storage.DefaultSettings() {
		t.Errorf("GetSettings() = %+v, want defaults %+v", got, storage.DefaultSettings())
	}

	current, latest, err := store.SchemaVersion()
	if err != nil || current != latest {
		t.Errorf("SchemaVersion() = %d, %d, %v", current, latest, err)
	}
}

func TestInitKeepsExistingSettings(t *testing.T) {
	store := setupStore(t)
	custom := models.Settings{
		BaseURL:           "https://habits.example.com",
		DarkMode:          false,
		SleepEnabled:      true,
		RequestTimeoutSec: 30,
		ConfirmDelete:     false,
	}
	if err := store.SaveSettings(custom); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	if err := store.Init(); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	got, _ := store.GetSettings()
	if got != custom {
		t.Errorf("settings after re-init = %+v, want %+v", got, custom)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitdash.db")

	if err := NewStore(path).Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Fatalf("Load() before init error = %v, want ErrNotInitialized", err)
	}

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	settings := storage.DefaultSettings()
	settings.BaseURL = "http://10.0.0.2:5000/"
	if err := first.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer second.Close()
	got, _ := second.GetSettings()
	if got.BaseURL != "http://10.0.0.2:5000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", got.BaseURL)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	store := setupStore(t)

	tests := []struct {
		name   string
		mutate func(*models.Settings)
	}{
		{"empty base url", func(s *models.Settings) { s.BaseURL = "  " }},
		{"zero timeout", func(s *models.Settings) { s.RequestTimeoutSec = 0 }},
		{"negative timeout", func(s *models.Settings) { s.RequestTimeoutSec = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := storage.DefaultSettings()
			tt.mutate(&settings)
			if err := store.SaveSettings(settings); err == nil {
				t.Error("SaveSettings() error = nil, want validation error")
			}
		})
	}
}

func TestKnownServers(t *testing.T) {
	store := setupStore(t)
	url := "http://localhost:5000"

	name, err := store.LastUsername(url)
	if err != nil || name != "" {
		t.Fatalf("LastUsername() of unknown server = %q, %v", name, err)
	}

	if err := store.RememberServer(url, "amy"); err != nil {
		t.Fatalf("RememberServer() error = %v", err)
	}
	if err := store.RememberServer(url, "bob"); err != nil {
		t.Fatalf("RememberServer() second error = %v", err)
	}
	if name, _ = store.LastUsername(url); name != "bob" {
		t.Errorf("LastUsername() = %q, want bob", name)
	}
}

func TestQueriesBeforeLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "habitdash.db"))

	if _, err := s.GetSettings(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("GetSettings() error = %v, want ErrNotInitialized", err)
	}
	if _, err := s.LastUsername("http://x"); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("LastUsername() error = %v, want ErrNotInitialized", err)
	}
	if _, _, err := s.SchemaVersion(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("SchemaVersion() error = %v, want ErrNotInitialized", err)
	}
}
