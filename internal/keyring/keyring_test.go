package keyring

import (
	"errors"
	"net/http"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	keyring.MockInit()

	store := NewSessionStore("http://localhost:5000")

	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() on empty keyring error = %v, want ErrNotFound", err)
	}

	if err := store.Save([]*http.Cookie{{Name: "session", Value: "abc"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cookies, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value != "abc" {
		t.Errorf("Load() = %+v", cookies)
	}
	if cookies[0].Path != "/" {
		t.Errorf("restored cookie path = %q, want /", cookies[0].Path)
	}
}

func TestSessionStoreScopedByBaseURL(t *testing.T) {
	keyring.MockInit()

	a := NewSessionStore("http://localhost:5000")
	b := NewSessionStore("https://habits.example.com")

	if err := a.Save([]*http.Cookie{{Name: "session", Value: "local"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := b.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("other base URL saw the session: %v", err)
	}
}

func TestSessionStoreClear(t *testing.T) {
	keyring.MockInit()

	store := NewSessionStore("http://localhost:5000")
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() on empty keyring error = %v", err)
	}

	if err := store.Save([]*http.Cookie{{Name: "session", Value: "abc"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(nil); err != nil {
		t.Fatalf("Save(nil) error = %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Save(nil) error = %v, want ErrNotFound", err)
	}
}

func TestSessionStoreUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus not running"))

	store := NewSessionStore("http://localhost:5000")
	if _, err := store.Load(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("Load() error = %v, want ErrKeyringUnavailable", err)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
}
