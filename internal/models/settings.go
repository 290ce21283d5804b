package models

// Settings represents client-side settings stored in the local database
type Settings struct {
	BaseURL           string `json:"base_url"`            // root of the habit API, e.g. "http://localhost:5000"
	DarkMode          bool   `json:"dark_mode"`           // whether the TUI uses the dark palette
	SleepEnabled      bool   `json:"sleep_enabled"`       // whether the sleep log form is offered
	RequestTimeoutSec int    `json:"request_timeout_sec"` // per-request deadline in seconds
	ConfirmDelete     bool   `json:"confirm_delete"`      // whether CLI deletes prompt before sending
}
