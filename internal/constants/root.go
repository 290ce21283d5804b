package constants

// SessionState represents the current screen of the TUI application
type SessionState int

const (
	AppName           = "habitdash"
	DefaultConfigPath = "~/.config/habitdash/habitdash.db"
	Version           = "v0.3.0"

	// DefaultBaseURL is where the habit API listens out of the box
	DefaultBaseURL = "http://localhost:5000"

	DefaultRequestTimeoutSec = 10
	DefaultDarkMode          = true
	DefaultSleepEnabled      = false
	DefaultConfirmDelete     = true

	// XPPerLevel is the client-assumed XP needed per level step
	XPPerLevel = 100

	// HabitLogXP is only echoed in the check-off notice; the server owns the value
	HabitLogXP = 10

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// KeyringSessionPrefix prefixes the keyring user under which a session cookie is kept
	KeyringSessionPrefix = "session:"

	// RequestIDHeader carries a per-request uuid for log correlation
	RequestIDHeader = "X-Request-ID"
)

// Session States
const (
	StateAuth SessionState = iota
	StateDashboard
	StateLogin
	StateRegister
	StateAddHabit
	StateSleep
	StateConfirmDelete
	StateNotice
)
