package constants

// API endpoints
const (
	PathRoot     = "/"
	PathStatus   = "/api/status"
	PathRegister = "/api/register"
	PathLogin    = "/api/login"
	PathHabits   = "/api/habits"
	PathLog      = "/api/log"
	PathSleep    = "/api/sleep"
)

// Server message markers. The server reports outcomes as human-readable text;
// these are the only fragments the client matches on.
const (
	MsgRegistrationSuccessful = "Registration successful"
	MsgLoginSuccessful        = "Login successful"
	MsgCreatedSuccessfully    = "created successfully"
	MsgDeletedSuccessfully    = "deleted successfully"
	MsgLoggedSuccessfully     = "logged successfully"
	MsgAlreadyLoggedToday     = "already logged today"
)

// User-facing notices
const (
	NoticeSessionExpired    = "Session expired. Please log in again."
	NoticeServerUnreachable = "Server connection error. Check if the backend is reachable at %s."
	NoticeHabitLogged       = "Habit checked off! Keep the streak going! +%d XP"
	NoticeAlreadyLogged     = "You already checked this off today."
	NoticeLoginFailed       = "Login Failed: %s"
	NoticeAddHabitFailed    = "Error adding habit: %s"
	NoticeLogHabitFailed    = "Error logging habit: %s"
	NoticeDeleteFailed      = "Error deleting habit: %s"
	NoticeSleepFailed       = "Error: %s"
	NoticeMalformed         = "Unexpected response from server."
	NoticeRequestInFlight   = "Still working on the previous request."

	ConfirmDeleteHabit = "Are you sure you want to delete the habit: %s? This cannot be undone."

	PlaceholderNoHabits = "No habits yet! Press 'a' to add your first habit and start a streak."
	PlaceholderLoading  = "Loading habits..."

	LabelLogged   = "✅ DONE"
	LabelCheckOff = "🎯 Check Off"
)
