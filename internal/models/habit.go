package models

// Habit is the server's view of a tracked habit. Streak and LoggedToday are
// computed by the server and only displayed here.
type Habit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Frequency   string `json:"frequency,omitempty"`
	Streak      int    `json:"streak"`
	LoggedToday bool   `json:"logged_today"`
}

// CreateHabitRequest is the payload for POST /api/habits
type CreateHabitRequest struct {
	Name string `json:"name"`
}

// LogHabitRequest is the payload for POST /api/log
type LogHabitRequest struct {
	HabitID int64 `json:"habit_id"`
}
