package models

// GamificationStats holds the opaque server-owned counters
type GamificationStats struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

// SleepLog is the payload for POST /api/sleep. Nothing is kept after submit.
type SleepLog struct {
	Bedtime string `json:"bedtime"`
	WakeUp  string `json:"wake_up"`
	Quality string `json:"quality"`
}
