package models

// Session is the client's snapshot of the server-side login state
type Session struct {
	Authenticated bool
	Username      string
}

// Credentials is the payload for /api/register and /api/login
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Status is the body of GET /api/status. It doubles as the source of the
// gamification counters, which older servers omit.
type Status struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
	ID       int64  `json:"id,omitempty"`
	XP       *int   `json:"xp,omitempty"`
	Level    *int   `json:"level,omitempty"`
}

// Session projects the status into a Session
func (s Status) Session() Session {
	if !s.LoggedIn {
		return Session{}
	}
	return Session{Authenticated: true, Username: s.Username}
}

// Stats projects the status into gamification counters, reading a missing
// xp as 0 and a missing or non-positive level as 1.
func (s Status) Stats() GamificationStats {
	stats := GamificationStats{XP: 0, Level: 1}
	if s.XP != nil && *s.XP > 0 {
		stats.XP = *s.XP
	}
	if s.Level != nil && *s.Level > 0 {
		stats.Level = *s.Level
	}
	return stats
}

// MessageResponse is the generic body returned by mutating endpoints
type MessageResponse struct {
	Message  string `json:"message"`
	Username string `json:"username,omitempty"`
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
}
