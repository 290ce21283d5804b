package sqlite

import (
	"database/sql"
	"errors"
	"time"
)

// RememberServer records the last account that logged in against baseURL
func (s *Store) RememberServer(baseURL, username string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO known_servers (base_url, last_username, last_seen_at) VALUES (?, ?, ?)
		ON CONFLICT(base_url) DO UPDATE SET last_username = excluded.last_username, last_seen_at = excluded.last_seen_at`,
		baseURL, username, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LastUsername returns "" when the server has never been used
func (s *Store) LastUsername(baseURL string) (string, error) {
	db, err := s.conn()
	if err != nil {
		return "", err
	}
	var username string
	err = db.QueryRow("SELECT last_username FROM known_servers WHERE base_url = ?", baseURL).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return username, err
}
