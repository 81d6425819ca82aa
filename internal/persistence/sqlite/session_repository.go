package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/worktime-calendar/internal/persistence"
)

// CreateSession stores a new session token.
func (s *Storage) CreateSession(ctx context.Context, session persistence.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, expires_at, created_at)
		VALUES (?, ?, ?)`,
		session.Token,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
	)
	return mapError(err)
}

// GetSession retrieves a session by token.
func (s *Storage) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT token, expires_at, created_at FROM sessions WHERE token = ?", token)

	var (
		session                persistence.Session
		expiresRaw, createdRaw string
	)
	if err := row.Scan(&session.Token, &expiresRaw, &createdRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, err
	}

	var err error
	if session.ExpiresAt, err = parseStoredTime(expiresRaw); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseStoredTime(createdRaw); err != nil {
		return persistence.Session{}, err
	}
	return session, nil
}

// DeleteExpiredSessions removes sessions whose expiry is at or before the
// reference time.
func (s *Storage) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?", formatTime(reference))
	return mapError(err)
}
