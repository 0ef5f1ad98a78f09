package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bhashai/bhashai/internal/session"
)

// SessionRepository implements session.Repository
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session
func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO sessions (id, enterprise_id, user_id, ip_address, user_agent,
			expires_at, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.EnterpriseID, s.UserID, s.IPAddress, s.UserAgent,
		s.ExpiresAt, s.CreatedAt, s.LastSeenAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	var s session.Session
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, enterprise_id, user_id, ip_address, user_agent,
			expires_at, created_at, last_seen_at
		FROM sessions WHERE id = $1
	`, sessionID).Scan(&s.ID, &s.EnterpriseID, &s.UserID, &s.IPAddress, &s.UserAgent,
		&s.ExpiresAt, &s.CreatedAt, &s.LastSeenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// Update refreshes a session's expiry and last-seen time
func (r *SessionRepository) Update(ctx context.Context, s *session.Session) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE sessions SET expires_at = $2, last_seen_at = $3 WHERE id = $1
	`, s.ID, s.ExpiresAt, s.LastSeenAt)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// Delete removes a session
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByUserID removes all of a user's sessions
func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
