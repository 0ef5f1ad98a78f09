// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bhashai/bhashai/internal/identity"
)

// UserRepository implements identity.UserRepository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, enterprise_id, email, name, role, status,
	failed_login_attempts, locked_until, created_at, updated_at`

// Create inserts a user
func (r *UserRepository) Create(ctx context.Context, user *identity.User) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO users (id, enterprise_id, email, name, role, status,
			failed_login_attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, user.EnterpriseID, user.Email, user.Name, user.Role, user.Status,
		user.FailedLoginAttempts, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return identity.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// AddCredentials stores a user's password hash
func (r *UserRepository) AddCredentials(ctx context.Context, credentials *identity.Credentials) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO credentials (user_id, password_hash, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET password_hash = $2, updated_at = $3
	`, credentials.UserID, credentials.PasswordHash, now)
	if err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	credentials.UpdatedAt = now
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*identity.User, error) {
	return scanUser(r.db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by email within an enterprise
func (r *UserRepository) GetByEmail(ctx context.Context, enterpriseID, email string) (*identity.User, error) {
	return scanUser(r.db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE enterprise_id = $1 AND email = $2`,
		enterpriseID, email))
}

// ListByEnterprise lists an enterprise's users
func (r *UserRepository) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*identity.User, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE enterprise_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var out []*identity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update updates mutable user fields
func (r *UserRepository) Update(ctx context.Context, user *identity.User) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE users SET email = $2, name = $3, role = $4, status = $5, updated_at = $6
		WHERE id = $1
	`, user.ID, user.Email, user.Name, user.Role, user.Status, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

// UpdateLockout updates the failed-login counter and lockout deadline
func (r *UserRepository) UpdateLockout(ctx context.Context, userID string, failedAttempts int, lockedUntil *time.Time) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE users SET failed_login_attempts = $2, locked_until = $3, updated_at = now()
		WHERE id = $1
	`, userID, failedAttempts, lockedUntil)
	if err != nil {
		return fmt.Errorf("failed to update lockout: %w", err)
	}
	return nil
}

// GetCredentials retrieves a user's password hash
func (r *UserRepository) GetCredentials(ctx context.Context, userID string) (*identity.Credentials, error) {
	var c identity.Credentials
	err := r.db.pool.QueryRow(ctx, `
		SELECT user_id, password_hash, updated_at FROM credentials WHERE user_id = $1
	`, userID).Scan(&c.UserID, &c.PasswordHash, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	return &c, nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE credentials SET password_hash = $2, updated_at = now() WHERE user_id = $1
	`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return identity.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*identity.User, error) {
	var u identity.User
	err := row.Scan(&u.ID, &u.EnterpriseID, &u.Email, &u.Name, &u.Role, &u.Status,
		&u.FailedLoginAttempts, &u.LockedUntil, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identity.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
