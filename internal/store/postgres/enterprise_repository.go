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

	"github.com/jackc/pgx/v5"

	"github.com/bhashai/bhashai/internal/enterprise"
)

// EnterpriseRepository implements enterprise.Repository
type EnterpriseRepository struct {
	db *DB
}

// NewEnterpriseRepository creates a new enterprise repository
func NewEnterpriseRepository(db *DB) *EnterpriseRepository {
	return &EnterpriseRepository{db: db}
}

// Create inserts an enterprise
func (r *EnterpriseRepository) Create(ctx context.Context, e *enterprise.Enterprise) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO enterprises (id, name, type, contact_email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Name, e.Type, e.ContactEmail, e.Status, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert enterprise: %w", err)
	}
	return nil
}

// GetByID retrieves an enterprise by ID
func (r *EnterpriseRepository) GetByID(ctx context.Context, id string) (*enterprise.Enterprise, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, name, type, contact_email, status, created_at, updated_at
		FROM enterprises WHERE id = $1
	`, id))
}

// GetByName retrieves an enterprise by its unique name
func (r *EnterpriseRepository) GetByName(ctx context.Context, name string) (*enterprise.Enterprise, error) {
	return r.scanOne(r.db.pool.QueryRow(ctx, `
		SELECT id, name, type, contact_email, status, created_at, updated_at
		FROM enterprises WHERE name = $1
	`, name))
}

// Update updates an enterprise
func (r *EnterpriseRepository) Update(ctx context.Context, e *enterprise.Enterprise) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE enterprises
		SET name = $2, type = $3, contact_email = $4, status = $5, updated_at = $6
		WHERE id = $1
	`, e.ID, e.Name, e.Type, e.ContactEmail, e.Status, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update enterprise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return enterprise.ErrEnterpriseNotFound
	}
	return nil
}

// List lists enterprises ordered by creation
func (r *EnterpriseRepository) List(ctx context.Context, limit, offset int) ([]*enterprise.Enterprise, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, type, contact_email, status, created_at, updated_at
		FROM enterprises ORDER BY id LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list enterprises: %w", err)
	}
	defer rows.Close()

	var out []*enterprise.Enterprise
	for rows.Next() {
		var e enterprise.Enterprise
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.ContactEmail, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan enterprise: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *EnterpriseRepository) scanOne(row pgx.Row) (*enterprise.Enterprise, error) {
	var e enterprise.Enterprise
	err := row.Scan(&e.ID, &e.Name, &e.Type, &e.ContactEmail, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, enterprise.ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("failed to get enterprise: %w", err)
	}
	return &e, nil
}
