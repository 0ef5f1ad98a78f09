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

	"github.com/bhashai/bhashai/internal/orgs"
)

// OrganizationRepository implements orgs.Repository
type OrganizationRepository struct {
	db *DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create inserts an organization
func (r *OrganizationRepository) Create(ctx context.Context, o *orgs.Organization) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO organizations (id, enterprise_id, name, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.EnterpriseID, o.Name, o.Description, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

// GetByID retrieves an organization scoped to an enterprise
func (r *OrganizationRepository) GetByID(ctx context.Context, enterpriseID, id string) (*orgs.Organization, error) {
	var o orgs.Organization
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, enterprise_id, name, description, status, created_at, updated_at
		FROM organizations WHERE enterprise_id = $1 AND id = $2
	`, enterpriseID, id).Scan(&o.ID, &o.EnterpriseID, &o.Name, &o.Description, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orgs.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return &o, nil
}

// Update updates an organization
func (r *OrganizationRepository) Update(ctx context.Context, o *orgs.Organization) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE organizations SET name = $3, description = $4, status = $5, updated_at = $6
		WHERE enterprise_id = $1 AND id = $2
	`, o.EnterpriseID, o.ID, o.Name, o.Description, o.Status, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return orgs.ErrOrganizationNotFound
	}
	return nil
}

// Delete removes an organization
func (r *OrganizationRepository) Delete(ctx context.Context, enterpriseID, id string) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM organizations WHERE enterprise_id = $1 AND id = $2`, enterpriseID, id)
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return orgs.ErrOrganizationNotFound
	}
	return nil
}

// ListByEnterprise lists an enterprise's organizations
func (r *OrganizationRepository) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*orgs.Organization, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, enterprise_id, name, description, status, created_at, updated_at
		FROM organizations WHERE enterprise_id = $1 ORDER BY id LIMIT $2 OFFSET $3
	`, enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var out []*orgs.Organization
	for rows.Next() {
		var o orgs.Organization
		if err := rows.Scan(&o.ID, &o.EnterpriseID, &o.Name, &o.Description, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// ChannelRepository implements orgs.ChannelRepository
type ChannelRepository struct {
	db *DB
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Create inserts a channel
func (r *ChannelRepository) Create(ctx context.Context, c *orgs.Channel) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO channels (id, organization_id, enterprise_id, name, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.OrganizationID, c.EnterpriseID, c.Name, c.Category, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert channel: %w", err)
	}
	return nil
}

// GetByID retrieves a channel scoped to an enterprise
func (r *ChannelRepository) GetByID(ctx context.Context, enterpriseID, id string) (*orgs.Channel, error) {
	var c orgs.Channel
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, organization_id, enterprise_id, name, category, status, created_at, updated_at
		FROM channels WHERE enterprise_id = $1 AND id = $2
	`, enterpriseID, id).Scan(&c.ID, &c.OrganizationID, &c.EnterpriseID, &c.Name, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orgs.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return &c, nil
}

// Update updates a channel
func (r *ChannelRepository) Update(ctx context.Context, c *orgs.Channel) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE channels SET name = $3, status = $4, updated_at = $5
		WHERE enterprise_id = $1 AND id = $2
	`, c.EnterpriseID, c.ID, c.Name, c.Status, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return orgs.ErrChannelNotFound
	}
	return nil
}

// Delete removes a channel
func (r *ChannelRepository) Delete(ctx context.Context, enterpriseID, id string) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM channels WHERE enterprise_id = $1 AND id = $2`, enterpriseID, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return orgs.ErrChannelNotFound
	}
	return nil
}

// ListByOrganization lists an organization's channels
func (r *ChannelRepository) ListByOrganization(ctx context.Context, enterpriseID, organizationID string) ([]*orgs.Channel, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, organization_id, enterprise_id, name, category, status, created_at, updated_at
		FROM channels WHERE enterprise_id = $1 AND organization_id = $2 ORDER BY id
	`, enterpriseID, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var out []*orgs.Channel
	for rows.Next() {
		var c orgs.Channel
		if err := rows.Scan(&c.ID, &c.OrganizationID, &c.EnterpriseID, &c.Name, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
