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
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bhashai/bhashai/internal/agents"
)

const agentColumns = `id, channel_id, enterprise_id, title, description, welcome_message,
	agent_prompt, conversation_style, language_preference, calling_number,
	bolna_agent_id, status, created_at, updated_at`

// AgentRepository implements agents.Repository
type AgentRepository struct {
	db *DB
}

// NewAgentRepository creates a new voice agent repository
func NewAgentRepository(db *DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Create inserts a voice agent
func (r *AgentRepository) Create(ctx context.Context, a *agents.VoiceAgent) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO voice_agents (id, channel_id, enterprise_id, title, description,
			welcome_message, agent_prompt, conversation_style, language_preference,
			calling_number, bolna_agent_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, a.ID, a.ChannelID, a.EnterpriseID, a.Title, a.Description,
		a.WelcomeMessage, a.AgentPrompt, a.ConversationStyle, a.LanguagePreference,
		a.CallingNumber, a.BolnaAgentID, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert voice agent: %w", err)
	}
	return nil
}

// GetByID retrieves a voice agent scoped to an enterprise
func (r *AgentRepository) GetByID(ctx context.Context, enterpriseID, id string) (*agents.VoiceAgent, error) {
	return scanAgent(r.db.pool.QueryRow(ctx,
		`SELECT `+agentColumns+` FROM voice_agents WHERE enterprise_id = $1 AND id = $2`,
		enterpriseID, id))
}

// Update updates a voice agent
func (r *AgentRepository) Update(ctx context.Context, a *agents.VoiceAgent) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE voice_agents SET title = $3, description = $4, welcome_message = $5,
			agent_prompt = $6, conversation_style = $7, language_preference = $8,
			calling_number = $9, bolna_agent_id = $10, status = $11, updated_at = $12
		WHERE enterprise_id = $1 AND id = $2
	`, a.EnterpriseID, a.ID, a.Title, a.Description, a.WelcomeMessage,
		a.AgentPrompt, a.ConversationStyle, a.LanguagePreference,
		a.CallingNumber, a.BolnaAgentID, a.Status, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update voice agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return agents.ErrAgentNotFound
	}
	return nil
}

// Delete removes a voice agent
func (r *AgentRepository) Delete(ctx context.Context, enterpriseID, id string) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM voice_agents WHERE enterprise_id = $1 AND id = $2`, enterpriseID, id)
	if err != nil {
		return fmt.Errorf("failed to delete voice agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return agents.ErrAgentNotFound
	}
	return nil
}

// ListByEnterprise lists an enterprise's voice agents
func (r *AgentRepository) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*agents.VoiceAgent, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+agentColumns+` FROM voice_agents
		 WHERE enterprise_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice agents: %w", err)
	}
	defer rows.Close()
	return collectAgents(rows)
}

// ListByChannel lists the voice agents attached to a channel
func (r *AgentRepository) ListByChannel(ctx context.Context, enterpriseID, channelID string) ([]*agents.VoiceAgent, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+agentColumns+` FROM voice_agents
		 WHERE enterprise_id = $1 AND channel_id = $2 ORDER BY id`,
		enterpriseID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list voice agents: %w", err)
	}
	defer rows.Close()
	return collectAgents(rows)
}

func collectAgents(rows pgx.Rows) ([]*agents.VoiceAgent, error) {
	var out []*agents.VoiceAgent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAgent(row pgx.Row) (*agents.VoiceAgent, error) {
	var a agents.VoiceAgent
	err := row.Scan(&a.ID, &a.ChannelID, &a.EnterpriseID, &a.Title, &a.Description,
		&a.WelcomeMessage, &a.AgentPrompt, &a.ConversationStyle, &a.LanguagePreference,
		&a.CallingNumber, &a.BolnaAgentID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, agents.ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to scan voice agent: %w", err)
	}
	return &a, nil
}

// ContactRepository implements agents.ContactRepository
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, voice_agent_id, enterprise_id, name, phone, status, created_at, updated_at`

// Create inserts a contact. The (phone, voice_agent_id) unique
// constraint turns duplicates into agents.ErrDuplicateContact.
func (r *ContactRepository) Create(ctx context.Context, c *agents.Contact) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO contacts (id, voice_agent_id, enterprise_id, name, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.VoiceAgentID, c.EnterpriseID, c.Name, c.Phone, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return agents.ErrDuplicateContact
		}
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// GetByID retrieves a contact scoped to an enterprise
func (r *ContactRepository) GetByID(ctx context.Context, enterpriseID, id string) (*agents.Contact, error) {
	return scanContact(r.db.pool.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE enterprise_id = $1 AND id = $2`,
		enterpriseID, id))
}

// GetByIDs retrieves the subset of ids that resolve to active contacts
// within the enterprise. Missing, foreign, or inactive ids are simply
// absent from the result.
func (r *ContactRepository) GetByIDs(ctx context.Context, enterpriseID string, ids []string) ([]*agents.Contact, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE enterprise_id = $1 AND id = ANY($2) AND status = 'active'`,
		enterpriseID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	defer rows.Close()
	return collectContacts(rows)
}

// Update updates a contact
func (r *ContactRepository) Update(ctx context.Context, c *agents.Contact) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE contacts SET name = $3, phone = $4, status = $5, updated_at = $6
		WHERE enterprise_id = $1 AND id = $2
	`, c.EnterpriseID, c.ID, c.Name, c.Phone, c.Status, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return agents.ErrDuplicateContact
		}
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return agents.ErrContactNotFound
	}
	return nil
}

// Delete removes a contact
func (r *ContactRepository) Delete(ctx context.Context, enterpriseID, id string) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM contacts WHERE enterprise_id = $1 AND id = $2`, enterpriseID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return agents.ErrContactNotFound
	}
	return nil
}

// ListByAgent lists an agent's contacts
func (r *ContactRepository) ListByAgent(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*agents.Contact, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+contactColumns+` FROM contacts
		 WHERE enterprise_id = $1 AND voice_agent_id = $2 ORDER BY id LIMIT $3 OFFSET $4`,
		enterpriseID, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()
	return collectContacts(rows)
}

func collectContacts(rows pgx.Rows) ([]*agents.Contact, error) {
	var out []*agents.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanContact(row pgx.Row) (*agents.Contact, error) {
	var c agents.Contact
	err := row.Scan(&c.ID, &c.VoiceAgentID, &c.EnterpriseID, &c.Name, &c.Phone,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, agents.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}
	return &c, nil
}
