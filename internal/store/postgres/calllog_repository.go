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

	"github.com/bhashai/bhashai/internal/calls"
)

const callLogColumns = `id, enterprise_id, voice_agent_id, contact_id, contact_name, phone,
	campaign, bolna_call_id, status, failure_reason, duration_seconds, transcript,
	created_at, updated_at`

// CallLogRepository implements calls.Repository
type CallLogRepository struct {
	db *DB
}

// NewCallLogRepository creates a new call log repository
func NewCallLogRepository(db *DB) *CallLogRepository {
	return &CallLogRepository{db: db}
}

// Create inserts a call log row
func (r *CallLogRepository) Create(ctx context.Context, cl *calls.CallLog) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO call_logs (id, enterprise_id, voice_agent_id, contact_id, contact_name,
			phone, campaign, bolna_call_id, status, failure_reason, duration_seconds,
			transcript, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, cl.ID, cl.EnterpriseID, cl.VoiceAgentID, cl.ContactID, cl.ContactName,
		cl.Phone, cl.Campaign, cl.BolnaCallID, cl.Status, cl.FailureReason,
		cl.DurationSeconds, cl.Transcript, cl.CreatedAt, cl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert call log: %w", err)
	}
	return nil
}

// GetByID retrieves a call log scoped to an enterprise
func (r *CallLogRepository) GetByID(ctx context.Context, enterpriseID, id string) (*calls.CallLog, error) {
	return scanCallLog(r.db.pool.QueryRow(ctx,
		`SELECT `+callLogColumns+` FROM call_logs WHERE enterprise_id = $1 AND id = $2`,
		enterpriseID, id))
}

// Update folds refreshed vendor state into a call log
func (r *CallLogRepository) Update(ctx context.Context, cl *calls.CallLog) error {
	tag, err := r.db.pool.Exec(ctx, `
		UPDATE call_logs SET status = $3, failure_reason = $4, duration_seconds = $5,
			transcript = $6, updated_at = $7
		WHERE enterprise_id = $1 AND id = $2
	`, cl.EnterpriseID, cl.ID, cl.Status, cl.FailureReason, cl.DurationSeconds,
		cl.Transcript, cl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update call log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return calls.ErrCallLogNotFound
	}
	return nil
}

// ListByEnterprise lists an enterprise's call logs, newest first
func (r *CallLogRepository) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*calls.CallLog, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+callLogColumns+` FROM call_logs
		 WHERE enterprise_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs: %w", err)
	}
	defer rows.Close()
	return collectCallLogs(rows)
}

// ListByStatus lists an enterprise's call logs in one status, newest first
func (r *CallLogRepository) ListByStatus(ctx context.Context, enterpriseID, status string, limit, offset int) ([]*calls.CallLog, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+callLogColumns+` FROM call_logs
		 WHERE enterprise_id = $1 AND status = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		enterpriseID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs: %w", err)
	}
	defer rows.Close()
	return collectCallLogs(rows)
}

// ListByAgent lists one agent's call logs, newest first
func (r *CallLogRepository) ListByAgent(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*calls.CallLog, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT `+callLogColumns+` FROM call_logs
		 WHERE enterprise_id = $1 AND voice_agent_id = $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		enterpriseID, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list call logs: %w", err)
	}
	defer rows.Close()
	return collectCallLogs(rows)
}

func collectCallLogs(rows pgx.Rows) ([]*calls.CallLog, error) {
	var out []*calls.CallLog
	for rows.Next() {
		cl, err := scanCallLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, rows.Err()
}

func scanCallLog(row pgx.Row) (*calls.CallLog, error) {
	var cl calls.CallLog
	err := row.Scan(&cl.ID, &cl.EnterpriseID, &cl.VoiceAgentID, &cl.ContactID, &cl.ContactName,
		&cl.Phone, &cl.Campaign, &cl.BolnaCallID, &cl.Status, &cl.FailureReason,
		&cl.DurationSeconds, &cl.Transcript, &cl.CreatedAt, &cl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, calls.ErrCallLogNotFound
		}
		return nil, fmt.Errorf("failed to scan call log: %w", err)
	}
	return &cl, nil
}
