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
	"fmt"

	"github.com/bhashai/bhashai/internal/enterprise"
)

// StatsRepository implements enterprise.StatsRepository
type StatsRepository struct {
	db *DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Collect counts an enterprise's resources in one round trip.
func (r *StatsRepository) Collect(ctx context.Context, enterpriseID string) (*enterprise.Stats, error) {
	var s enterprise.Stats
	err := r.db.pool.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM organizations WHERE enterprise_id = $1),
			(SELECT count(*) FROM channels WHERE enterprise_id = $1),
			(SELECT count(*) FROM voice_agents WHERE enterprise_id = $1),
			(SELECT count(*) FROM contacts WHERE enterprise_id = $1),
			(SELECT count(*) FROM call_logs WHERE enterprise_id = $1),
			(SELECT count(*) FROM users WHERE enterprise_id = $1)
	`, enterpriseID).Scan(&s.Organizations, &s.Channels, &s.VoiceAgents,
		&s.Contacts, &s.CallLogs, &s.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to collect enterprise stats: %w", err)
	}
	return &s, nil
}
