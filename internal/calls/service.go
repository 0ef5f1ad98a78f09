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

package calls

import (
	"context"
	"time"

	"github.com/bhashai/bhashai/internal/bolna"
)

// StatusClient fetches vendor-side call state.
type StatusClient interface {
	GetCallStatus(ctx context.Context, callID string) (*bolna.CallStatus, error)
}

// Service provides call log reads and vendor status refresh.
type Service struct {
	repo   Repository
	vendor StatusClient
}

// NewService creates a call log service.
func NewService(repo Repository, vendor StatusClient) *Service {
	return &Service{repo: repo, vendor: vendor}
}

// Get retrieves a call log scoped to an enterprise.
func (s *Service) Get(ctx context.Context, enterpriseID, callLogID string) (*CallLog, error) {
	return s.repo.GetByID(ctx, enterpriseID, callLogID)
}

// ListByEnterprise lists an enterprise's call logs, newest first.
func (s *Service) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*CallLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByEnterprise(ctx, enterpriseID, limit, offset)
}

// ListByStatus lists an enterprise's call logs in one status, newest
// first.
func (s *Service) ListByStatus(ctx context.Context, enterpriseID, status string, limit, offset int) ([]*CallLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByStatus(ctx, enterpriseID, status, limit, offset)
}

// ListByAgent lists one agent's call logs, newest first.
func (s *Service) ListByAgent(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*CallLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByAgent(ctx, enterpriseID, agentID, limit, offset)
}

// RefreshStatus asks the vendor for the current state of a dispatched
// call and folds it into the call log. Logs without a vendor call id
// (failed dispatches) are returned unchanged.
func (s *Service) RefreshStatus(ctx context.Context, enterpriseID, callLogID string) (*CallLog, error) {
	cl, err := s.repo.GetByID(ctx, enterpriseID, callLogID)
	if err != nil {
		return nil, err
	}
	if cl.BolnaCallID == "" {
		return cl, nil
	}

	status, err := s.vendor.GetCallStatus(ctx, cl.BolnaCallID)
	if err != nil {
		return nil, err
	}

	cl.Status = mapVendorStatus(status.Status)
	if status.DurationSeconds > 0 {
		cl.DurationSeconds = status.DurationSeconds
	}
	if status.Transcript != "" {
		cl.Transcript = status.Transcript
	}
	cl.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func mapVendorStatus(vendor string) string {
	switch vendor {
	case "queued", "ringing", "initiated":
		return StatusInitiated
	case "in-progress", "in_progress", "ongoing":
		return StatusInProgress
	case "completed", "ended":
		return StatusCompleted
	case "busy":
		return StatusBusy
	case "no-answer", "no_answer":
		return StatusNoAnswer
	case "failed", "error", "canceled":
		return StatusFailed
	case "":
		return StatusInitiated
	default:
		// Keep unrecognized vendor statuses verbatim rather than
		// masking them as still in flight.
		return vendor
	}
}
