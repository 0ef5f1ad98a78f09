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

// Package calls implements the bulk outbound call dispatcher and the
// call log it writes.
package calls

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bhashai/bhashai/internal/agents"
	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/bolna"
	"github.com/bhashai/bhashai/internal/id"
	"github.com/bhashai/bhashai/internal/observability/logger"
	"github.com/bhashai/bhashai/internal/observability/metrics"
)

// VendorClient is the slice of the Bolna client the dispatcher needs.
type VendorClient interface {
	Configured() bool
	StartCall(ctx context.Context, req bolna.StartCallRequest) (*bolna.StartCallResponse, error)
}

// Biller debits credits for successful calls.
type Biller interface {
	DebitForCall(ctx context.Context, enterpriseID, callLogID, agentID, description string) (decimal.Decimal, error)
}

// AgentStore resolves voice agents within an enterprise.
type AgentStore interface {
	GetByID(ctx context.Context, enterpriseID, id string) (*agents.VoiceAgent, error)
}

// ContactStore resolves contacts within an enterprise.
type ContactStore interface {
	GetByIDs(ctx context.Context, enterpriseID string, ids []string) ([]*agents.Contact, error)
}

// ContactResult is the per-contact outcome of a dispatch.
type ContactResult struct {
	ContactID string `json:"contact_id"`
	Phone     string `json:"phone"`
	CallLogID string `json:"call_log_id"`
	Success   bool   `json:"success"`
	Reason    string `json:"reason,omitempty"`
}

// Summary aggregates a finished batch.
type Summary struct {
	TotalContacts   int             `json:"total_contacts"`
	SuccessfulCalls int             `json:"successful_calls"`
	FailedCalls     int             `json:"failed_calls"`
	Results         []ContactResult `json:"results"`
}

// Dispatcher places one outbound call per contact through the voice
// vendor and records every attempt.
type Dispatcher struct {
	vendor      VendorClient
	biller      Biller
	agentStore  AgentStore
	contacts    ContactStore
	repo        Repository
	auditLogger audit.Logger
	meter       *metrics.Meter
	log         *slog.Logger

	senderPhone string
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(vendor VendorClient, biller Biller, agentStore AgentStore, contacts ContactStore, repo Repository, auditLogger audit.Logger, meter *metrics.Meter, log *slog.Logger, senderPhone string) *Dispatcher {
	return &Dispatcher{
		vendor:      vendor,
		biller:      biller,
		agentStore:  agentStore,
		contacts:    contacts,
		repo:        repo,
		auditLogger: auditLogger,
		meter:       meter,
		log:         log,
		senderPhone: senderPhone,
	}
}

// DispatchRequest is one bulk call batch.
type DispatchRequest struct {
	AgentID      string
	ContactIDs   []string
	CampaignName string
	Variables    map[string]string
}

// Dispatch places calls to every contact in the batch, sequentially
// and without retry. A single contact's vendor failure does not abort
// the loop; it becomes a failed call log and the batch continues.
// Validation failures (unknown agent, vendor not configured, a contact
// outside the agent) abort before any vendor call.
func (d *Dispatcher) Dispatch(ctx context.Context, enterpriseID string, req DispatchRequest, actorID string) (*Summary, error) {
	if len(req.ContactIDs) == 0 {
		return nil, ErrNoContacts
	}
	if !d.vendor.Configured() {
		return nil, bolna.ErrNotConfigured
	}

	agent, err := d.agentStore.GetByID(ctx, enterpriseID, req.AgentID)
	if err != nil {
		return nil, err
	}
	if agent.BolnaAgentID == "" {
		return nil, agents.ErrAgentNotConfigured
	}

	batch, err := d.resolveContacts(ctx, enterpriseID, agent, req.ContactIDs)
	if err != nil {
		return nil, err
	}

	d.log.InfoContext(ctx, "bulk dispatch started",
		logger.EnterpriseID(enterpriseID),
		logger.AgentID(agent.ID),
		logger.Campaign(req.CampaignName),
		slog.Int("contacts", len(batch)))

	start := time.Now()
	summary := &Summary{TotalContacts: len(batch)}

	for _, contact := range batch {
		result := d.placeCall(ctx, enterpriseID, agent, contact, req)
		if result.Success {
			summary.SuccessfulCalls++
		} else {
			summary.FailedCalls++
		}
		summary.Results = append(summary.Results, result)
	}

	d.meter.RecordDispatch(ctx, agent.ID,
		int64(summary.SuccessfulCalls), int64(summary.FailedCalls),
		time.Since(start).Seconds())

	d.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeBulkCallsInitiated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     agent.ID,
		Metadata: map[string]any{
			audit.AttrCampaign: req.CampaignName,
			"total_contacts":   summary.TotalContacts,
			"successful_calls": summary.SuccessfulCalls,
			"failed_calls":     summary.FailedCalls,
		},
	})

	return summary, nil
}

// SenderFor resolves the outbound caller id for an agent, falling back
// to the platform default when the agent carries none.
func (d *Dispatcher) SenderFor(agent *agents.VoiceAgent) string {
	if agent.CallingNumber != "" {
		return agent.CallingNumber
	}
	return d.senderPhone
}

// resolveContacts loads the requested contacts and verifies every one
// of them belongs to the agent and is active. Dispatch never reaches
// the vendor when the batch references a contact outside the agent or
// a soft-disabled one.
func (d *Dispatcher) resolveContacts(ctx context.Context, enterpriseID string, agent *agents.VoiceAgent, ids []string) ([]*agents.Contact, error) {
	found, err := d.contacts.GetByIDs(ctx, enterpriseID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	byID := make(map[string]*agents.Contact, len(found))
	for _, c := range found {
		if c.VoiceAgentID != agent.ID {
			return nil, ErrForeignContact
		}
		if c.Status != agents.StatusActive {
			return nil, ErrInactiveContact
		}
		byID[c.ID] = c
	}

	// Preserve the caller's ordering.
	batch := make([]*agents.Contact, 0, len(ids))
	for _, cid := range ids {
		c, ok := byID[cid]
		if !ok {
			return nil, ErrForeignContact
		}
		batch = append(batch, c)
	}
	return batch, nil
}

func (d *Dispatcher) placeCall(ctx context.Context, enterpriseID string, agent *agents.VoiceAgent, contact *agents.Contact, req DispatchRequest) ContactResult {
	now := time.Now()
	cl := &CallLog{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		VoiceAgentID: agent.ID,
		ContactID:    contact.ID,
		ContactName:  contact.Name,
		Phone:        contact.Phone,
		Campaign:     req.CampaignName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	variables := map[string]string{
		"customer_name": contact.Name,
	}
	for k, v := range req.Variables {
		variables[k] = v
	}

	from := d.SenderFor(agent)

	resp, err := d.vendor.StartCall(ctx, bolna.StartCallRequest{
		AgentID:              agent.BolnaAgentID,
		RecipientPhoneNumber: contact.Phone,
		FromPhoneNumber:      from,
		Variables:            variables,
		Metadata: map[string]string{
			"enterprise_id": enterpriseID,
			"contact_id":    contact.ID,
			"campaign_name": req.CampaignName,
		},
	})
	if err != nil {
		cl.Status = StatusFailed
		cl.FailureReason = err.Error()
		if storeErr := d.repo.Create(ctx, cl); storeErr != nil {
			d.log.ErrorContext(ctx, "failed to store call log",
				logger.ContactID(contact.ID), logger.Error(storeErr))
		}

		d.log.WarnContext(ctx, "call failed",
			logger.EnterpriseID(enterpriseID),
			logger.AgentID(agent.ID),
			logger.ContactID(contact.ID),
			logger.Error(err))

		d.auditLogger.Log(ctx, audit.Event{
			Type:         audit.TypeCallFailed,
			EnterpriseID: enterpriseID,
			Resource:     contact.ID,
			Metadata:     map[string]any{audit.AttrReason: err.Error()},
		})

		return ContactResult{
			ContactID: contact.ID,
			Phone:     contact.Phone,
			CallLogID: cl.ID,
			Reason:    err.Error(),
		}
	}

	cl.Status = StatusInitiated
	cl.BolnaCallID = resp.CallID
	if err := d.repo.Create(ctx, cl); err != nil {
		d.log.ErrorContext(ctx, "failed to store call log",
			logger.ContactID(contact.ID), logger.Error(err))
	}

	if _, err := d.biller.DebitForCall(ctx, enterpriseID, cl.ID, agent.ID,
		fmt.Sprintf("outbound call to %s", contact.Phone)); err != nil {
		// The call is already in flight; a debit failure is logged,
		// not propagated to the caller.
		d.log.ErrorContext(ctx, "failed to debit credits",
			logger.EnterpriseID(enterpriseID),
			logger.ContactID(contact.ID),
			logger.Error(err))
	}

	d.log.InfoContext(ctx, "call initiated",
		logger.EnterpriseID(enterpriseID),
		logger.AgentID(agent.ID),
		logger.ContactID(contact.ID),
		logger.ProviderCallID(resp.CallID))

	return ContactResult{
		ContactID: contact.ID,
		Phone:     contact.Phone,
		CallLogID: cl.ID,
		Success:   true,
	}
}
