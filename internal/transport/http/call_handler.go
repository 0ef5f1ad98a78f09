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

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bhashai/bhashai/internal/agents"
	"github.com/bhashai/bhashai/internal/bolna"
	"github.com/bhashai/bhashai/internal/calls"
)

// BulkCallRequest represents a bulk call batch
type BulkCallRequest struct {
	ContactIDs      []string          `json:"contact_ids" validate:"required,min=1"`
	CampaignName    string            `json:"campaign_name"`
	CustomVariables map[string]string `json:"custom_variables"`
}

// BulkCallResponse wraps the batch summary
type BulkCallResponse struct {
	Message      string                `json:"message"`
	CampaignName string                `json:"campaign_name,omitempty"`
	Summary      *calls.Summary        `json:"summary"`
	Failures     []calls.ContactResult `json:"failures,omitempty"`
	AgentConfig  *AgentCallConfig      `json:"agent_config,omitempty"`
}

// AgentCallConfig echoes the vendor wiring a batch was placed with.
type AgentCallConfig struct {
	BolnaAgentID string `json:"bolna_agent_id"`
	SenderPhone  string `json:"sender_phone"`
}

// BulkCall dispatches one outbound call per contact
// @Summary Bulk Call
// @Description Place one vendor call per contact of the batch. Every contact must belong to the agent; per-call vendor failures are recorded without aborting the batch.
// @Tags Calls
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Param request body BulkCallRequest true "Batch Data"
// @Success 200 {object} BulkCallResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /voice-agents/{agentID}/contacts/bulk-call [post]
func (h *Handler) BulkCall(w http.ResponseWriter, r *http.Request) {
	var req BulkCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	summary, err := h.dispatcher.Dispatch(r.Context(), GetEnterpriseID(r.Context()), calls.DispatchRequest{
		AgentID:      chi.URLParam(r, "agentID"),
		ContactIDs:   req.ContactIDs,
		CampaignName: req.CampaignName,
		Variables:    req.CustomVariables,
	}, GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, calls.ErrNoContacts):
			respondError(w, http.StatusBadRequest, "at least one contact is required")
		case errors.Is(err, calls.ErrForeignContact):
			respondError(w, http.StatusBadRequest, "one or more contacts do not belong to this agent")
		case errors.Is(err, calls.ErrInactiveContact):
			respondError(w, http.StatusBadRequest, "one or more contacts are inactive")
		case errors.Is(err, agents.ErrAgentNotFound):
			respondError(w, http.StatusNotFound, "voice agent not found")
		case errors.Is(err, agents.ErrAgentNotConfigured):
			respondError(w, http.StatusBadRequest, "voice agent has no vendor agent configured")
		case errors.Is(err, bolna.ErrNotConfigured):
			respondError(w, http.StatusBadGateway, "voice vendor is not configured")
		default:
			respondError(w, http.StatusInternalServerError, "bulk call dispatch failed")
		}
		return
	}

	resp := BulkCallResponse{
		Message:      fmt.Sprintf("dispatched %d of %d calls", summary.SuccessfulCalls, summary.TotalContacts),
		CampaignName: req.CampaignName,
		Summary:      summary,
	}
	for _, res := range summary.Results {
		if !res.Success {
			resp.Failures = append(resp.Failures, res)
		}
	}
	if agent, agentErr := h.agentService.GetAgent(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "agentID")); agentErr == nil {
		resp.AgentConfig = &AgentCallConfig{
			BolnaAgentID: agent.BolnaAgentID,
			SenderPhone:  h.dispatcher.SenderFor(agent),
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListCallLogs lists call logs of the caller's enterprise
// @Summary List Call Logs
// @Tags Calls
// @Produce json
// @Security CookieAuth
// @Param status query string false "Filter by call status"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} calls.CallLog
// @Router /call-logs [get]
func (h *Handler) ListCallLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	var list []*calls.CallLog
	var err error
	if status := r.URL.Query().Get("status"); status != "" {
		list, err = h.callService.ListByStatus(r.Context(), GetEnterpriseID(r.Context()), status, limit, offset)
	} else {
		list, err = h.callService.ListByEnterprise(r.Context(), GetEnterpriseID(r.Context()), limit, offset)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list call logs")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ListAgentCallLogs lists call logs of one voice agent
// @Summary List Agent Call Logs
// @Tags Calls
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} calls.CallLog
// @Router /voice-agents/{agentID}/call-logs [get]
func (h *Handler) ListAgentCallLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	list, err := h.callService.ListByAgent(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "agentID"), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list call logs")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetCallLog returns one call log
// @Summary Get Call Log
// @Tags Calls
// @Produce json
// @Security CookieAuth
// @Param callLogID path string true "Call Log ID"
// @Success 200 {object} calls.CallLog
// @Failure 404 {object} map[string]string
// @Router /call-logs/{callLogID} [get]
func (h *Handler) GetCallLog(w http.ResponseWriter, r *http.Request) {
	log, err := h.callService.Get(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "callLogID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "call log not found")
		return
	}
	respondJSON(w, http.StatusOK, log)
}

// RefreshCallStatus pulls the latest call status from the vendor
// @Summary Refresh Call Status
// @Tags Calls
// @Produce json
// @Security CookieAuth
// @Param callLogID path string true "Call Log ID"
// @Success 200 {object} calls.CallLog
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /call-logs/{callLogID}/status [get]
func (h *Handler) RefreshCallStatus(w http.ResponseWriter, r *http.Request) {
	log, err := h.callService.RefreshStatus(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "callLogID"))
	if err != nil {
		switch {
		case errors.Is(err, calls.ErrCallLogNotFound):
			respondError(w, http.StatusNotFound, "call log not found")
		default:
			var apiErr *bolna.APIError
			if errors.As(err, &apiErr) {
				respondError(w, http.StatusBadGateway, "vendor status lookup failed")
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to refresh call status")
		}
		return
	}
	respondJSON(w, http.StatusOK, log)
}

// ListVendorAgents lists agents configured at the voice vendor
// @Summary List Vendor Agents
// @Tags Calls
// @Produce json
// @Security CookieAuth
// @Success 200 {array} bolna.Agent
// @Failure 502 {object} map[string]string
// @Router /bolna/agents [get]
func (h *Handler) ListVendorAgents(w http.ResponseWriter, r *http.Request) {
	list, err := h.bolnaClient.ListAgents(r.Context())
	if err != nil {
		if errors.Is(err, bolna.ErrNotConfigured) {
			respondError(w, http.StatusBadGateway, "voice vendor is not configured")
			return
		}
		respondError(w, http.StatusBadGateway, "vendor agent listing failed")
		return
	}
	respondJSON(w, http.StatusOK, list)
}
