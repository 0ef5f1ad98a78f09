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
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bhashai/bhashai/internal/agents"
)

// AgentRequest represents voice agent creation and update data
type AgentRequest struct {
	ChannelID          string `json:"channel_id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	WelcomeMessage     string `json:"welcome_message"`
	AgentPrompt        string `json:"agent_prompt"`
	ConversationStyle  string `json:"conversation_style"`
	LanguagePreference string `json:"language_preference"`
	CallingNumber      string `json:"calling_number"`
	BolnaAgentID       string `json:"bolna_agent_id"`
}

func (req AgentRequest) params() agents.CreateAgentParams {
	return agents.CreateAgentParams{
		ChannelID:          req.ChannelID,
		Title:              req.Title,
		Description:        req.Description,
		WelcomeMessage:     req.WelcomeMessage,
		AgentPrompt:        req.AgentPrompt,
		ConversationStyle:  req.ConversationStyle,
		LanguagePreference: req.LanguagePreference,
		CallingNumber:      req.CallingNumber,
		BolnaAgentID:       req.BolnaAgentID,
	}
}

// CreateAgent creates a voice agent
// @Summary Create Voice Agent
// @Tags VoiceAgents
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body AgentRequest true "Agent Data"
// @Success 201 {object} agents.VoiceAgent
// @Failure 400 {object} map[string]string
// @Router /voice-agents [post]
func (h *Handler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.agentService.CreateAgent(r.Context(), GetEnterpriseID(r.Context()), req.params(), GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, agents.ErrInvalidPhone) {
			respondError(w, http.StatusBadRequest, "calling number is not a valid phone number")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, agent)
}

// ListAgents lists voice agents of the caller's enterprise
// @Summary List Voice Agents
// @Tags VoiceAgents
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} agents.VoiceAgent
// @Router /voice-agents [get]
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	list, err := h.agentService.ListAgents(r.Context(), GetEnterpriseID(r.Context()), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list voice agents")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// ListChannelAgents lists voice agents of one channel
// @Summary List Channel Voice Agents
// @Tags VoiceAgents
// @Produce json
// @Security CookieAuth
// @Param channelID path string true "Channel ID"
// @Success 200 {array} agents.VoiceAgent
// @Router /channels/{channelID}/voice-agents [get]
func (h *Handler) ListChannelAgents(w http.ResponseWriter, r *http.Request) {
	list, err := h.agentService.ListAgentsByChannel(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "channelID"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list voice agents")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// GetAgent returns one voice agent
// @Summary Get Voice Agent
// @Tags VoiceAgents
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Success 200 {object} agents.VoiceAgent
// @Failure 404 {object} map[string]string
// @Router /voice-agents/{agentID} [get]
func (h *Handler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := h.agentService.GetAgent(r.Context(), GetEnterpriseID(r.Context()), chi.URLParam(r, "agentID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "voice agent not found")
		return
	}
	respondJSON(w, http.StatusOK, agent)
}

// UpdateAgent updates a voice agent
// @Summary Update Voice Agent
// @Tags VoiceAgents
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Param request body AgentRequest true "Agent Data"
// @Success 200 {object} agents.VoiceAgent
// @Failure 404 {object} map[string]string
// @Router /voice-agents/{agentID} [put]
func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	var req AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.agentService.UpdateAgent(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "agentID"), req.params(), GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrAgentNotFound):
			respondError(w, http.StatusNotFound, "voice agent not found")
		case errors.Is(err, agents.ErrInvalidPhone):
			respondError(w, http.StatusBadRequest, "calling number is not a valid phone number")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, agent)
}

// DeleteAgent deletes a voice agent and its contacts
// @Summary Delete Voice Agent
// @Tags VoiceAgents
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /voice-agents/{agentID} [delete]
func (h *Handler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	err := h.agentService.DeleteAgent(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "agentID"), GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, agents.ErrAgentNotFound) {
			respondError(w, http.StatusNotFound, "voice agent not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete voice agent")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "voice agent deleted"})
}

// AddContactRequest represents contact creation data
type AddContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// AddContact adds a contact to a voice agent
// @Summary Add Contact
// @Description Phone numbers are normalized to E.164 before storage
// @Tags Contacts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Param request body AddContactRequest true "Contact Data"
// @Success 201 {object} agents.Contact
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /voice-agents/{agentID}/contacts [post]
func (h *Handler) AddContact(w http.ResponseWriter, r *http.Request) {
	var req AddContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	contact, err := h.agentService.AddContact(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "agentID"), req.Name, req.Phone, GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrAgentNotFound):
			respondError(w, http.StatusNotFound, "voice agent not found")
		case errors.Is(err, agents.ErrInvalidPhone):
			respondError(w, http.StatusBadRequest, "phone number is not valid")
		case errors.Is(err, agents.ErrDuplicateContact):
			respondError(w, http.StatusConflict, "contact with this phone already exists for the agent")
		default:
			respondError(w, http.StatusInternalServerError, "failed to add contact")
		}
		return
	}

	respondJSON(w, http.StatusCreated, contact)
}

// ListContacts lists contacts of a voice agent
// @Summary List Contacts
// @Tags Contacts
// @Produce json
// @Security CookieAuth
// @Param agentID path string true "Agent ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {array} agents.Contact
// @Router /voice-agents/{agentID}/contacts [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)
	list, err := h.agentService.ListContacts(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "agentID"), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// UpdateContactRequest represents contact update data
type UpdateContactRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// UpdateContact updates a contact
// @Summary Update Contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param contactID path string true "Contact ID"
// @Param request body UpdateContactRequest true "Contact Data"
// @Success 200 {object} agents.Contact
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contacts/{contactID} [put]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contact, err := h.agentService.UpdateContact(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "contactID"), req.Name, req.Phone, req.Status, GetUserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, agents.ErrContactNotFound):
			respondError(w, http.StatusNotFound, "contact not found")
		case errors.Is(err, agents.ErrInvalidPhone):
			respondError(w, http.StatusBadRequest, "phone number is not valid")
		case errors.Is(err, agents.ErrDuplicateContact):
			respondError(w, http.StatusConflict, "contact with this phone already exists for the agent")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// DeleteContact deletes a contact
// @Summary Delete Contact
// @Tags Contacts
// @Produce json
// @Security CookieAuth
// @Param contactID path string true "Contact ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /contacts/{contactID} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	err := h.agentService.DeleteContact(r.Context(), GetEnterpriseID(r.Context()),
		chi.URLParam(r, "contactID"), GetUserID(r.Context()))
	if err != nil {
		if errors.Is(err, agents.ErrContactNotFound) {
			respondError(w, http.StatusNotFound, "contact not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete contact")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "contact deleted"})
}
