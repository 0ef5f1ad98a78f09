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

package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/id"
)

// Service provides voice agent and contact management business logic
type Service struct {
	repo        Repository
	contactRepo ContactRepository
	auditLogger audit.Logger
}

// NewService creates a new voice agent service
func NewService(repo Repository, contactRepo ContactRepository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		contactRepo: contactRepo,
		auditLogger: auditLogger,
	}
}

// CreateAgentParams carries the configurable fields of a voice agent.
type CreateAgentParams struct {
	ChannelID          string
	Title              string
	Description        string
	WelcomeMessage     string
	AgentPrompt        string
	ConversationStyle  string
	LanguagePreference string
	CallingNumber      string
	BolnaAgentID       string
}

// CreateAgent creates a voice agent under a channel.
func (s *Service) CreateAgent(ctx context.Context, enterpriseID string, p CreateAgentParams, actorID string) (*VoiceAgent, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("agent title is required")
	}
	if p.ChannelID == "" {
		return nil, fmt.Errorf("channel id is required")
	}
	if p.LanguagePreference == "" {
		p.LanguagePreference = "hinglish"
	}
	if p.CallingNumber != "" {
		normalized, err := NormalizePhone(p.CallingNumber)
		if err != nil {
			return nil, fmt.Errorf("invalid calling number: %w", err)
		}
		p.CallingNumber = normalized
	}

	now := time.Now()
	a := &VoiceAgent{
		ID:                 id.NewUUIDv7(),
		ChannelID:          p.ChannelID,
		EnterpriseID:       enterpriseID,
		Title:              p.Title,
		Description:        p.Description,
		WelcomeMessage:     p.WelcomeMessage,
		AgentPrompt:        p.AgentPrompt,
		ConversationStyle:  p.ConversationStyle,
		LanguagePreference: p.LanguagePreference,
		CallingNumber:      p.CallingNumber,
		BolnaAgentID:       p.BolnaAgentID,
		Status:             StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create voice agent: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeAgentCreated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     a.Title,
	})

	return a, nil
}

// GetAgent retrieves a voice agent scoped to an enterprise.
func (s *Service) GetAgent(ctx context.Context, enterpriseID, agentID string) (*VoiceAgent, error) {
	return s.repo.GetByID(ctx, enterpriseID, agentID)
}

// ListAgents lists an enterprise's voice agents with pagination.
func (s *Service) ListAgents(ctx context.Context, enterpriseID string, limit, offset int) ([]*VoiceAgent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByEnterprise(ctx, enterpriseID, limit, offset)
}

// ListAgentsByChannel lists the voice agents attached to a channel.
func (s *Service) ListAgentsByChannel(ctx context.Context, enterpriseID, channelID string) ([]*VoiceAgent, error) {
	return s.repo.ListByChannel(ctx, enterpriseID, channelID)
}

// UpdateAgent applies non-empty fields of p onto an existing agent.
func (s *Service) UpdateAgent(ctx context.Context, enterpriseID, agentID string, p CreateAgentParams, actorID string) (*VoiceAgent, error) {
	a, err := s.repo.GetByID(ctx, enterpriseID, agentID)
	if err != nil {
		return nil, err
	}

	if p.Title != "" {
		a.Title = p.Title
	}
	if p.Description != "" {
		a.Description = p.Description
	}
	if p.WelcomeMessage != "" {
		a.WelcomeMessage = p.WelcomeMessage
	}
	if p.AgentPrompt != "" {
		a.AgentPrompt = p.AgentPrompt
	}
	if p.ConversationStyle != "" {
		a.ConversationStyle = p.ConversationStyle
	}
	if p.LanguagePreference != "" {
		a.LanguagePreference = p.LanguagePreference
	}
	if p.CallingNumber != "" {
		normalized, err := NormalizePhone(p.CallingNumber)
		if err != nil {
			return nil, fmt.Errorf("invalid calling number: %w", err)
		}
		a.CallingNumber = normalized
	}
	if p.BolnaAgentID != "" {
		a.BolnaAgentID = p.BolnaAgentID
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to update voice agent: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeAgentUpdated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     a.Title,
	})

	return a, nil
}

// DeleteAgent removes an agent and, through the schema's cascade, its
// contacts.
func (s *Service) DeleteAgent(ctx context.Context, enterpriseID, agentID string, actorID string) error {
	a, err := s.repo.GetByID(ctx, enterpriseID, agentID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, enterpriseID, agentID); err != nil {
		return fmt.Errorf("failed to delete voice agent: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeAgentDeleted,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     a.Title,
	})

	return nil
}

// AddContact adds a callee to an agent's list. The phone number is
// normalized to E.164 before storage; duplicates within the agent are
// rejected by the repository.
func (s *Service) AddContact(ctx context.Context, enterpriseID, agentID, name, phone string, actorID string) (*Contact, error) {
	if name == "" {
		return nil, fmt.Errorf("contact name is required")
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, enterpriseID, agentID); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Contact{
		ID:           id.NewUUIDv7(),
		VoiceAgentID: agentID,
		EnterpriseID: enterpriseID,
		Name:         name,
		Phone:        normalized,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.contactRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeContactCreated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     c.ID,
		Metadata:     map[string]any{"voice_agent_id": agentID},
	})

	return c, nil
}

// UpdateContact updates a contact's name, phone or status. Empty
// fields keep their current value; a new phone is normalized first.
func (s *Service) UpdateContact(ctx context.Context, enterpriseID, contactID, name, phone, status string, actorID string) (*Contact, error) {
	c, err := s.contactRepo.GetByID(ctx, enterpriseID, contactID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		c.Name = name
	}
	if phone != "" {
		normalized, err := NormalizePhone(phone)
		if err != nil {
			return nil, err
		}
		c.Phone = normalized
	}
	if status != "" {
		if status != StatusActive && status != StatusInactive {
			return nil, fmt.Errorf("invalid contact status %q", status)
		}
		c.Status = status
	}
	c.UpdatedAt = time.Now()

	if err := s.contactRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeContactUpdated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     c.ID,
		Metadata:     map[string]any{"voice_agent_id": c.VoiceAgentID},
	})

	return c, nil
}

// GetContact retrieves a contact scoped to an enterprise.
func (s *Service) GetContact(ctx context.Context, enterpriseID, contactID string) (*Contact, error) {
	return s.contactRepo.GetByID(ctx, enterpriseID, contactID)
}

// ListContacts lists an agent's contacts with pagination.
func (s *Service) ListContacts(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*Contact, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.contactRepo.ListByAgent(ctx, enterpriseID, agentID, limit, offset)
}

// DeleteContact removes a contact from an agent's list.
func (s *Service) DeleteContact(ctx context.Context, enterpriseID, contactID string, actorID string) error {
	c, err := s.contactRepo.GetByID(ctx, enterpriseID, contactID)
	if err != nil {
		return err
	}

	if err := s.contactRepo.Delete(ctx, enterpriseID, contactID); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeContactDeleted,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     c.ID,
		Metadata:     map[string]any{"voice_agent_id": c.VoiceAgentID},
	})

	return nil
}
