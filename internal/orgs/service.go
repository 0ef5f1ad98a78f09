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

package orgs

import (
	"context"
	"fmt"
	"time"

	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/id"
)

// Service provides organization and channel management business logic
type Service struct {
	repo        Repository
	channelRepo ChannelRepository
	auditLogger audit.Logger
}

// NewService creates a new organization service
func NewService(repo Repository, channelRepo ChannelRepository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		channelRepo: channelRepo,
		auditLogger: auditLogger,
	}
}

// CreateOrganization creates a workspace inside an enterprise.
func (s *Service) CreateOrganization(ctx context.Context, enterpriseID, name, description string, actorID string) (*Organization, error) {
	if enterpriseID == "" {
		return nil, fmt.Errorf("enterprise id is required")
	}
	if name == "" {
		return nil, fmt.Errorf("organization name is required")
	}

	now := time.Now()
	o := &Organization{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		Name:         name,
		Description:  description,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeOrganizationCreated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     o.Name,
	})

	return o, nil
}

// GetOrganization retrieves an organization scoped to an enterprise.
func (s *Service) GetOrganization(ctx context.Context, enterpriseID, orgID string) (*Organization, error) {
	return s.repo.GetByID(ctx, enterpriseID, orgID)
}

// ListOrganizations lists an enterprise's organizations with pagination.
func (s *Service) ListOrganizations(ctx context.Context, enterpriseID string, limit, offset int) ([]*Organization, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByEnterprise(ctx, enterpriseID, limit, offset)
}

// UpdateOrganization changes mutable fields of an organization.
func (s *Service) UpdateOrganization(ctx context.Context, enterpriseID, orgID, name, description string, actorID string) (*Organization, error) {
	o, err := s.repo.GetByID(ctx, enterpriseID, orgID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		o.Name = name
	}
	if description != "" {
		o.Description = description
	}
	o.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeOrganizationUpdated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     o.Name,
	})

	return o, nil
}

// DeleteOrganization removes an organization and, through the schema's
// cascade, its channels.
func (s *Service) DeleteOrganization(ctx context.Context, enterpriseID, orgID string, actorID string) error {
	o, err := s.repo.GetByID(ctx, enterpriseID, orgID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, enterpriseID, orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeOrganizationDeleted,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     o.Name,
	})

	return nil
}

// CreateChannel adds a channel to an organization. Category must be one
// of the fixed channel categories.
func (s *Service) CreateChannel(ctx context.Context, enterpriseID, orgID, name, category string, actorID string) (*Channel, error) {
	if name == "" {
		return nil, fmt.Errorf("channel name is required")
	}
	if !IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	// The parent organization must exist within the same enterprise.
	if _, err := s.repo.GetByID(ctx, enterpriseID, orgID); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Channel{
		ID:             id.NewUUIDv7(),
		OrganizationID: orgID,
		EnterpriseID:   enterpriseID,
		Name:           name,
		Category:       category,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.channelRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeChannelCreated,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     c.Name,
		Metadata:     map[string]any{"category": category},
	})

	return c, nil
}

// GetChannel retrieves a channel scoped to an enterprise.
func (s *Service) GetChannel(ctx context.Context, enterpriseID, channelID string) (*Channel, error) {
	return s.channelRepo.GetByID(ctx, enterpriseID, channelID)
}

// ListChannels lists an organization's channels.
func (s *Service) ListChannels(ctx context.Context, enterpriseID, orgID string) ([]*Channel, error) {
	return s.channelRepo.ListByOrganization(ctx, enterpriseID, orgID)
}

// DeleteChannel removes a channel.
func (s *Service) DeleteChannel(ctx context.Context, enterpriseID, channelID string, actorID string) error {
	c, err := s.channelRepo.GetByID(ctx, enterpriseID, channelID)
	if err != nil {
		return err
	}

	if err := s.channelRepo.Delete(ctx, enterpriseID, channelID); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeChannelDeleted,
		EnterpriseID: enterpriseID,
		ActorID:      actorID,
		Resource:     c.Name,
	})

	return nil
}
