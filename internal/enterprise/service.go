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

package enterprise

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/id"
)

// Service provides enterprise management business logic
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new enterprise service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// Create registers a new enterprise. Name must be unique across the
// platform; an empty type defaults to trial.
func (s *Service) Create(ctx context.Context, name, entType, contactEmail string, actorID string) (*Enterprise, error) {
	if name == "" {
		return nil, fmt.Errorf("enterprise name is required")
	}
	if entType == "" {
		entType = TypeTrial
	}
	if !IsValidType(entType) {
		return nil, fmt.Errorf("invalid enterprise type: %s", entType)
	}
	if contactEmail != "" {
		if _, err := mail.ParseAddress(contactEmail); err != nil {
			return nil, fmt.Errorf("invalid contact email: %w", err)
		}
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrNameTaken
	} else if !errors.Is(err, ErrEnterpriseNotFound) {
		return nil, fmt.Errorf("failed to check enterprise name: %w", err)
	}

	now := time.Now()
	e := &Enterprise{
		ID:           id.NewUUIDv7(),
		Name:         name,
		Type:         entType,
		ContactEmail: contactEmail,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create enterprise: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeEnterpriseCreated,
		EnterpriseID: e.ID,
		ActorID:      actorID,
		Resource:     e.Name,
		Metadata:     map[string]any{"type": e.Type},
	})

	return e, nil
}

// Get retrieves an enterprise by ID
func (s *Service) Get(ctx context.Context, id string) (*Enterprise, error) {
	return s.repo.GetByID(ctx, id)
}

// List lists enterprises with pagination
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Enterprise, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, limit, offset)
}

// Update changes mutable fields of an enterprise.
func (s *Service) Update(ctx context.Context, entID, name, contactEmail, status string, actorID string) (*Enterprise, error) {
	e, err := s.repo.GetByID(ctx, entID)
	if err != nil {
		return nil, err
	}

	if name != "" && name != e.Name {
		if _, err := s.repo.GetByName(ctx, name); err == nil {
			return nil, ErrNameTaken
		} else if !errors.Is(err, ErrEnterpriseNotFound) {
			return nil, fmt.Errorf("failed to check enterprise name: %w", err)
		}
		e.Name = name
	}
	if contactEmail != "" {
		if _, err := mail.ParseAddress(contactEmail); err != nil {
			return nil, fmt.Errorf("invalid contact email: %w", err)
		}
		e.ContactEmail = contactEmail
	}
	if status != "" {
		if status != StatusActive && status != StatusInactive {
			return nil, fmt.Errorf("invalid status: %s", status)
		}
		e.Status = status
	}
	e.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update enterprise: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeEnterpriseUpdated,
		EnterpriseID: e.ID,
		ActorID:      actorID,
		Resource:     e.Name,
	})

	return e, nil
}
