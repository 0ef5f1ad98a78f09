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

package identity

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/id"
	"github.com/bhashai/bhashai/internal/rbac"
)

// Service provides identity-related business logic
type Service struct {
	repo               UserRepository
	hasher             *PasswordHasher
	auditLogger        audit.Logger
	lockoutMaxAttempts int
	lockoutDuration    time.Duration
}

// NewService creates a new identity service
func NewService(
	repo UserRepository,
	hasher *PasswordHasher,
	auditLogger audit.Logger,
	lockoutMaxAttempts int,
	lockoutDuration time.Duration,
) *Service {
	return &Service{
		repo:               repo,
		hasher:             hasher,
		auditLogger:        auditLogger,
		lockoutMaxAttempts: lockoutMaxAttempts,
		lockoutDuration:    lockoutDuration,
	}
}

// Provision creates a new user in an enterprise. New users start in
// the pending state until an admin activates them, except the first
// admin created alongside an enterprise, which the caller activates
// explicitly.
func (s *Service) Provision(ctx context.Context, enterpriseID, email, name, role string) (*User, error) {
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if enterpriseID == "" {
		return nil, fmt.Errorf("enterprise id is required")
	}
	if !rbac.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.repo.GetByEmail(ctx, enterpriseID, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}

	user := &User{
		ID:           id.NewUUIDv7(),
		EnterpriseID: enterpriseID,
		Email:        email,
		Name:         name,
		Role:         role,
		Status:       StatusPending,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeUserCreated,
		EnterpriseID: enterpriseID,
		ActorID:      user.ID,
		Resource:     "user",
		Metadata:     map[string]any{"email": email, "role": role},
	})

	return user, nil
}

// SetPassword adds or replaces the password credential for a user.
func (s *Service) SetPassword(ctx context.Context, userID, password string) error {
	if !isStrongPassword(password) {
		return ErrWeakPassword
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	credentials := &Credentials{
		UserID:       userID,
		PasswordHash: passwordHash,
	}

	if err := s.repo.AddCredentials(ctx, credentials); err != nil {
		return fmt.Errorf("failed to add credentials: %w", err)
	}

	return nil
}

// Activate marks a user active.
func (s *Service) Activate(ctx context.Context, userID string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	user.Status = StatusActive
	return s.repo.Update(ctx, user)
}

// Authenticate authenticates a user with email and password within an
// enterprise, enforcing status and lockout.
func (s *Service) Authenticate(ctx context.Context, enterpriseID, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, enterpriseID, email)
	if err != nil {
		s.auditLogger.Log(ctx, audit.Event{
			Type:         audit.TypeLoginFailed,
			EnterpriseID: enterpriseID,
			Resource:     email,
			Metadata:     map[string]any{audit.AttrReason: "user_not_found"},
		})
		return nil, ErrInvalidCredentials
	}

	if user.Status != StatusActive {
		s.auditLogger.Log(ctx, audit.Event{
			Type:         audit.TypeLoginFailed,
			EnterpriseID: enterpriseID,
			ActorID:      user.ID,
			Resource:     "login",
			Metadata:     map[string]any{audit.AttrReason: "inactive_account"},
		})
		return nil, ErrAccountInactive
	}

	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		s.auditLogger.Log(ctx, audit.Event{
			Type:         audit.TypeLoginFailed,
			EnterpriseID: enterpriseID,
			ActorID:      user.ID,
			Resource:     "login",
			Metadata:     map[string]any{audit.AttrReason: "locked_out"},
		})
		return nil, ErrAccountLocked
	}

	credentials, err := s.repo.GetCredentials(ctx, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	valid, err := s.hasher.Verify(password, credentials.PasswordHash)
	if err != nil || !valid {
		newAttempts := user.FailedLoginAttempts + 1
		var newLockedUntil *time.Time

		if newAttempts >= s.lockoutMaxAttempts {
			until := time.Now().Add(s.lockoutDuration)
			newLockedUntil = &until
			s.auditLogger.Log(ctx, audit.Event{
				Type:         audit.TypeUserLocked,
				EnterpriseID: enterpriseID,
				ActorID:      user.ID,
				Resource:     "login",
				Metadata:     map[string]any{audit.AttrAttempts: newAttempts},
			})
		}

		_ = s.repo.UpdateLockout(ctx, user.ID, newAttempts, newLockedUntil)

		s.auditLogger.Log(ctx, audit.Event{
			Type:         audit.TypeLoginFailed,
			EnterpriseID: enterpriseID,
			ActorID:      user.ID,
			Resource:     "login",
			Metadata: map[string]any{
				audit.AttrReason:   "invalid_password",
				audit.AttrAttempts: newAttempts,
			},
		})

		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		_ = s.repo.UpdateLockout(ctx, user.ID, 0, nil)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:         audit.TypeLoginSuccess,
		EnterpriseID: enterpriseID,
		ActorID:      user.ID,
		Resource:     "login",
	})

	return user, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail retrieves a user by email within an enterprise.
func (s *Service) GetByEmail(ctx context.Context, enterpriseID, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, enterpriseID, email)
}

// ListUsers lists users within an enterprise with pagination.
func (s *Service) ListUsers(ctx context.Context, enterpriseID string, limit, offset int) ([]*User, error) {
	return s.repo.ListByEnterprise(ctx, enterpriseID, limit, offset)
}

// ChangePassword changes user password after verifying the old one.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	credentials, err := s.repo.GetCredentials(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	valid, err := s.hasher.Verify(oldPassword, credentials.PasswordHash)
	if err != nil || !valid {
		return ErrInvalidCredentials
	}

	if !isStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, newHash)
}

// Helper functions
func isValidEmail(email string) bool {
	if len(email) < 3 || len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isStrongPassword(password string) bool {
	// Minimum length only; anything stricter belongs in a policy layer.
	return len(password) >= 8
}
