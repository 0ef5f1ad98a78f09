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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhashai/bhashai/internal/audit"
	"github.com/bhashai/bhashai/internal/rbac"
)

// MockUserRepository is a simple in-memory implementation of UserRepository
type MockUserRepository struct {
	users       map[string]*User
	credentials map[string]*Credentials
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:       make(map[string]*User),
		credentials: make(map[string]*Credentials),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) AddCredentials(ctx context.Context, credentials *Credentials) error {
	m.credentials[credentials.UserID] = credentials
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, enterpriseID, email string) (*User, error) {
	for _, u := range m.users {
		if u.EnterpriseID == enterpriseID && u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepository) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*User, error) {
	var out []*User
	for _, u := range m.users {
		if u.EnterpriseID == enterpriseID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdateLockout(ctx context.Context, userID string, failedAttempts int, lockedUntil *time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.FailedLoginAttempts = failedAttempts
	u.LockedUntil = lockedUntil
	return nil
}

func (m *MockUserRepository) GetCredentials(ctx context.Context, userID string) (*Credentials, error) {
	c, ok := m.credentials[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return c, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	c, ok := m.credentials[userID]
	if !ok {
		return ErrUserNotFound
	}
	c.PasswordHash = passwordHash
	return nil
}

func newTestService(repo *MockUserRepository) *Service {
	// Small argon2 parameters keep the test fast.
	hasher := NewPasswordHasher(8, 1, 1, 16, 32)
	return NewService(repo, hasher, audit.NewSlogLogger(), 3, 5*time.Minute)
}

func provisionActiveUser(t *testing.T, s *Service, enterpriseID, email, password string) *User {
	t.Helper()
	ctx := context.Background()
	user, err := s.Provision(ctx, enterpriseID, email, "Test User", rbac.RoleUser)
	require.NoError(t, err)
	require.NoError(t, s.SetPassword(ctx, user.ID, password))
	require.NoError(t, s.Activate(ctx, user.ID))
	return user
}

func TestProvision_Validation(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	ctx := context.Background()

	_, err := s.Provision(ctx, "ent-1", "not-an-email", "X", rbac.RoleUser)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = s.Provision(ctx, "", "user@example.com", "X", rbac.RoleUser)
	assert.Error(t, err)

	_, err = s.Provision(ctx, "ent-1", "user@example.com", "X", "auditor")
	assert.ErrorIs(t, err, ErrInvalidRole)

	user, err := s.Provision(ctx, "ent-1", "user@example.com", "X", rbac.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, user.Status)

	_, err = s.Provision(ctx, "ent-1", "user@example.com", "X", rbac.RoleUser)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestProvision_SameEmailAcrossEnterprises(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	ctx := context.Background()

	_, err := s.Provision(ctx, "ent-1", "shared@example.com", "A", rbac.RoleUser)
	require.NoError(t, err)

	// The same email may exist in a different enterprise.
	_, err = s.Provision(ctx, "ent-2", "shared@example.com", "B", rbac.RoleUser)
	assert.NoError(t, err)
}

func TestAuthenticate_SuccessAndFailure(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	ctx := context.Background()

	user := provisionActiveUser(t, s, "ent-1", "login@example.com", "SecurePassword123")

	got, err := s.Authenticate(ctx, "ent-1", "login@example.com", "SecurePassword123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.Authenticate(ctx, "ent-1", "login@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "ent-1", "nobody@example.com", "SecurePassword123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_WrongEnterpriseFails(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	ctx := context.Background()

	provisionActiveUser(t, s, "ent-1", "login@example.com", "SecurePassword123")

	_, err := s.Authenticate(ctx, "ent-2", "login@example.com", "SecurePassword123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_PendingUserRejected(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	ctx := context.Background()

	user, err := s.Provision(ctx, "ent-1", "pending@example.com", "P", rbac.RoleUser)
	require.NoError(t, err)
	require.NoError(t, s.SetPassword(ctx, user.ID, "SecurePassword123"))

	_, err = s.Authenticate(ctx, "ent-1", "pending@example.com", "SecurePassword123")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthenticate_LockoutAfterRepeatedFailures(t *testing.T) {
	repo := NewMockUserRepository()
	s := newTestService(repo)
	ctx := context.Background()

	user := provisionActiveUser(t, s, "ent-1", "lock@example.com", "SecurePassword123")

	for i := 0; i < 3; i++ {
		_, err := s.Authenticate(ctx, "ent-1", "lock@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	require.NotNil(t, repo.users[user.ID].LockedUntil)

	// Even the correct password is rejected while locked.
	_, err := s.Authenticate(ctx, "ent-1", "lock@example.com", "SecurePassword123")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestAuthenticate_SuccessResetsFailureCount(t *testing.T) {
	repo := NewMockUserRepository()
	s := newTestService(repo)
	ctx := context.Background()

	user := provisionActiveUser(t, s, "ent-1", "reset@example.com", "SecurePassword123")

	_, err := s.Authenticate(ctx, "ent-1", "reset@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.users[user.ID].FailedLoginAttempts)

	_, err = s.Authenticate(ctx, "ent-1", "reset@example.com", "SecurePassword123")
	require.NoError(t, err)
	assert.Equal(t, 0, repo.users[user.ID].FailedLoginAttempts)
}

func TestSetPassword_RejectsWeakPassword(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	err := s.SetPassword(context.Background(), "user-1", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestChangePassword(t *testing.T) {
	s := newTestService(NewMockUserRepository())
	ctx := context.Background()

	user := provisionActiveUser(t, s, "ent-1", "change@example.com", "OldPassword123")

	err := s.ChangePassword(ctx, user.ID, "wrong-old", "NewPassword123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = s.ChangePassword(ctx, user.ID, "OldPassword123", "tiny")
	assert.ErrorIs(t, err, ErrWeakPassword)

	err = s.ChangePassword(ctx, user.ID, "OldPassword123", "NewPassword123")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "ent-1", "change@example.com", "NewPassword123")
	assert.NoError(t, err)
}
