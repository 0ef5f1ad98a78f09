package enterprise

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bhashai/bhashai/internal/audit"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, e *Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Enterprise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Enterprise), args.Error(1)
}

func (m *mockRepo) GetByName(ctx context.Context, name string) (*Enterprise, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Enterprise), args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, e *Enterprise) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockRepo) List(ctx context.Context, limit, offset int) ([]*Enterprise, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Enterprise), args.Error(1)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func TestCreateEnterprise(t *testing.T) {
	repo := new(mockRepo)
	al := new(mockAudit)
	svc := NewService(repo, al)

	repo.On("GetByName", mock.Anything, "Acme Health").Return(nil, ErrEnterpriseNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*enterprise.Enterprise")).Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeEnterpriseCreated
	})).Return()

	e, err := svc.Create(context.Background(), "Acme Health", TypeHealthcare, "ops@acme.example", "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "Acme Health", e.Name)
	assert.Equal(t, TypeHealthcare, e.Type)
	assert.Equal(t, StatusActive, e.Status)

	// IDs are UUIDv7 so listing by ID follows creation order
	parsed, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	repo.AssertExpectations(t)
	al.AssertExpectations(t)
}

func TestCreateEnterpriseDefaultsToTrial(t *testing.T) {
	repo := new(mockRepo)
	al := new(mockAudit)
	svc := NewService(repo, al)

	repo.On("GetByName", mock.Anything, "Starter").Return(nil, ErrEnterpriseNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	e, err := svc.Create(context.Background(), "Starter", "", "", "actor-1")
	require.NoError(t, err)
	assert.Equal(t, TypeTrial, e.Type)
}

func TestCreateEnterpriseNameTaken(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockAudit))

	existing := &Enterprise{ID: "ent-1", Name: "Acme"}
	repo.On("GetByName", mock.Anything, "Acme").Return(existing, nil)

	_, err := svc.Create(context.Background(), "Acme", TypeTrial, "", "actor-1")
	assert.ErrorIs(t, err, ErrNameTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateEnterpriseInvalidType(t *testing.T) {
	svc := NewService(new(mockRepo), new(mockAudit))

	_, err := svc.Create(context.Background(), "Acme", "government", "", "actor-1")
	assert.Error(t, err)
}

func TestCreateEnterpriseInvalidEmail(t *testing.T) {
	svc := NewService(new(mockRepo), new(mockAudit))

	_, err := svc.Create(context.Background(), "Acme", TypeTrial, "not-an-email", "actor-1")
	assert.Error(t, err)
}

func TestUpdateEnterpriseStatus(t *testing.T) {
	repo := new(mockRepo)
	al := new(mockAudit)
	svc := NewService(repo, al)

	existing := &Enterprise{ID: "ent-1", Name: "Acme", Type: TypeCorporate, Status: StatusActive}
	repo.On("GetByID", mock.Anything, "ent-1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeEnterpriseUpdated
	})).Return()

	e, err := svc.Update(context.Background(), "ent-1", "", "", StatusInactive, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, e.Status)
}

func TestUpdateEnterpriseNotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, new(mockAudit))

	repo.On("GetByID", mock.Anything, "missing").Return(nil, ErrEnterpriseNotFound)

	_, err := svc.Update(context.Background(), "missing", "New Name", "", "", "actor-1")
	assert.ErrorIs(t, err, ErrEnterpriseNotFound)
}
