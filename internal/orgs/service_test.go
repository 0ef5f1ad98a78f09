package orgs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bhashai/bhashai/internal/audit"
)

type mockOrgRepo struct {
	mock.Mock
}

func (m *mockOrgRepo) Create(ctx context.Context, o *Organization) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrgRepo) GetByID(ctx context.Context, enterpriseID, id string) (*Organization, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Organization), args.Error(1)
}

func (m *mockOrgRepo) Update(ctx context.Context, o *Organization) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrgRepo) Delete(ctx context.Context, enterpriseID, id string) error {
	args := m.Called(ctx, enterpriseID, id)
	return args.Error(0)
}

func (m *mockOrgRepo) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*Organization, error) {
	args := m.Called(ctx, enterpriseID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Organization), args.Error(1)
}

type mockChannelRepo struct {
	mock.Mock
}

func (m *mockChannelRepo) Create(ctx context.Context, c *Channel) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockChannelRepo) GetByID(ctx context.Context, enterpriseID, id string) (*Channel, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Channel), args.Error(1)
}

func (m *mockChannelRepo) Update(ctx context.Context, c *Channel) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockChannelRepo) Delete(ctx context.Context, enterpriseID, id string) error {
	args := m.Called(ctx, enterpriseID, id)
	return args.Error(0)
}

func (m *mockChannelRepo) ListByOrganization(ctx context.Context, enterpriseID, organizationID string) ([]*Channel, error) {
	args := m.Called(ctx, enterpriseID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Channel), args.Error(1)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func TestCreateOrganization(t *testing.T) {
	repo := new(mockOrgRepo)
	al := new(mockAudit)
	svc := NewService(repo, new(mockChannelRepo), al)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*orgs.Organization")).Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeOrganizationCreated && e.EnterpriseID == "ent-1"
	})).Return()

	o, err := svc.CreateOrganization(context.Background(), "ent-1", "Sales", "outbound team", "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "ent-1", o.EnterpriseID)
	assert.Equal(t, "Sales", o.Name)
	assert.Equal(t, StatusActive, o.Status)
	assert.NotEmpty(t, o.ID)

	repo.AssertExpectations(t)
	al.AssertExpectations(t)
}

func TestCreateOrganizationRequiresName(t *testing.T) {
	svc := NewService(new(mockOrgRepo), new(mockChannelRepo), new(mockAudit))

	_, err := svc.CreateOrganization(context.Background(), "ent-1", "", "", "actor-1")
	assert.Error(t, err)
}

func TestCreateChannel(t *testing.T) {
	repo := new(mockOrgRepo)
	chRepo := new(mockChannelRepo)
	al := new(mockAudit)
	svc := NewService(repo, chRepo, al)

	parent := &Organization{ID: "org-1", EnterpriseID: "ent-1", Name: "Sales"}
	repo.On("GetByID", mock.Anything, "ent-1", "org-1").Return(parent, nil)
	chRepo.On("Create", mock.Anything, mock.AnythingOfType("*orgs.Channel")).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	c, err := svc.CreateChannel(context.Background(), "ent-1", "org-1", "Dialer", CategoryOutboundCalls, "actor-1")
	require.NoError(t, err)

	assert.Equal(t, CategoryOutboundCalls, c.Category)
	assert.Equal(t, "org-1", c.OrganizationID)
	assert.Equal(t, "ent-1", c.EnterpriseID)
}

func TestCreateChannelRejectsUnknownCategory(t *testing.T) {
	svc := NewService(new(mockOrgRepo), new(mockChannelRepo), new(mockAudit))

	_, err := svc.CreateChannel(context.Background(), "ent-1", "org-1", "SMS", "SMS Messages", "actor-1")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCreateChannelOrganizationMustExist(t *testing.T) {
	repo := new(mockOrgRepo)
	svc := NewService(repo, new(mockChannelRepo), new(mockAudit))

	repo.On("GetByID", mock.Anything, "ent-1", "missing").Return(nil, ErrOrganizationNotFound)

	_, err := svc.CreateChannel(context.Background(), "ent-1", "missing", "Dialer", CategoryOutboundCalls, "actor-1")
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestCreateChannelScopedToOwnEnterprise(t *testing.T) {
	repo := new(mockOrgRepo)
	svc := NewService(repo, new(mockChannelRepo), new(mockAudit))

	// The org belongs to another enterprise: the scoped lookup misses.
	repo.On("GetByID", mock.Anything, "ent-2", "org-1").Return(nil, ErrOrganizationNotFound)

	_, err := svc.CreateChannel(context.Background(), "ent-2", "org-1", "Dialer", CategoryInboundCalls, "actor-1")
	assert.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestDeleteChannel(t *testing.T) {
	chRepo := new(mockChannelRepo)
	al := new(mockAudit)
	svc := NewService(new(mockOrgRepo), chRepo, al)

	c := &Channel{ID: "ch-1", EnterpriseID: "ent-1", Name: "Dialer"}
	chRepo.On("GetByID", mock.Anything, "ent-1", "ch-1").Return(c, nil)
	chRepo.On("Delete", mock.Anything, "ent-1", "ch-1").Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeChannelDeleted
	})).Return()

	err := svc.DeleteChannel(context.Background(), "ent-1", "ch-1", "actor-1")
	require.NoError(t, err)
	chRepo.AssertExpectations(t)
}
