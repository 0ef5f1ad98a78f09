package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bhashai/bhashai/internal/audit"
)

type mockAgentRepo struct {
	mock.Mock
}

func (m *mockAgentRepo) Create(ctx context.Context, a *VoiceAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAgentRepo) GetByID(ctx context.Context, enterpriseID, id string) (*VoiceAgent, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*VoiceAgent), args.Error(1)
}

func (m *mockAgentRepo) Update(ctx context.Context, a *VoiceAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAgentRepo) Delete(ctx context.Context, enterpriseID, id string) error {
	args := m.Called(ctx, enterpriseID, id)
	return args.Error(0)
}

func (m *mockAgentRepo) ListByEnterprise(ctx context.Context, enterpriseID string, limit, offset int) ([]*VoiceAgent, error) {
	args := m.Called(ctx, enterpriseID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*VoiceAgent), args.Error(1)
}

func (m *mockAgentRepo) ListByChannel(ctx context.Context, enterpriseID, channelID string) ([]*VoiceAgent, error) {
	args := m.Called(ctx, enterpriseID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*VoiceAgent), args.Error(1)
}

type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) Create(ctx context.Context, c *Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockContactRepo) GetByID(ctx context.Context, enterpriseID, id string) (*Contact, error) {
	args := m.Called(ctx, enterpriseID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Contact), args.Error(1)
}

func (m *mockContactRepo) GetByIDs(ctx context.Context, enterpriseID string, ids []string) ([]*Contact, error) {
	args := m.Called(ctx, enterpriseID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Contact), args.Error(1)
}

func (m *mockContactRepo) Update(ctx context.Context, c *Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockContactRepo) Delete(ctx context.Context, enterpriseID, id string) error {
	args := m.Called(ctx, enterpriseID, id)
	return args.Error(0)
}

func (m *mockContactRepo) ListByAgent(ctx context.Context, enterpriseID, agentID string, limit, offset int) ([]*Contact, error) {
	args := m.Called(ctx, enterpriseID, agentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Contact), args.Error(1)
}

type mockAudit struct {
	mock.Mock
}

func (m *mockAudit) Log(ctx context.Context, event audit.Event) {
	m.Called(ctx, event)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"e164 passthrough", "+919876543210", "+919876543210", false},
		{"national with default region", "9876543210", "+919876543210", false},
		{"country code without plus", "919876543210", "+919876543210", false},
		{"us number", "+14155552671", "+14155552671", false},
		{"spaces stripped", " +91 98765 43210 ", "+919876543210", false},
		{"empty", "", "", true},
		{"letters", "not-a-phone", "", true},
		{"too short", "+9112", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateAgent(t *testing.T) {
	repo := new(mockAgentRepo)
	al := new(mockAudit)
	svc := NewService(repo, new(mockContactRepo), al)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*agents.VoiceAgent")).Return(nil)
	al.On("Log", mock.Anything, mock.MatchedBy(func(e audit.Event) bool {
		return e.Type == audit.TypeAgentCreated
	})).Return()

	a, err := svc.CreateAgent(context.Background(), "ent-1", CreateAgentParams{
		ChannelID:    "ch-1",
		Title:        "Clinic Reminder",
		AgentPrompt:  "You remind patients about appointments.",
		BolnaAgentID: "bolna-123",
	}, "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "ent-1", a.EnterpriseID)
	assert.Equal(t, "hinglish", a.LanguagePreference)
	assert.Equal(t, StatusActive, a.Status)
	assert.Equal(t, "bolna-123", a.BolnaAgentID)
}

func TestCreateAgentRequiresTitle(t *testing.T) {
	svc := NewService(new(mockAgentRepo), new(mockContactRepo), new(mockAudit))

	_, err := svc.CreateAgent(context.Background(), "ent-1", CreateAgentParams{ChannelID: "ch-1"}, "actor-1")
	assert.Error(t, err)
}

func TestCreateAgentNormalizesCallingNumber(t *testing.T) {
	repo := new(mockAgentRepo)
	al := new(mockAudit)
	svc := NewService(repo, new(mockContactRepo), al)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	a, err := svc.CreateAgent(context.Background(), "ent-1", CreateAgentParams{
		ChannelID:     "ch-1",
		Title:         "Dialer",
		CallingNumber: "9876543210",
	}, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", a.CallingNumber)
}

func TestAddContact(t *testing.T) {
	repo := new(mockAgentRepo)
	contactRepo := new(mockContactRepo)
	al := new(mockAudit)
	svc := NewService(repo, contactRepo, al)

	agent := &VoiceAgent{ID: "ag-1", EnterpriseID: "ent-1"}
	repo.On("GetByID", mock.Anything, "ent-1", "ag-1").Return(agent, nil)
	contactRepo.On("Create", mock.Anything, mock.AnythingOfType("*agents.Contact")).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	c, err := svc.AddContact(context.Background(), "ent-1", "ag-1", "Asha", "98765 43210", "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "+919876543210", c.Phone)
	assert.Equal(t, "ag-1", c.VoiceAgentID)
}

func TestAddContactInvalidPhone(t *testing.T) {
	svc := NewService(new(mockAgentRepo), new(mockContactRepo), new(mockAudit))

	_, err := svc.AddContact(context.Background(), "ent-1", "ag-1", "Asha", "12", "actor-1")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestAddContactDuplicate(t *testing.T) {
	repo := new(mockAgentRepo)
	contactRepo := new(mockContactRepo)
	svc := NewService(repo, contactRepo, new(mockAudit))

	agent := &VoiceAgent{ID: "ag-1", EnterpriseID: "ent-1"}
	repo.On("GetByID", mock.Anything, "ent-1", "ag-1").Return(agent, nil)
	contactRepo.On("Create", mock.Anything, mock.Anything).Return(ErrDuplicateContact)

	_, err := svc.AddContact(context.Background(), "ent-1", "ag-1", "Asha", "+919876543210", "actor-1")
	assert.ErrorIs(t, err, ErrDuplicateContact)
}

func TestAddContactAgentForeignEnterprise(t *testing.T) {
	repo := new(mockAgentRepo)
	svc := NewService(repo, new(mockContactRepo), new(mockAudit))

	repo.On("GetByID", mock.Anything, "ent-2", "ag-1").Return(nil, ErrAgentNotFound)

	_, err := svc.AddContact(context.Background(), "ent-2", "ag-1", "Asha", "+919876543210", "actor-1")
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestUpdateContact(t *testing.T) {
	contactRepo := new(mockContactRepo)
	al := new(mockAudit)
	svc := NewService(new(mockAgentRepo), contactRepo, al)

	existing := &Contact{ID: "c-1", EnterpriseID: "ent-1", VoiceAgentID: "ag-1", Name: "Asha", Phone: "+919876543210", Status: StatusActive}
	contactRepo.On("GetByID", mock.Anything, "ent-1", "c-1").Return(existing, nil)
	contactRepo.On("Update", mock.Anything, mock.AnythingOfType("*agents.Contact")).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	c, err := svc.UpdateContact(context.Background(), "ent-1", "c-1", "Asha Rao", "98765 43211", StatusInactive, "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "Asha Rao", c.Name)
	assert.Equal(t, "+919876543211", c.Phone)
	assert.Equal(t, StatusInactive, c.Status)
}

func TestUpdateContactKeepsUnsetFields(t *testing.T) {
	contactRepo := new(mockContactRepo)
	al := new(mockAudit)
	svc := NewService(new(mockAgentRepo), contactRepo, al)

	existing := &Contact{ID: "c-1", EnterpriseID: "ent-1", Name: "Asha", Phone: "+919876543210", Status: StatusActive}
	contactRepo.On("GetByID", mock.Anything, "ent-1", "c-1").Return(existing, nil)
	contactRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	al.On("Log", mock.Anything, mock.Anything).Return()

	c, err := svc.UpdateContact(context.Background(), "ent-1", "c-1", "", "", "", "actor-1")
	require.NoError(t, err)

	assert.Equal(t, "Asha", c.Name)
	assert.Equal(t, "+919876543210", c.Phone)
	assert.Equal(t, StatusActive, c.Status)
}

func TestUpdateContactInvalidPhone(t *testing.T) {
	contactRepo := new(mockContactRepo)
	svc := NewService(new(mockAgentRepo), contactRepo, new(mockAudit))

	existing := &Contact{ID: "c-1", EnterpriseID: "ent-1", Phone: "+919876543210"}
	contactRepo.On("GetByID", mock.Anything, "ent-1", "c-1").Return(existing, nil)

	_, err := svc.UpdateContact(context.Background(), "ent-1", "c-1", "", "12", "", "actor-1")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestUpdateContactInvalidStatus(t *testing.T) {
	contactRepo := new(mockContactRepo)
	svc := NewService(new(mockAgentRepo), contactRepo, new(mockAudit))

	existing := &Contact{ID: "c-1", EnterpriseID: "ent-1", Phone: "+919876543210", Status: StatusActive}
	contactRepo.On("GetByID", mock.Anything, "ent-1", "c-1").Return(existing, nil)

	_, err := svc.UpdateContact(context.Background(), "ent-1", "c-1", "", "", "archived", "actor-1")
	assert.Error(t, err)
}

func TestUpdateContactNotFound(t *testing.T) {
	contactRepo := new(mockContactRepo)
	svc := NewService(new(mockAgentRepo), contactRepo, new(mockAudit))

	contactRepo.On("GetByID", mock.Anything, "ent-1", "missing").Return(nil, ErrContactNotFound)

	_, err := svc.UpdateContact(context.Background(), "ent-1", "missing", "Asha", "", "", "actor-1")
	assert.ErrorIs(t, err, ErrContactNotFound)
}
