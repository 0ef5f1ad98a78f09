package calls

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bhashai/bhashai/internal/bolna"
)

type mockStatusClient struct {
	mock.Mock
}

func (m *mockStatusClient) GetCallStatus(ctx context.Context, callID string) (*bolna.CallStatus, error) {
	args := m.Called(ctx, callID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bolna.CallStatus), args.Error(1)
}

func TestRefreshStatusCompleted(t *testing.T) {
	repo := new(mockCallLogRepo)
	vendor := new(mockStatusClient)
	svc := NewService(repo, vendor)

	cl := &CallLog{ID: "cl-1", EnterpriseID: "ent-1", BolnaCallID: "call-abc", Status: StatusInitiated}
	repo.On("GetByID", mock.Anything, "ent-1", "cl-1").Return(cl, nil)
	vendor.On("GetCallStatus", mock.Anything, "call-abc").Return(&bolna.CallStatus{
		CallID:          "call-abc",
		Status:          "completed",
		DurationSeconds: 73,
		Transcript:      "hello",
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	got, err := svc.RefreshStatus(context.Background(), "ent-1", "cl-1")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 73.0, got.DurationSeconds)
	assert.Equal(t, "hello", got.Transcript)
}

func TestRefreshStatusSkipsFailedDispatch(t *testing.T) {
	repo := new(mockCallLogRepo)
	vendor := new(mockStatusClient)
	svc := NewService(repo, vendor)

	cl := &CallLog{ID: "cl-1", EnterpriseID: "ent-1", Status: StatusFailed}
	repo.On("GetByID", mock.Anything, "ent-1", "cl-1").Return(cl, nil)

	got, err := svc.RefreshStatus(context.Background(), "ent-1", "cl-1")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	vendor.AssertNotCalled(t, "GetCallStatus", mock.Anything, mock.Anything)
}

func TestRefreshStatusScopedLookup(t *testing.T) {
	repo := new(mockCallLogRepo)
	svc := NewService(repo, new(mockStatusClient))

	repo.On("GetByID", mock.Anything, "ent-2", "cl-1").Return(nil, ErrCallLogNotFound)

	_, err := svc.RefreshStatus(context.Background(), "ent-2", "cl-1")
	assert.ErrorIs(t, err, ErrCallLogNotFound)
}

func TestMapVendorStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, mapVendorStatus("in-progress"))
	assert.Equal(t, StatusCompleted, mapVendorStatus("ended"))
	assert.Equal(t, StatusBusy, mapVendorStatus("busy"))
	assert.Equal(t, StatusNoAnswer, mapVendorStatus("no-answer"))
	assert.Equal(t, StatusFailed, mapVendorStatus("error"))
	assert.Equal(t, StatusInitiated, mapVendorStatus(""))
	assert.Equal(t, "voicemail-detected", mapVendorStatus("voicemail-detected"))
}

func TestListByStatusClampsLimit(t *testing.T) {
	repo := new(mockCallLogRepo)
	svc := NewService(repo, new(mockStatusClient))

	repo.On("ListByStatus", mock.Anything, "ent-1", StatusFailed, 50, 0).Return([]*CallLog{}, nil)

	_, err := svc.ListByStatus(context.Background(), "ent-1", StatusFailed, 0, 0)
	require.NoError(t, err)

	_, err = svc.ListByStatus(context.Background(), "ent-1", StatusFailed, 500, 0)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListByStatus", 2)
}
