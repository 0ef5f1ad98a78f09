package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory session repository.
type memRepo struct {
	sessions map[string]*Session
}

func newMemRepo() *memRepo {
	return &memRepo{sessions: make(map[string]*Session)}
}

func (m *memRepo) Create(ctx context.Context, s *Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memRepo) Get(ctx context.Context, id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *memRepo) Update(ctx context.Context, s *Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *memRepo) DeleteByUserID(ctx context.Context, userID string) error {
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *memRepo) DeleteExpired(ctx context.Context) error {
	for id, s := range m.sessions {
		if s.IsExpired() {
			delete(m.sessions, id)
		}
	}
	return nil
}

func TestCreateAndGet(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, 24*time.Hour, 30*time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx, "ent-1", "user-1", "10.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, "ent-1", sess.EnterpriseID)

	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
}

func TestGet_ExpiredSessionIsDeleted(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, 24*time.Hour, 30*time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx, "ent-1", "user-1", "", "")
	require.NoError(t, err)

	repo.sessions[sess.ID].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Empty(t, repo.sessions)
}

func TestGet_IdleSessionRejected(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, 24*time.Hour, 30*time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx, "ent-1", "user-1", "", "")
	require.NoError(t, err)

	repo.sessions[sess.ID].LastSeenAt = time.Now().Add(-time.Hour)

	_, err = s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestRefresh_UpdatesLastSeen(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, 24*time.Hour, 30*time.Minute)
	ctx := context.Background()

	sess, err := s.Create(ctx, "ent-1", "user-1", "", "")
	require.NoError(t, err)

	repo.sessions[sess.ID].LastSeenAt = time.Now().Add(-10 * time.Minute)

	require.NoError(t, s.Refresh(ctx, sess.ID))
	assert.WithinDuration(t, time.Now(), repo.sessions[sess.ID].LastSeenAt, time.Second)
}

func TestDestroyAllForUser(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, 24*time.Hour, 30*time.Minute)
	ctx := context.Background()

	first, err := s.Create(ctx, "ent-1", "user-1", "", "")
	require.NoError(t, err)
	_, err = s.Create(ctx, "ent-1", "user-1", "", "")
	require.NoError(t, err)
	other, err := s.Create(ctx, "ent-1", "user-2", "", "")
	require.NoError(t, err)

	require.NoError(t, s.DestroyAllForUser(ctx, "user-1"))

	_, err = s.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Get(ctx, other.ID)
	assert.NoError(t, err)
}

func TestSessionIDsAreUnique(t *testing.T) {
	repo := newMemRepo()
	s := NewService(repo, time.Hour, time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sess, err := s.Create(ctx, "ent-1", "user-1", "", "")
		require.NoError(t, err)
		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}
