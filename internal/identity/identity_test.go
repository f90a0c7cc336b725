package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/kv/memory"
	"github.com/tin229oo/nadias-lending/internal/models"
	"github.com/tin229oo/nadias-lending/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	slots := memory.New()
	records := store.New(slots, "test:db", store.SeedAdmin{
		Name:     "Administrator",
		Email:    "admin@nadia.local",
		Password: "admin123",
	})
	return NewManager(records, slots, time.Hour, zap.NewNop())
}

func TestRegister_AssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	first, err := m.Register(ctx, "Ana", "ana@example.com", "+15550001", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, models.RoleCustomer, first.Role)

	second, err := m.Register(ctx, "Ben", "ben@example.com", "+15550002", "secret2")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	_, err := m.Register(ctx, "Ana", "ana@example.com", "", "secret1")
	require.NoError(t, err)

	_, err = m.Register(ctx, "Other Ana", "ana@example.com", "", "secret2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLogin_MatchAndMismatch(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	_, err := m.Register(ctx, "Ana", "ana@example.com", "", "secret1")
	require.NoError(t, err)

	user, sid, ok, err := m.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, sid)
	assert.Equal(t, "ana@example.com", user.Email)

	// Wrong password is a non-error miss.
	_, _, ok, err = m.Login(ctx, "ana@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown email likewise.
	_, _, ok, err = m.Login(ctx, "nobody@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	user, _, ok, err := m.Login(ctx, "admin@nadia.local", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, user.IsAdmin())
}

func TestCurrentUser_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	registered, err := m.Register(ctx, "Ana", "ana@example.com", "", "secret1")
	require.NoError(t, err)

	_, sid, ok, err := m.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, ok)

	current, ok, err := m.CurrentUser(ctx, sid)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, registered.ID, current.ID)

	require.NoError(t, m.Logout(ctx, sid))

	_, ok, err = m.CurrentUser(ctx, sid)
	require.NoError(t, err)
	assert.False(t, ok)

	// Logging out again is fine.
	require.NoError(t, m.Logout(ctx, sid))
}

func TestCurrentUser_NoSession(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	_, ok, err := m.CurrentUser(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.CurrentUser(ctx, "never-issued")
	require.NoError(t, err)
	assert.False(t, ok)
}
