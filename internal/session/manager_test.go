package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"
	"storefront/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-session-secret"

type fixture struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	mgr   *Manager
	clock *time.Time
	user  *domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)
	users := store.NewUsers(gdb)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f := &fixture{db: gdb, mr: mr, clock: &now}

	mgr, err := NewManager(rdb, users, testSecret, 0, WithClock(func() time.Time { return *f.clock }))
	require.NoError(t, err)
	f.mgr = mgr

	f.user = &domain.User{Email: "a@x.com", Password: "hash", Role: domain.RoleCustomer, Name: "Alice"}
	require.NoError(t, users.Create(context.Background(), f.user))
	return f
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestNewManager(t *testing.T) {
	rdb, _ := testutil.NewRedis(t)

	_, err := NewManager(rdb, nil, "", time.Hour)
	assert.Error(t, err)

	m, err := NewManager(rdb, nil, "s", 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.TTL())
}

func TestEstablishResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := f.mgr.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, f.user.ID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)

	keys := f.mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "session:"))
	assert.Equal(t, 24*time.Hour, f.mr.TTL(keys[0]))
}

func TestResolve_Absent(t *testing.T) {
	f := newFixture(t)

	got, err := f.mgr.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolve_Tampered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)

	for _, bad := range []string{
		"garbage",
		token + "x",
		token[:len(token)-4],
	} {
		got, err := f.mgr.Resolve(ctx, bad)
		require.NoError(t, err)
		assert.Nil(t, got, bad)
	}

	rdb, _ := testutil.NewRedis(t)
	other, err := NewManager(rdb, store.NewUsers(f.db), "another-secret", 0)
	require.NoError(t, err)
	got, err := other.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolve_ExpiresAfterTTL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)

	f.advance(23 * time.Hour)
	got, err := f.mgr.Resolve(ctx, token)
	require.NoError(t, err)
	assert.NotNil(t, got, "activity does not matter inside the lifetime")

	f.advance(time.Hour + time.Second)
	got, err = f.mgr.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolve_StoreExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)

	f.mr.FastForward(24 * time.Hour)
	got, err := f.mgr.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolve_LifetimeNotExtended(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)

	f.mr.FastForward(12 * time.Hour)
	_, err = f.mgr.Resolve(ctx, token)
	require.NoError(t, err)

	keys := f.mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, 12*time.Hour, f.mr.TTL(keys[0]))
}

func TestResolve_DeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)
	require.NoError(t, f.db.Delete(&domain.User{}, f.user.ID).Error)

	got, err := f.mgr.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolve_ReflectsCurrentRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&domain.User{}).Where("id = ?", f.user.ID).Update("role", domain.RoleAdmin).Error)

	got, err := f.mgr.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())
}

func TestDestroy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)
	second, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	require.NoError(t, f.mgr.Destroy(ctx, first))
	require.NoError(t, f.mgr.Destroy(ctx, first), "destroy is idempotent")

	got, err := f.mgr.Resolve(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.mgr.Resolve(ctx, second)
	require.NoError(t, err)
	assert.NotNil(t, got, "other sessions of the same user survive")

	assert.NoError(t, f.mgr.Destroy(ctx, ""))
	assert.NoError(t, f.mgr.Destroy(ctx, "garbage"))
}

func TestDestroy_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)

	f.advance(48 * time.Hour)
	require.NoError(t, f.mgr.Destroy(ctx, token))
	assert.Empty(t, f.mr.Keys())
}

func TestStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	token, err := f.mgr.Establish(ctx, f.user)
	require.NoError(t, err)

	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = down.Close() })
	mgr, err := NewManager(down, store.NewUsers(f.db), testSecret, 0, WithClock(func() time.Time { return *f.clock }))
	require.NoError(t, err)

	_, err = mgr.Resolve(ctx, token)
	assert.Error(t, err, "an unreachable store is not the same as no session")

	_, err = mgr.Establish(ctx, f.user)
	assert.Error(t, err)

	assert.Error(t, mgr.Destroy(ctx, token))
}
