package store

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CreateAndFind(t *testing.T) {
	users := NewUsers(testutil.NewDB(t))
	ctx := context.Background()

	u := &domain.User{Email: "a@x.com", Password: "hash", Role: domain.RoleCustomer, Name: "A"}
	require.NoError(t, users.Create(ctx, u))
	require.NotZero(t, u.ID)

	byEmail, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", byID.Name)
}

func TestUsers_EmailIsCaseSensitive(t *testing.T) {
	users := NewUsers(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "a@x.com", Password: "hash", Role: domain.RoleCustomer}))

	_, err := users.FindByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	users := NewUsers(testutil.NewDB(t))
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "a@x.com", Password: "hash", Role: domain.RoleCustomer}))
	err := users.Create(ctx, &domain.User{Email: "a@x.com", Password: "other", Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUsers_FindByID_NotFound(t *testing.T) {
	users := NewUsers(testutil.NewDB(t))

	_, err := users.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProducts_ListGetSetPrice(t *testing.T) {
	products := NewProducts(testutil.NewDB(t))
	ctx := context.Background()

	list, err := products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	p := &domain.Product{Name: "Mug", Price: 4.5}
	require.NoError(t, products.Create(ctx, p))
	require.NoError(t, products.Create(ctx, &domain.Product{Name: "Tee", Price: 12}))

	list, err = products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mug", list[0].Name)

	require.NoError(t, products.SetPrice(ctx, p.ID, 6))
	got, err := products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got.Price, 1e-9)

	// Unchanged price is still a success
	require.NoError(t, products.SetPrice(ctx, p.ID, 6))
}

func TestProducts_NotFound(t *testing.T) {
	products := NewProducts(testutil.NewDB(t))
	ctx := context.Background()

	_, err := products.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, products.SetPrice(ctx, 99, 1), ErrNotFound)
}
