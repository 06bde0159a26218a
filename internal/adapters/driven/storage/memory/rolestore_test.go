package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/core/domain"
)

func TestRoleStore_LoadEmpty(t *testing.T) {
	store := NewRoleStore()

	roles, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestRoleStore_LoadIsLazyAndCached(t *testing.T) {
	store := NewRoleStore(domain.Role{Name: "admins", Users: []string{"alice"}})
	ctx := context.Background()

	assert.Equal(t, 0, store.Loads)
	_, err := store.Load(ctx)
	require.NoError(t, err)
	_, err = store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, store.Loads)
}

func TestRoleStore_SeedIsCopied(t *testing.T) {
	seed := domain.Role{Name: "admins", Users: []string{"alice"}}
	store := NewRoleStore(seed)

	roles, err := store.Load(context.Background())
	require.NoError(t, err)
	roles[0].Users[0] = "mallory"

	assert.Equal(t, "alice", seed.Users[0])
}

func TestRoleStore_SaveRecordsState(t *testing.T) {
	store := NewRoleStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []domain.Role{{Name: "a"}}))
	require.NoError(t, store.Save(ctx, []domain.Role{{Name: "a"}, {Name: "b"}}))

	assert.Len(t, store.Saves, 2)
	assert.Len(t, store.LastSaved(), 2)

	roles, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestRoleStore_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	store := NewRoleStore()
	store.LoadErr = boom
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, boom)

	store = NewRoleStore()
	store.SaveErr = boom
	err = store.Save(ctx, []domain.Role{{Name: "a"}})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, store.LastSaved())

	// Memory keeps the unsaved state
	roles, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestRoleStore_Close(t *testing.T) {
	store := NewRoleStore()
	ctx := context.Background()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
	assert.True(t, store.Closed())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrStoreClosed)
	assert.Equal(t, ":memory:", store.Location())
}
