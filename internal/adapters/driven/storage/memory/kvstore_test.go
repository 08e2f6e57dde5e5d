package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/photon-labs/glance/internal/core/domain"
)

func TestKVStore_SetGet(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "gallery/annotations", []byte(`{"a":1}`)))

	value, err := store.Get(ctx, "gallery/annotations")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), value)
}

func TestKVStore_Get_Missing(t *testing.T) {
	store := NewKVStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKVStore_Remove(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	require.NoError(t, store.Remove(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Removing an absent key is not an error.
	assert.NoError(t, store.Remove(ctx, "key"))
}

func TestKVStore_ListKeys(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []byte("1")))
	require.NoError(t, store.Set(ctx, "b", []byte("2")))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestKVStore_ValueLimit(t *testing.T) {
	store := NewKVStore(WithValueLimit(4))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "small", []byte("ok")))

	err := store.Set(ctx, "large", []byte("too big"))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	// The rejected write leaves nothing behind.
	_, err = store.Get(ctx, "large")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKVStore_ReturnsCopies(t *testing.T) {
	store := NewKVStore()
	ctx := context.Background()

	original := []byte("value")
	require.NoError(t, store.Set(ctx, "key", original))
	original[0] = 'X'

	stored, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), stored)

	stored[0] = 'Y'
	again, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), again)
}
