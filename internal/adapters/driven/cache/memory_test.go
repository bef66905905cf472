package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", []byte("value"), time.Minute))

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), got)
}

func TestMemoryStore_GetMissingReturnsNil(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "key", []byte("value"), 10*time.Minute))

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.NotNil(t, got)

	current = current.Add(10*time.Minute + time.Second)

	got, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", []byte("value"), time.Minute))
	require.NoError(t, store.Delete(ctx, "key"))

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent key is a no-op.
	assert.NoError(t, store.Delete(ctx, "absent"))
}

func TestMemoryStore_PutCopiesValue(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("original")
	require.NoError(t, store.Put(ctx, "key", value, time.Minute))
	value[0] = 'X'

	got, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}
