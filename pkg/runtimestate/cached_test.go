package runtimestate

import (
	"context"
	"testing"

	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	inner *MemoryStore
	gets  int
}

func newCountingStore() *countingStore {
	return &countingStore{inner: NewMemoryStore()}
}

func (s *countingStore) Get(ctx context.Context, pickupID string) (gfdf.PickupRuntime, bool) {
	s.gets++
	return s.inner.Get(ctx, pickupID)
}

func (s *countingStore) Put(ctx context.Context, runtime gfdf.PickupRuntime) error {
	return s.inner.Put(ctx, runtime)
}

func (s *countingStore) Delete(ctx context.Context, pickupID string) error {
	return s.inner.Delete(ctx, pickupID)
}

func TestCachedStoreReadsLocallyAfterPut(t *testing.T) {
	ctx := context.Background()
	backing := newCountingStore()
	store := NewCachedStore(backing)

	require.NoError(t, store.Put(ctx, gfdf.PickupRuntime{PickupID: "svc-1", BufferMinutes: 10}))

	for i := 0; i < 5; i++ {
		runtime, found := store.Get(ctx, "svc-1")
		require.True(t, found)
		assert.Equal(t, 10, runtime.BufferMinutes)
	}

	assert.Equal(t, 0, backing.gets, "reads after a local write should not reach the backing store")
}

func TestCachedStoreFallsBackToBackingOnce(t *testing.T) {
	ctx := context.Background()
	backing := newCountingStore()
	backing.inner.Put(ctx, gfdf.PickupRuntime{PickupID: "svc-2", BufferMinutes: 5})

	store := NewCachedStore(backing)

	runtime, found := store.Get(ctx, "svc-2")
	require.True(t, found)
	assert.Equal(t, 5, runtime.BufferMinutes)

	store.Get(ctx, "svc-2")
	store.Get(ctx, "svc-2")

	assert.Equal(t, 1, backing.gets, "a record fetched from the backing store should be kept locally")
}

func TestCachedStoreDeleteClearsBothLayers(t *testing.T) {
	ctx := context.Background()
	backing := newCountingStore()
	store := NewCachedStore(backing)

	store.Put(ctx, gfdf.PickupRuntime{PickupID: "svc-3"})
	require.NoError(t, store.Delete(ctx, "svc-3"))

	_, found := store.Get(ctx, "svc-3")
	assert.False(t, found)

	_, found = backing.inner.Get(ctx, "svc-3")
	assert.False(t, found)
}
