package runtimestate

import (
	"context"

	"github.com/gofetch/gofetch/pkg/gfdf"
)

// CachedStore layers an in-process copy over a backing store. The tracker
// process writes every record it publishes, so the countdown engine's one
// second tick reads the local copy and never touches the network.
type CachedStore struct {
	local   *MemoryStore
	backing Store
}

func NewCachedStore(backing Store) *CachedStore {
	return &CachedStore{
		local:   NewMemoryStore(),
		backing: backing,
	}
}

func (s *CachedStore) Get(ctx context.Context, pickupID string) (gfdf.PickupRuntime, bool) {
	if runtime, found := s.local.Get(ctx, pickupID); found {
		return runtime, true
	}

	runtime, found := s.backing.Get(ctx, pickupID)
	if found {
		s.local.Put(ctx, runtime)
	}

	return runtime, found
}

func (s *CachedStore) Put(ctx context.Context, runtime gfdf.PickupRuntime) error {
	s.local.Put(ctx, runtime)

	return s.backing.Put(ctx, runtime)
}

func (s *CachedStore) Delete(ctx context.Context, pickupID string) error {
	s.local.Delete(ctx, pickupID)

	return s.backing.Delete(ctx, pickupID)
}
