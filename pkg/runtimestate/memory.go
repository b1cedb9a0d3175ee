package runtimestate

import (
	"context"
	"sync"

	"github.com/gofetch/gofetch/pkg/gfdf"
)

// MemoryStore keeps runtime records in process. Used in tests and when
// running without Redis.
type MemoryStore struct {
	mutex   sync.RWMutex
	records map[string]gfdf.PickupRuntime
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: map[string]gfdf.PickupRuntime{},
	}
}

func (s *MemoryStore) Get(ctx context.Context, pickupID string) (gfdf.PickupRuntime, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	runtime, found := s.records[pickupID]
	return runtime, found
}

func (s *MemoryStore) Put(ctx context.Context, runtime gfdf.PickupRuntime) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.records[runtime.PickupID] = runtime
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, pickupID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.records, pickupID)
	return nil
}
