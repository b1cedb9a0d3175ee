package runtimestate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/gofetch/gofetch/pkg/gfdf"
	"github.com/gofetch/gofetch/pkg/redis_client"
	"github.com/rs/zerolog/log"
)

// Runtime records are short lived by nature - a pickup more than 90 minutes
// stale has either completed or lost its tracker.
const recordExpiration = 90 * time.Minute

type RedisStore struct {
	cache *cache.Cache[string]
}

func NewRedisStore() *RedisStore {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(recordExpiration))

	return &RedisStore{
		cache: cache.New[string](redisStore),
	}
}

func runtimeKey(pickupID string) string {
	return fmt.Sprintf("gofetch/runtime/%s", pickupID)
}

func (s *RedisStore) Get(ctx context.Context, pickupID string) (gfdf.PickupRuntime, bool) {
	value, err := s.cache.Get(ctx, runtimeKey(pickupID))
	if err != nil {
		return gfdf.PickupRuntime{}, false
	}

	var runtime gfdf.PickupRuntime
	if err := json.Unmarshal([]byte(value), &runtime); err != nil {
		log.Error().Err(err).Str("pickup", pickupID).Msg("Corrupt runtime record")
		return gfdf.PickupRuntime{}, false
	}

	return runtime, true
}

func (s *RedisStore) Put(ctx context.Context, runtime gfdf.PickupRuntime) error {
	value, err := json.Marshal(runtime)
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, runtimeKey(runtime.PickupID), string(value))
}

func (s *RedisStore) Delete(ctx context.Context, pickupID string) error {
	return s.cache.Delete(ctx, runtimeKey(pickupID))
}
