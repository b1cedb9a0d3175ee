// Package runtimestate caches the live per-pickup record - arrival signal,
// travel estimate and buffer - that the countdown engine reads on every tick.
// Records are keyed by pickup id and overwritten whole, so concurrent
// refreshes resolve as last write wins.
package runtimestate

import (
	"context"

	"github.com/gofetch/gofetch/pkg/gfdf"
)

type Store interface {
	Get(ctx context.Context, pickupID string) (gfdf.PickupRuntime, bool)
	Put(ctx context.Context, runtime gfdf.PickupRuntime) error
	Delete(ctx context.Context, pickupID string) error
}
