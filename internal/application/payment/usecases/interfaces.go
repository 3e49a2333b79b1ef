package usecases

import (
	"context"
	"time"
)

// ChargeLease serializes charge processing per subscription. A worker must
// hold the lease for a subscription while it talks to the gateway so that
// concurrent deliveries of the same charge cannot double-charge.
type ChargeLease interface {
	// Acquire returns false when another worker currently holds the lease.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
