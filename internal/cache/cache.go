package cache

import (
	"context"
	"time"
)

// Cache backs read-heavy endpoints (the stats overview); mutating
// services Del the affected keys so readers never see stale numbers
// for longer than one round trip.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
