package cache

import (
	"context"
	"time"
)

// Store is the fast-cache collaborator shared by the token resolver and the
// risk-type catalog. A miss is reported as (nil, nil); errors mean the
// backend itself failed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
