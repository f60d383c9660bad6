package risktype

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/platform/cache"
)

const (
	catalogKey = "risk_types:catalog"
	catalogTTL = 24 * time.Hour
)

// IDResolver maps a risk-type name to its persisted catalog id through a
// read-through cache. The catalog changes rarely; entries expire only by
// TTL, so catalog edits can take up to catalogTTL to propagate. Concurrent
// misses may race to repopulate; the overwrite is idempotent.
type IDResolver struct {
	repo  CatalogRepository
	store cache.Store
	log   zerolog.Logger
}

func NewIDResolver(repo CatalogRepository, store cache.Store, log zerolog.Logger) *IDResolver {
	return &IDResolver{repo: repo, store: store, log: log}
}

// Resolve returns the catalog id for a risk-type name, loading the full
// catalog from the store of record on a cache miss.
func (r *IDResolver) Resolve(ctx context.Context, name string) (int, error) {
	data, err := r.store.Get(ctx, catalogKey)
	if err != nil {
		return 0, fmt.Errorf("catalog cache get: %w", err)
	}

	if data != nil {
		var catalog map[string]int
		if err := json.Unmarshal(data, &catalog); err == nil {
			if id, ok := catalog[name]; ok {
				return id, nil
			}
			// Known-stale misses are tolerated until the TTL rolls the
			// catalog over.
			return 0, ErrUnknownType
		}
		r.log.Warn().Msg("catalog cache entry is malformed, reloading")
	}

	catalog, err := r.repo.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	if payload, err := json.Marshal(catalog); err == nil {
		if err := r.store.Set(ctx, catalogKey, payload, catalogTTL); err != nil {
			r.log.Error().Err(err).Msg("catalog cache set failed")
		}
	}

	id, ok := catalog[name]
	if !ok {
		return 0, ErrUnknownType
	}
	return id, nil
}
