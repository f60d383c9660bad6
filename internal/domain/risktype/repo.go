package risktype

import "context"

// CatalogRepository loads the persisted risk-type catalog. The catalog is
// small, so misses always trigger a full load rather than per-key reads.
type CatalogRepository interface {
	LoadAll(ctx context.Context) (map[string]int, error)
}
