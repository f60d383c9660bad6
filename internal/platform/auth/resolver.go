package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/platform/cache"
)

// cacheTTL bounds how long a decoded credential is trusted without
// re-verification. A revoked token can stay live at most this long.
const cacheTTL = time.Hour

// ErrIncompleteCache is returned when a cached credential record lacks the
// allowed-methods set and therefore cannot be trusted.
var ErrIncompleteCache = errors.New("incomplete cache record")

// Resolver maps a presented credential string to a firm identity. Decoded
// credentials are cached keyed by the exact token string so repeated
// requests skip signature verification.
type Resolver struct {
	secret []byte
	store  cache.Store
	log    zerolog.Logger
}

func NewResolver(secret []byte, store cache.Store, log zerolog.Logger) *Resolver {
	return &Resolver{secret: secret, store: store, log: log}
}

// cachedFirm mirrors Firm with explicit presence tracking for the methods
// field: a record written without it must be rejected, not treated as an
// empty permission set.
type cachedFirm struct {
	ID      int       `json:"id_firm"`
	Methods *[]string `json:"methods"`
	Risks   []int     `json:"risks"`
}

// Resolve returns the firm identity for a credential, from cache when
// possible, decoding and populating the cache otherwise.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Firm, error) {
	data, err := r.store.Get(ctx, "token:"+token)
	if err != nil {
		return nil, fmt.Errorf("token cache get: %w", err)
	}

	if data != nil {
		var rec cachedFirm
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("token cache decode: %w", err)
		}
		if rec.Methods == nil {
			return nil, ErrIncompleteCache
		}
		return &Firm{ID: rec.ID, Methods: *rec.Methods, Risks: rec.Risks}, nil
	}

	claims, err := Decode(token, r.secret)
	if err != nil {
		return nil, err
	}

	firm := &Firm{ID: claims.FirmID, Methods: claims.Methods, Risks: claims.Risks}

	payload, err := json.Marshal(firm)
	if err == nil {
		if err := r.store.Set(ctx, "token:"+token, payload, cacheTTL); err != nil {
			r.log.Error().Err(err).Int("id_firm", firm.ID).Msg("token cache set failed")
		}
	}

	return firm, nil
}
