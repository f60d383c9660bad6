package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const firmKey contextKey = "firm"

// Claims is the payload of a firm credential: the firm id, the route
// operations the token may invoke, and the numeric risk-type ids it may
// submit.
type Claims struct {
	jwt.RegisteredClaims
	Methods []string `json:"methods"`
	Risks   []int    `json:"risks"`
	FirmID  int      `json:"id"`
}

// Firm is a resolved tenant identity, either decoded from a credential or
// restored from the fast cache.
type Firm struct {
	ID      int      `json:"id_firm"`
	Methods []string `json:"methods"`
	Risks   []int    `json:"risks"`
}

// Allows reports whether the firm's credential permits the named operation.
func (f *Firm) Allows(operation string) bool {
	for _, m := range f.Methods {
		if m == operation {
			return true
		}
	}
	return false
}

// AllowsRisk reports whether the firm's credential permits the risk type
// with the given catalog id.
func (f *Firm) AllowsRisk(typeID int) bool {
	for _, id := range f.Risks {
		if id == typeID {
			return true
		}
	}
	return false
}

// WithFirm returns a context carrying the resolved firm identity.
func WithFirm(ctx context.Context, f *Firm) context.Context {
	return context.WithValue(ctx, firmKey, f)
}

// FirmFromContext retrieves the resolved firm identity, or nil when the
// request was not authenticated.
func FirmFromContext(ctx context.Context) *Firm {
	f, _ := ctx.Value(firmKey).(*Firm)
	return f
}
