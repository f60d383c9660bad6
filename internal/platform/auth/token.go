package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Decode failures, classified for distinct caller-visible rejections.
var (
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token has not start yet")
	ErrTokenInvalid     = errors.New("invalid token")
)

// Decode verifies an HS256 credential against the shared secret and returns
// its claims. Failures are collapsed into the three sentinel errors above.
func Decode(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	switch {
	case err == nil && parsed.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	default:
		return nil, ErrTokenInvalid
	}
}

// Sign mints an HS256 credential for a firm. Used by the token subcommand
// and the package tests.
func Sign(firmID int, methods []string, risks []int, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Methods: methods,
		Risks:   risks,
		FirmID:  firmID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
