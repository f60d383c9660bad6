package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Middleware authenticates every request on the group: it extracts the
// bearer credential, resolves it through the cache-first Resolver, and
// stores the firm identity on the request context. Operation-level gates are
// applied per route by RequireOperation.
func Middleware(resolver *Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
			}

			// Clients send either the raw token or the Bearer form.
			if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
				token = token[7:]
			}

			firm, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return httpErrorFor(err)
			}

			c.Set("firm_id", firm.ID)
			c.SetRequest(c.Request().WithContext(WithFirm(c.Request().Context(), firm)))

			return next(c)
		}
	}
}

// RequireOperation gates a route on the credential's allowed-methods set.
func RequireOperation(operation string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			firm := FirmFromContext(c.Request().Context())
			if firm == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing!")
			}
			if !firm.Allows(operation) {
				return echo.NewHTTPError(http.StatusForbidden, "Method not allowed!")
			}
			return next(c)
		}
	}
}

func httpErrorFor(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
	case errors.Is(err, ErrTokenNotYetValid):
		return echo.NewHTTPError(http.StatusUnauthorized, "token has not start yet")
	case errors.Is(err, ErrTokenInvalid):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	case errors.Is(err, ErrIncompleteCache):
		return echo.NewHTTPError(http.StatusForbidden, "Cache data is incomplete!")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
