package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/platform/cache"
)

func authRequest(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestMiddleware_MissingToken(t *testing.T) {
	r := NewResolver(testSecret, cache.NewMemoryStore(), zerolog.Nop())
	c, _ := authRequest(t, "")

	err := Middleware(r)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Token is missing!" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	r := NewResolver(testSecret, cache.NewMemoryStore(), zerolog.Nop())
	token, err := Sign(3, []string{"patients_list"}, nil, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, rec := authRequest(t, token)

	var seen *Firm
	handler := func(c echo.Context) error {
		seen = FirmFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}
	if err := Middleware(r)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != 3 {
		t.Errorf("expected firm 3 in context, got %+v", seen)
	}
}

func TestMiddleware_BearerPrefixStripped(t *testing.T) {
	r := NewResolver(testSecret, cache.NewMemoryStore(), zerolog.Nop())
	token, err := Sign(3, nil, nil, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, rec := authRequest(t, "Bearer "+token)

	if err := Middleware(r)(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	r := NewResolver(testSecret, cache.NewMemoryStore(), zerolog.Nop())
	token, err := Sign(3, nil, nil, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ := authRequest(t, token)

	err = Middleware(r)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "token has expired" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	r := NewResolver(testSecret, cache.NewMemoryStore(), zerolog.Nop())
	c, _ := authRequest(t, "garbage")

	err := Middleware(r)(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "invalid token" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestRequireOperation(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(req.WithContext(WithFirm(req.Context(), &Firm{ID: 1, Methods: []string{"risk_list"}})))

	if err := RequireOperation("risk_list")(okHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := RequireOperation("calculate_risk")(okHandler)(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Method not allowed!" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}
