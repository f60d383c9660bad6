package patient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/platform/auth"
)

type listRepo struct {
	mockRepo
	summaries []Summary
	err       error
}

func (r *listRepo) List(ctx context.Context, firmID int) ([]Summary, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.summaries, nil
}

func firmContext(e *echo.Echo, firm *auth.Firm) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/niimt/api/v1/patients_list", nil)
	req = req.WithContext(auth.WithFirm(req.Context(), firm))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_ListPatients(t *testing.T) {
	repo := &listRepo{summaries: []Summary{
		{Name: "Ivanov Ivan", Snils: "123-456-789 00"},
		{Name: "Petrova Anna", Snils: "987-654-321 00"},
	}}
	h := NewHandler(NewService(repo), zerolog.Nop())
	e := echo.New()

	c, rec := firmContext(e, &auth.Firm{ID: 7, Methods: []string{"patients_list"}})
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Patients []Summary `json:"patients"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(resp.Patients))
	}
	if resp.Patients[0].Name != "Ivanov Ivan" {
		t.Errorf("unexpected first patient: %+v", resp.Patients[0])
	}
}

func TestHandler_ListPatients_Empty(t *testing.T) {
	repo := &listRepo{summaries: []Summary{}}
	h := NewHandler(NewService(repo), zerolog.Nop())
	e := echo.New()

	c, rec := firmContext(e, &auth.Firm{ID: 7})
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if string(resp["patients"]) != "[]" {
		t.Errorf("expected empty array, got %s", resp["patients"])
	}
}

func TestHandler_ListPatients_RepoError(t *testing.T) {
	repo := &listRepo{err: errors.New("database down")}
	h := NewHandler(NewService(repo), zerolog.Nop())
	e := echo.New()

	c, _ := firmContext(e, &auth.Firm{ID: 7})
	err := h.ListPatients(c)
	if err == nil {
		t.Fatal("expected error")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
	if httpErr.Message != "internal server error" {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h := NewHandler(NewService(&listRepo{}), zerolog.Nop())
	e := echo.New()
	api := e.Group("/niimt/api/v1")

	h.RegisterRoutes(api)

	found := false
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet && r.Path == "/niimt/api/v1/patients_list" {
			found = true
		}
	}
	if !found {
		t.Error("missing route GET /niimt/api/v1/patients_list")
	}
}
