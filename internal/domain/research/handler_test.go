package research

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/niimt/riskapi/internal/platform/auth"
)

func newTestHandler(repo Repository) (*Handler, *echo.Echo) {
	h := NewHandler(fixedNowService(repo), zerolog.Nop())
	return h, echo.New()
}

func firmRequest(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	firm := &auth.Firm{ID: 7, Methods: []string{"research_list", "risk_list"}}
	req = req.WithContext(auth.WithFirm(req.Context(), firm))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_ListResearch(t *testing.T) {
	chol := 7.0
	bp := 129
	smoking := 1
	repo := &mockRepo{researchRows: []ResearchRow{{
		Date:          "2025-01-10 12:00:00",
		Name:          "Ivanov Ivan",
		Birthday:      "1968-04-12",
		Gender:        "male",
		Cholesterol:   &chol,
		BloodPressure: &bp,
		Smoking:       &smoking,
	}}}
	h, e := newTestHandler(repo)

	c, rec := firmRequest(e, "/niimt/api/v1/research_list")
	if err := h.ListResearch(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"research":[`) {
		t.Errorf("missing research key: %s", body)
	}
	if !strings.Contains(body, `"cholesterol":7`) {
		t.Errorf("missing cholesterol: %s", body)
	}
	// Fields the risk type never persisted must not appear as nulls.
	if strings.Contains(body, "pulse") {
		t.Errorf("null measurement leaked into response: %s", body)
	}
}

func TestHandler_ListResearch_WindowPassedToRepo(t *testing.T) {
	repo := &mockRepo{}
	h, e := newTestHandler(repo)

	c, _ := firmRequest(e, "/niimt/api/v1/research_list?dateFrom=2025-01-01&dateTo=2025-01-31")
	if err := h.ListResearch(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFrom.Format("2006-01-02 15:04:05") != "2025-01-01 00:00:00" {
		t.Errorf("from = %v", repo.lastFrom)
	}
	if repo.lastTo.Format("2006-01-02 15:04:05") != "2025-01-31 23:59:59" {
		t.Errorf("to = %v", repo.lastTo)
	}
}

func TestHandler_ListResearch_BadDate(t *testing.T) {
	h, e := newTestHandler(&mockRepo{})

	c, _ := firmRequest(e, "/niimt/api/v1/research_list?dateFrom=31-01-2025")
	err := h.ListResearch(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if httpErr.Message != "The dateFrom must be in the format YYYY-MM-DD." {
		t.Errorf("unexpected message: %v", httpErr.Message)
	}
}

func TestHandler_ListRisks(t *testing.T) {
	repo := &mockRepo{riskRows: []RiskRow{{
		Name:     "Ivanov Ivan",
		Birthday: "1968-04-12",
		Type:     "score",
		Risk:     9.49,
		Date:     "2025-01-10 12:00:00",
	}}}
	h, e := newTestHandler(repo)

	c, rec := firmRequest(e, "/niimt/api/v1/risk_list")
	if err := h.ListRisks(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Risk []RiskRow `json:"risk"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Risk) != 1 || resp.Risk[0].Type != "score" || resp.Risk[0].Risk != 9.49 {
		t.Errorf("unexpected risk rows: %+v", resp.Risk)
	}
}

func TestHandler_ListRisks_RepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("database down")}
	h, e := newTestHandler(repo)

	c, _ := firmRequest(e, "/niimt/api/v1/risk_list")
	err := h.ListRisks(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e := newTestHandler(&mockRepo{})
	api := e.Group("/niimt/api/v1")

	h.RegisterRoutes(api)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Method+":"+r.Path] = true
	}
	for _, path := range []string{
		"GET:/niimt/api/v1/research_list",
		"GET:/niimt/api/v1/risk_list",
	} {
		if !routePaths[path] {
			t.Errorf("missing expected route: %s", path)
		}
	}
}
