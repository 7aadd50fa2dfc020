// README: Handler tests for session and plan routes.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tripsmith/internal/ai"
	"tripsmith/internal/http/handlers"
	httpmiddleware "tripsmith/internal/http/middleware"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/planner"
)

const planJSON = `{
  "destination": {"city": "Lisbon", "country": "Portugal", "lat": 38.7223, "lon": -9.1393},
  "date_range": {"start": "2024-05-01", "end": "2024-05-01"},
  "daily_plan": [
    {"date": "2024-05-01", "theme": "Old town", "items": [
      {"time": "10:00", "name": "Castelo de S. Jorge", "type": "sight", "lat": 38.7139, "lon": -9.1335}
    ]}
  ],
  "summary": {"pace": "relaxed", "est_cost_gbp": 300, "warnings": []}
}`

// stubChat always answers with a fixed reply.
type stubChat struct {
	reply string
	err   error
}

func (s *stubChat) Chat(_ context.Context, _ []ai.Message, _ float64) (string, error) {
	return s.reply, s.err
}

// sequencedChat replays canned replies in order.
type sequencedChat struct {
	replies []string
	calls   int
}

func (s *sequencedChat) Chat(_ context.Context, _ []ai.Message, _ float64) (string, error) {
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

// stubGeocoder masks every lookup, matching the degraded-city path.
type stubGeocoder struct{}

func (stubGeocoder) FindCityCenter(_ context.Context, _ string) (*maps.CityInfo, error) {
	return nil, nil
}

type stubWeather struct{}

func (stubWeather) DailyForecast(_ context.Context, _, _ float64, _, _ string) (*maps.Forecast, error) {
	return &maps.Forecast{}, nil
}

type stubPOIs struct{}

func (stubPOIs) FindNearby(_ context.Context, _, _ float64, _, _ int) ([]maps.POI, error) {
	return nil, nil
}

func buildTestRouter(store planner.Store) *gin.Engine {
	return buildTestRouterWithChat(store, &stubChat{reply: planJSON})
}

func buildTestRouterWithChat(store planner.Store, chat ai.ChatClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := planner.NewService(chat, stubGeocoder{}, stubWeather{}, stubPOIs{}, planner.PersonaPrecise)

	r := gin.New()
	r.Use(httpmiddleware.Recovery())

	sessionHandler := handlers.NewSessionHandler(svc, store)
	r.POST("/api/sessions", sessionHandler.Create)
	r.GET("/api/sessions/:id", sessionHandler.Get)

	planHandler := handlers.NewPlanHandler(svc, store)
	r.POST("/api/sessions/:id/plan", planHandler.Generate)
	r.POST("/api/sessions/:id/refine", planHandler.Refine)
	r.GET("/api/sessions/:id/plan", planHandler.Get)

	exportHandler := handlers.NewExportHandler(store)
	r.GET("/api/sessions/:id/export/markdown", exportHandler.Markdown)
	r.GET("/api/sessions/:id/export/ics", exportHandler.ICS)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d", w.Code)
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("empty session_id")
	}
	return resp.SessionID
}

func TestCreateAndGetSession(t *testing.T) {
	r := buildTestRouter(planner.NewMemoryStore())
	id := createSession(t, r)

	w := doRequest(r, http.MethodGet, "/api/sessions/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"has_plan":false`) {
		t.Errorf("expected has_plan false, got %s", w.Body.String())
	}
}

func TestGenerate_ReturnsPlan(t *testing.T) {
	r := buildTestRouter(planner.NewMemoryStore())
	id := createSession(t, r)

	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/plan", map[string]any{
		"dest":  "Lisbon",
		"start": "2024-05-01",
		"end":   "2024-05-01",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Castelo de S. Jorge") {
		t.Errorf("plan missing item: %s", w.Body.String())
	}

	// Plan should now be readable and exportable.
	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get plan: expected 200, got %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/export/markdown", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export markdown: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "# Lisbon") {
		t.Errorf("markdown missing heading: %s", w.Body.String())
	}
	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/export/ics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export ics: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Errorf("ics missing calendar envelope: %s", w.Body.String())
	}
}

func TestGenerate_UnknownSession(t *testing.T) {
	r := buildTestRouter(planner.NewMemoryStore())
	w := doRequest(r, http.MethodPost, "/api/sessions/nope/plan", map[string]any{"dest": "Lisbon"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRefine_MissingRequest(t *testing.T) {
	r := buildTestRouter(planner.NewMemoryStore())
	id := createSession(t, r)
	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/refine", map[string]any{"request": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRefine_WithoutPlanIsNoop(t *testing.T) {
	r := buildTestRouter(planner.NewMemoryStore())
	id := createSession(t, r)
	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/refine", map[string]any{"request": "cheaper please"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"applied":false`) {
		t.Errorf("expected applied false, got %s", w.Body.String())
	}
}

func TestRefine_FailureAnswers502AndKeepsPlan(t *testing.T) {
	r := buildTestRouterWithChat(planner.NewMemoryStore(), &sequencedChat{
		replies: []string{planJSON, "sorry, no JSON today"},
	})
	id := createSession(t, r)

	w := doRequest(r, http.MethodPost, "/api/sessions/"+id+"/plan", map[string]any{"dest": "Lisbon"})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: expected 200, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/sessions/"+id+"/refine", map[string]any{"request": "add hiking"})
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on failed refinement, got %d: %s", w.Code, w.Body.String())
	}

	// Previous plan must survive the failed refinement.
	w = doRequest(r, http.MethodGet, "/api/sessions/"+id+"/plan", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get plan after failed refine: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Castelo de S. Jorge") {
		t.Errorf("original plan lost after failed refinement: %s", w.Body.String())
	}
}

func TestGetPlan_BeforeGenerate(t *testing.T) {
	r := buildTestRouter(planner.NewMemoryStore())
	id := createSession(t, r)
	w := doRequest(r, http.MethodGet, "/api/sessions/"+id+"/plan", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
