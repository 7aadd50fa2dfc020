// README: Live end-to-end test against a running model backend.
package integration

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"tripsmith/internal/ai"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/planner"
)

// TestGenerateAgainstLiveModel runs the full grounding + generation pipeline
// against a real model backend. It needs TRIPSMITH_MODEL_BASE (and network
// access to the public geo services), so it is skipped by default.
func TestGenerateAgainstLiveModel(t *testing.T) {
	base := strings.TrimSpace(os.Getenv("TRIPSMITH_MODEL_BASE"))
	if base == "" {
		t.Skip("TRIPSMITH_MODEL_BASE not set; skipping live model test")
	}
	model := os.Getenv("TRIPSMITH_MODEL")
	if model == "" {
		model = "mistral"
	}

	chat := ai.NewOllamaClient(base, model, os.Getenv("TRIPSMITH_MODEL_API_KEY"), 120*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	health := chat.Healthcheck(ctx)
	if !health.OpenAICompat && !health.OllamaNative {
		t.Fatalf("model backend at %s is not reachable: %+v", base, health)
	}

	svc := planner.NewService(
		chat,
		maps.NewNominatimGeocoder("https://nominatim.openstreetmap.org"),
		maps.NewWeatherClient("https://api.open-meteo.com"),
		maps.NewOverpassFinder("https://overpass-api.de/api/interpreter"),
		planner.PersonaPrecise,
	)

	st := svc.NewSession()
	err := svc.Generate(ctx, st, planner.Intent{
		Dest:   "Lisbon",
		Start:  time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		End:    time.Now().AddDate(0, 1, 2).Format("2006-01-02"),
		Budget: "600 GBP",
		Vibe:   []string{"food", "history"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Even a degraded run commits a structurally valid plan.
	if st.Plan == nil {
		t.Fatal("no plan committed")
	}
	if len(st.Plan.DailyPlan) == 0 {
		t.Error("plan has no days")
	}
	for _, day := range st.Plan.DailyPlan {
		if day.Date == "" {
			t.Error("day missing date")
		}
		for _, item := range day.Items {
			if item.Name == "" {
				t.Error("item missing name")
			}
		}
	}
	t.Logf("generated %d-day plan for %v", len(st.Plan.DailyPlan), st.Plan.Destination)

	applied, err := svc.Refine(ctx, st, "Make day one cheaper and add one food stop.")
	if err != nil {
		t.Fatalf("refine: %v", err)
	}
	t.Logf("refine applied=%v", applied)
}
