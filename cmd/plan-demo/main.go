// README: One-shot demo; generates a plan from the command line and prints Markdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"tripsmith/internal/ai"
	"tripsmith/internal/config"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/itinerary"
	"tripsmith/internal/modules/planner"
)

func main() {
	dest := flag.String("dest", "Lisbon", "destination city")
	start := flag.String("start", "", "start date (YYYY-MM-DD)")
	end := flag.String("end", "", "end date (YYYY-MM-DD)")
	budget := flag.String("budget", "", "budget, e.g. 600 GBP")
	vibe := flag.String("vibe", "", "comma-separated vibe tags")
	refine := flag.String("refine", "", "optional follow-up request after the first plan")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	var chat ai.ChatClient
	if cfg.Model.GeminiKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.Model.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		chat = gemini
	} else {
		chat = ai.NewOllamaClient(cfg.Model.Base, cfg.Model.Name, cfg.Model.APIKey,
			time.Duration(cfg.Model.TimeoutSeconds)*time.Second)
	}

	svc := planner.NewService(
		chat,
		maps.NewNominatimGeocoder(cfg.Geo.NominatimURL),
		maps.NewWeatherClient(cfg.Geo.OpenMeteoURL),
		maps.NewOverpassFinder(cfg.Geo.OverpassURL),
		cfg.Persona,
	)

	intent := planner.Intent{
		Dest:   *dest,
		Start:  *start,
		End:    *end,
		Budget: *budget,
	}
	if *vibe != "" {
		for _, v := range strings.Split(*vibe, ",") {
			intent.Vibe = append(intent.Vibe, strings.TrimSpace(v))
		}
	}

	st := svc.NewSession()
	if err := svc.Generate(ctx, st, intent); err != nil {
		log.Fatalf("generate: %v", err)
	}

	if *refine != "" {
		applied, err := svc.Refine(ctx, st, *refine)
		if err != nil {
			log.Printf("refine failed, keeping first plan: %v", err)
		} else if !applied {
			log.Print("refine request was not applied")
		}
	}

	fmt.Println(itinerary.Markdown(st.Plan))
}
