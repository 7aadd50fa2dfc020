// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripsmith/internal/ai"
	"tripsmith/internal/config"
	httptransport "tripsmith/internal/http"
	"tripsmith/internal/http/handlers"
	"tripsmith/internal/infra"
	"tripsmith/internal/maps"
	"tripsmith/internal/modules/history"
	"tripsmith/internal/modules/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var chat ai.ChatClient
	var health handlers.Healthchecker
	if cfg.Model.GeminiKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.Model.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		chat = gemini
	} else {
		ollama := ai.NewOllamaClient(cfg.Model.Base, cfg.Model.Name, cfg.Model.APIKey,
			time.Duration(cfg.Model.TimeoutSeconds)*time.Second)
		chat = ollama
		health = ollama
	}

	var geocoder maps.Geocoder
	var pois maps.POIFinder
	if cfg.Geo.GoogleMapsKey != "" {
		google, err := maps.NewGoogleClient(cfg.Geo.GoogleMapsKey)
		if err != nil {
			log.Fatalf("google maps init: %v", err)
		}
		geocoder = google
		pois = google
	} else {
		geocoder = maps.NewNominatimGeocoder(cfg.Geo.NominatimURL)
		pois = maps.NewOverpassFinder(cfg.Geo.OverpassURL)
	}
	weather := maps.NewWeatherClient(cfg.Geo.OpenMeteoURL)

	plannerSvc := planner.NewService(chat, geocoder, weather, pois, cfg.Persona)

	var sessions planner.Store
	if cfg.Redis.Addr != "" {
		sessions = planner.NewRedisStore(infra.NewRedis(cfg.Redis.Addr))
	} else {
		log.Print("TRIPSMITH_REDIS_ADDR not set; sessions are in-memory only")
		sessions = planner.NewMemoryStore()
	}

	var historySvc *history.Service
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		historySvc = history.NewService(history.NewStore(dbPool))
	} else {
		log.Print("TRIPSMITH_DB_DSN not set; plan history disabled")
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Planner: plannerSvc,
		Store:   sessions,
		History: historySvc,
		Model:   health,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
