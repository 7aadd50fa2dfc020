// README: Config loader with env defaults for HTTP, DB, Redis, model, and geo services.
package config

import (
	"os"
	"strconv"
)

type ModelConfig struct {
	// Base is the model backend root, e.g. http://localhost:11434 for a
	// local Ollama or any OpenAI-compatible gateway.
	Base   string
	Name   string
	APIKey string
	// GeminiKey switches the planner onto the Gemini client when set.
	GeminiKey string
	// TimeoutSeconds bounds one chat round trip.
	TimeoutSeconds int
}

type GeoConfig struct {
	NominatimURL string
	OverpassURL  string
	OpenMeteoURL string
	// GoogleMapsKey switches geocoding and POI lookup onto the Google
	// Maps client when set.
	GoogleMapsKey string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; without it the history endpoints are disabled.
		DSN string
	}
	Redis struct {
		// Addr is optional; without it sessions live in process memory.
		Addr string
	}
	Model   ModelConfig
	Geo     GeoConfig
	Persona string
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIPSMITH_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("TRIPSMITH_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIPSMITH_REDIS_ADDR")
	cfg.Model.Base = envOrDefault("TRIPSMITH_MODEL_BASE", "http://localhost:11434")
	cfg.Model.Name = envOrDefault("TRIPSMITH_MODEL", "mistral")
	cfg.Model.APIKey = os.Getenv("TRIPSMITH_MODEL_API_KEY")
	cfg.Model.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Model.TimeoutSeconds = envOrDefaultInt("TRIPSMITH_MODEL_TIMEOUT_SECONDS", 120)
	cfg.Geo.NominatimURL = envOrDefault("TRIPSMITH_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geo.OverpassURL = envOrDefault("TRIPSMITH_OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	cfg.Geo.OpenMeteoURL = envOrDefault("TRIPSMITH_OPENMETEO_URL", "https://api.open-meteo.com")
	cfg.Geo.GoogleMapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Persona = envOrDefault("TRIPSMITH_PERSONA", "precise")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
