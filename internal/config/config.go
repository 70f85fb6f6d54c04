package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/crop-dashboard/internal/advisor"
	"github.com/i474232898/crop-dashboard/internal/geo"
)

type AppConfig struct {
	Port string

	// Backend services.
	SoilServiceURL   string
	MarketServiceURL string

	// DefaultCoordinate seeds every new dashboard's input.
	DefaultCoordinate geo.Coordinate

	// Fetch behaviour. Zero values mean no timeout and a single attempt.
	HTTPTimeout      time.Duration
	FetchMaxRetries  int
	BreakerThreshold uint32

	// StaleGuard drops responses of superseded fetch cycles.
	StaleGuard bool

	AdvisorMode    advisor.Mode
	GeminiAPIKey   string
	GeminiEndpoint string

	GeocoderAPIKey string

	// Session retention.
	SessionMaxAge        time.Duration
	SessionMaxCount      int
	SessionSweepInterval time.Duration

	AllowedOrigins string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.SoilServiceURL = getenvDefault("SOIL_SERVICE_URL", "http://127.0.0.1:7000")
	cfg.MarketServiceURL = getenvDefault("MARKET_SERVICE_URL", "http://127.0.0.1:2000")

	coord, err := geo.ParseCoordinate(
		getenvDefault("DEFAULT_LAT", geo.QueryValue(geo.DefaultLat)),
		getenvDefault("DEFAULT_LON", geo.QueryValue(geo.DefaultLon)),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_LAT/DEFAULT_LON: %w", err)
	}
	cfg.DefaultCoordinate = coord

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}
	cfg.FetchMaxRetries = getenvInt("FETCH_MAX_RETRIES", 0)
	if cfg.FetchMaxRetries < 0 {
		return nil, fmt.Errorf("invalid FETCH_MAX_RETRIES: %d", cfg.FetchMaxRetries)
	}
	cfg.BreakerThreshold = uint32(max(getenvInt("BREAKER_THRESHOLD", 0), 0))
	cfg.StaleGuard = getenvBool("STALE_GUARD", false)

	mode := advisor.Mode(strings.ToLower(getenvDefault("ADVISOR_MODE", string(advisor.ModeAuto))))
	switch mode {
	case advisor.ModeAuto, advisor.ModeStatic, advisor.ModeGemini:
		cfg.AdvisorMode = mode
	default:
		return nil, fmt.Errorf("invalid ADVISOR_MODE: %q", mode)
	}
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiEndpoint = getenvDefault("GEMINI_ENDPOINT", advisor.DefaultGeminiEndpoint)

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "30m"); err != nil {
		return nil, err
	}
	cfg.SessionMaxCount = getenvInt("SESSION_MAX_COUNT", 1000)
	if cfg.SessionSweepInterval, err = getenvDuration("SESSION_SWEEP_INTERVAL", "1m"); err != nil {
		return nil, err
	}

	cfg.AllowedOrigins = getenvDefault("ALLOWED_ORIGINS", "*")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration", key)
	}
	return d, nil
}
