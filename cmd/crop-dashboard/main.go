package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/crop-dashboard/internal/advisor"
	httpapi "github.com/i474232898/crop-dashboard/internal/api/http"
	"github.com/i474232898/crop-dashboard/internal/config"
	"github.com/i474232898/crop-dashboard/internal/dashboard"
	"github.com/i474232898/crop-dashboard/internal/fetch"
	"github.com/i474232898/crop-dashboard/internal/geo"
	"github.com/i474232898/crop-dashboard/internal/market"
	"github.com/i474232898/crop-dashboard/internal/scheduler"
	"github.com/i474232898/crop-dashboard/internal/soil"
	"github.com/i474232898/crop-dashboard/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	backoff := fetch.BackoffConfig{
		MaxRetries:      cfg.FetchMaxRetries,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
	newClient := func(name, baseURL string) *fetch.Client {
		return fetch.New(fetch.Options{
			Name:             name,
			BaseURL:          baseURL,
			HTTPClient:       httpClient,
			Backoff:          backoff,
			BreakerThreshold: cfg.BreakerThreshold,
		})
	}

	soilSource := soil.NewHTTPSource(newClient("soil", cfg.SoilServiceURL))
	marketSource := market.NewHTTPSource(newClient("market", cfg.MarketServiceURL))

	// Gemini without a key reports a configuration error per request.
	gemini := advisor.NewGemini(newClient("gemini", cfg.GeminiEndpoint), cfg.GeminiAPIKey)
	adv := advisor.Select(cfg.AdvisorMode, gemini)

	// Reverse geocoding is optional; without a key dashboards show no place name.
	var namer geo.PlaceNamer = geo.NoPlaceNamer{}
	if cfg.GeocoderAPIKey != "" {
		namer = geo.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	}

	factory := dashboard.Factory{
		SoilSource:   soilSource,
		MarketSource: marketSource,
		Advisor:      adv,
		GraphBase:    soilSource.BaseURL(),
		Options: dashboard.Options{
			StaleGuard: cfg.StaleGuard,
			PlaceNamer: namer,
		},
	}

	// In-memory sessions with configured retention.
	sessions := store.NewSessionStore(cfg.SessionMaxCount, cfg.SessionMaxAge)

	// Scheduler that periodically drops idle sessions.
	sched := scheduler.New(sessions, cfg.SessionSweepInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "crop-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * time.Minute,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigins}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "crop-dashboard",
			"sessions": sessions.Len(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.NewHandler(sessions, factory, cfg.DefaultCoordinate))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s (soil=%s market=%s advisor=%s)",
		cfg.Port, cfg.SoilServiceURL, cfg.MarketServiceURL, cfg.AdvisorMode)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
