package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/firmanfarelrichardo/weather-dashboard/internal/api/http"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/app"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/config"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/logx"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/scheduler"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/store"
	"github.com/firmanfarelrichardo/weather-dashboard/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logs := logx.NewStdLogger()

	// Durable key-value store, degrading to memory-only state when the
	// database cannot be opened or fails the write/readback probe.
	var kv store.KV
	sqliteKV, err := store.OpenSQLiteKV(cfg.DBPath)
	if err != nil {
		logs.Warnf("storage unavailable (%v); history and preferences will not persist", err)
		kv = store.NewMemoryKV()
	} else {
		defer sqliteKV.Close()
		kv = sqliteKV
	}

	st := store.New(kv, cfg.HistoryMax, cfg.DefaultUnit, cfg.DefaultTheme, logs)
	if !st.IsAvailable() {
		logs.Warnf("storage probe failed; continuing with in-memory state")
		st = store.New(store.NewMemoryKV(), cfg.HistoryMax, cfg.DefaultUnit, cfg.DefaultTheme, logs)
	}

	// Shared HTTP client for outbound provider calls.
	client := weather.NewClient(weather.Config{
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		GeoBaseURL: cfg.GeoBaseURL,
		Logger:     logs,
	})
	if !client.IsConfigured() {
		logs.Warnf("OPENWEATHER_API_KEY is missing or a placeholder; searches will be rejected")
	}

	ctrl := app.New(app.Config{
		Service:  client,
		Store:    st,
		Logger:   logs,
		Zone:     time.Local,
		Language: cfg.Language,
	})

	// Optional auto-refresh of the last searched city.
	sched := scheduler.New(ctrl, cfg.RefreshInterval, logs)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	router := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	router.Use(logger.New())
	router.Use(recover.New())

	// Basic health endpoint
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    "weather-dashboard",
			"configured": client.IsConfigured(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(router, ctrl, client)

	// Start server with graceful shutdown
	go func() {
		if err := router.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := router.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
