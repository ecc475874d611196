package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-advisory-assistant/config"
	_ "loan-advisory-assistant/docs" // Swagger docs
	"loan-advisory-assistant/internal/classifier"
	"loan-advisory-assistant/internal/fallback"
	"loan-advisory-assistant/internal/history"
	"loan-advisory-assistant/internal/httpserver"
	intentUC "loan-advisory-assistant/internal/intent/usecase"
	"loan-advisory-assistant/internal/middleware"
	"loan-advisory-assistant/internal/routing"
	"loan-advisory-assistant/internal/session"
	"loan-advisory-assistant/pkg/log"
)

// @title       Loan Advisory Assistant API
// @description Intent classification and routing for a multi-intent loan advisory assistant.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Loan Advisory Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Intent domain
	cls, err := classifier.New(logger, classifier.Config{
		MinConfidence:        cfg.Classifier.MinConfidence,
		MultiIntentThreshold: cfg.Classifier.MultiIntentThreshold,
		ClarificationMargin:  cfg.Classifier.ClarificationMargin,
		DefaultLanguage:      cfg.Classifier.DefaultLanguage,
		Timezone:             cfg.Classifier.Timezone,
		CacheSize:            cfg.Classifier.CacheSize,
		CacheTTLSeconds:      cfg.Classifier.CacheTTLSeconds,
	}, classifier.DefaultPatterns())
	if err != nil {
		logger.Error(ctx, "Failed to build classifier: ", err)
		return
	}

	sessions := session.New(logger, time.Duration(cfg.Session.TimeoutMinutes)*time.Minute)
	go runSessionCleanup(ctx, logger, sessions, time.Duration(cfg.Session.CleanupIntervalMinutes)*time.Minute)

	fb := fallback.New(logger, fallback.Config{
		DefaultStrategy:   fallback.Strategy(cfg.Fallback.DefaultStrategy),
		HistoryEnabled:    cfg.Fallback.HistoryEnabled,
		EscalationEnabled: cfg.Fallback.EscalationEnabled,
	})

	registry := routing.NewRegistry(logger)
	router := routing.NewRouter(logger, registry, fb, sessions,
		time.Duration(cfg.Router.HandlerTimeoutSeconds)*time.Second)

	tracker := history.New(logger, cfg.History.Capacity)

	uc := intentUC.New(logger, cls, sessions, registry, router, tracker)

	if err := registerDefaultRoutes(ctx, uc); err != nil {
		logger.Error(ctx, "Failed to register default routes: ", err)
		return
	}

	// 4. HTTP Server
	mw := middleware.New(logger, cfg.Auth.APIKey, cfg)

	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		IntentUC:    uc,
		Middleware:  mw,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// runSessionCleanup sweeps expired sessions on a fixed interval. Lazy
// expiration already guards reads; the sweep just bounds memory.
func runSessionCleanup(ctx context.Context, logger log.Logger, sessions session.Manager, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.CleanupExpired(ctx); n > 0 {
				logger.Infof(ctx, "Session cleanup removed %d expired sessions", n)
			}
		}
	}
}
