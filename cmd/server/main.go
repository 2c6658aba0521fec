package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"session-auth/internal/app"
	"session-auth/internal/config"
	"session-auth/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Fatal("http server failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("session-auth started", map[string]any{
		"port":             cfg.AppPort,
		"credential_store": cfg.CredentialBackend,
		"session_store":    cfg.SessionBackend,
		"session_ttl":      cfg.SessionTTL.String(),
		"cookie_secure":    cfg.CookieSecure,
		"cookie_http_only": cfg.CookieHTTPOnly,
	})

	<-ctx.Done() // wait for Ctrl+C

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("session-auth stopped cleanly", nil)
}
