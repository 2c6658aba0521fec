package app

import (
	"context"
	"errors"
	"net/http"

	"session-auth/internal/config"
)

type App struct {
	httpServer *http.Server
	infra      *Infra
}

// New connects the configured stores and builds the HTTP server. Store
// handles are created here and passed down; nothing is initialized at
// package level.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}

	router, err := setupHTTP(cfg, infra)
	if err != nil {
		_ = infra.Close(context.Background())
		return nil, err
	}

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	return &App{
		httpServer: server,
		infra:      infra,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *App) Run() error {
	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.infra.Close(ctx)
}
