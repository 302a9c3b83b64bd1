package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/adapter"
	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/handler"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/server"
	"github.com/MKhiriev/go-attendance-sync/internal/service"
	"github.com/MKhiriev/go-attendance-sync/internal/store"
	"github.com/MKhiriev/go-attendance-sync/internal/workers"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	storages io.Closer
	workers  workers.Worker
	server   server.Server

	logger *logger.Logger
}

// NewApp builds every component of the agent from cfg. Storages opened
// before a later step fails are closed again.
func NewApp(cfg config.StructuredConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	app, err := newApp(storages, cfg, logger)
	if err != nil {
		_ = storages.Close()
		return nil, err
	}

	return app, nil
}

func newApp(storages *store.ClientStorages, cfg config.StructuredConfig, logger *logger.Logger) (*App, error) {
	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, logger)
	if err != nil {
		return nil, fmt.Errorf("create remote store adapter: %w", err)
	}
	link := adapter.NewCommandLink(cfg.Connectivity.ReconnectCommand, logger)
	conn := adapter.NewConnectivity(cfg.Connectivity, link, logger)

	services, err := service.NewServices(storages, remote, conn, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, logger)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	return &App{
		storages: storages,
		workers:  workers.NewWorkers(services, cfg.Workers, logger),
		server:   srv,
		logger:   logger,
	}, nil
}

// Run starts the workers and the HTTP server and blocks until ctx is done or
// the server fails. Components are then stopped in reverse order: the server
// first so no request reaches a stopped job, then the workers, then storages.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Run(ctx)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.server.RunServer()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info().Str("func", "App.Run").Msg("shutdown requested")
	case runErr = <-serverErr:
		a.logger.Err(runErr).Str("func", "App.Run").Msg("server stopped unexpectedly")
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	errs := []error{runErr, a.server.Shutdown(shutdownCtx)}
	cancel()
	a.workers.Stop()
	errs = append(errs, a.storages.Close())

	a.logger.Info().Str("func", "App.Run").Msg("agent stopped")
	return errors.Join(errs...)
}
