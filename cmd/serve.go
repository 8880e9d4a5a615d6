package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/http/api"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/http/swagger"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/repository"
	app "github.com/sankhaXjack/JOB-RECOMANDATION/internal/app"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/config"
	"github.com/sankhaXjack/JOB-RECOMANDATION/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP recommendation service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Root context with cancel on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitWith(cfg.LogFormat, cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	svc, store, err := newService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn(ctx, "closing catalog store", logger.Error(err))
		}
	}()
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		svc.Stop(stopCtx)
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// newService opens the configured store and assembles the service. The
// caller closes the returned store once the service has stopped.
func newService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, repository.Store, error) {
	var store repository.Store = repository.NewMemoryStore()
	if cfg.CatalogDB != "" {
		s, err := repository.OpenSQLite(ctx, cfg.CatalogDB,
			repository.WithLogger(log),
			repository.WithBusyTimeout(cfg.BusyTimeoutMs))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		store = s
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithPipelineConfig(cfg.Pipeline()),
		app.WithRecommendationLimit(cfg.RecommendationLimit),
		app.WithSeedFiles(cfg.JobsCSV, cfg.CandidatesCSV),
	)
	return svc, store, nil
}

func newMux(ctx context.Context, svc *app.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, log).Register(mux)
	return mux
}
