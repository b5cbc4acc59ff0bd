package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lier-bua/gear-catalog-api/internal/adapters/httpapi"
	"github.com/lier-bua/gear-catalog-api/internal/adapters/instrumented"
	memdocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/memory/docstore"
	postgres "github.com/lier-bua/gear-catalog-api/internal/adapters/postgres"
	pgdocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/postgres/docstore"
	sqlitedocstore "github.com/lier-bua/gear-catalog-api/internal/adapters/sqlite/docstore"
	"github.com/lier-bua/gear-catalog-api/internal/app/catalog"
	"github.com/lier-bua/gear-catalog-api/internal/app/intake"
	platformclock "github.com/lier-bua/gear-catalog-api/internal/platform/clock"
	"github.com/lier-bua/gear-catalog-api/internal/platform/config"
	"github.com/lier-bua/gear-catalog-api/internal/platform/logging"
	"github.com/lier-bua/gear-catalog-api/internal/platform/metrics"
	docstoreport "github.com/lier-bua/gear-catalog-api/internal/ports/out/docstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger, err := logging.New(logging.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("invalid logging config: %v", err)
	}
	os.Exit(exitCode(logger, run(cfg, logger)))
}

// exitCode flushes the logger before the process exits, since os.Exit skips defers.
func exitCode(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("api exited", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	logger.Info("storage ready", zap.String("backend", cfg.StorageBackend))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	store = instrumented.NewStore(store, m)

	clk := platformclock.NewSystemClock()
	api := httpapi.NewServer(
		catalog.NewService(store),
		intake.NewService(store, clk),
		store,
		httpapi.DiagnosticsInfo{
			StorageBackend: cfg.StorageBackend,
			DatabaseURLSet: cfg.DatabaseURL != "",
			DatabaseName:   cfg.DatabaseName,
		},
		logger,
	)
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{
		Logger:             logger,
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (docstoreport.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{MaxConns: cfg.PostgresMaxConns})
		if err != nil {
			return nil, nil, fmt.Errorf("invalid postgres config: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgdocstore.NewStore(pool), pool.Close, nil
	case config.BackendSQLite:
		s, err := sqlitedocstore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return memdocstore.NewStore(), func() {}, nil
	}
}
