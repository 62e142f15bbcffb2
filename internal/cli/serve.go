package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/internal/observability"
	httpAdapter "github.com/aretw0/walkthrough/pkg/adapters/http"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the Serve command.
type ServeOptions struct {
	Config config.Config
	Debug  bool
}

// NewHandler wires the HTTP API with its seen store and a metrics registry.
func NewHandler(ctx context.Context, opts ServeOptions) (http.Handler, func() error, error) {
	cfg := opts.Config
	logger := createServerLogger(opts.Debug, cfg.LogFormat)

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	store, closeStore, err := OpenSeenStore(ctx, cfg.Seen)
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics()
	if err := metrics.Register(reg); err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("error registering metrics: %w", err)
	}

	hooks := metrics.Hooks()
	if opts.Debug {
		hooks = observability.Combine(hooks, createDebugHooks(logger))
	}

	srv := httpAdapter.NewServer(store,
		httpAdapter.WithCatalog(cat),
		httpAdapter.WithSeenFlag(cfg.Seen.Key, cfg.Seen.TTL()),
		httpAdapter.WithLifecycleHooks(hooks),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(reg),
		httpAdapter.WithTourTTL(cfg.TourTTL),
		httpAdapter.WithMaxTours(cfg.MaxTours),
	)
	handler, err := srv.Handler()
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return handler, closeStore, nil
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	handler, closeStore, err := NewHandler(ctx, opts)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              opts.Config.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Printf("Starting walkthrough server on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		fmt.Println("Walkthrough server stopped gracefully")
		return nil
	})
	return g.Wait()
}
