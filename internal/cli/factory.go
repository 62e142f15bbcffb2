package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/internal/observability"
	"github.com/aretw0/walkthrough/pkg/adapters/file"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/adapters/redis"
	"github.com/aretw0/walkthrough/pkg/adapters/sqlite"
	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// OpenSeenStore builds the seen store selected by cfg.Backend. Redis must answer a ping
// and SQLite drops expired flags on open. The returned close function is always non-nil.
func OpenSeenStore(ctx context.Context, cfg config.SeenConfig) (ports.SeenStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewSeenStore(), noop, nil
	case config.BackendFile:
		return file.New(cfg.FilePath), noop, nil
	case config.BackendRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithPrefix(cfg.RedisPrefix))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("error connecting to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, store.Close, nil
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("error opening sqlite store: %w", err)
		}
		if _, err := store.Prune(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("error pruning sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown seen backend %q", cfg.Backend)
	}
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return c, nil
}

// createTour initializes a Tour with standard CLI conventions.
func createTour(cfg config.Config, cat *catalog.Catalog, surface ports.Surface, store ports.SeenStore, clicks ports.ClickSource, logger *slog.Logger, debug bool) (*walkthrough.Tour, error) {
	opts := []walkthrough.Option{
		walkthrough.WithCatalog(cat),
		walkthrough.WithSeenStore(store),
		walkthrough.WithClickSource(clicks),
		walkthrough.WithLogger(logger),
		walkthrough.WithSeenFlag(cfg.Seen.Key, cfg.Seen.TTL()),
		walkthrough.WithDurations(cfg.ScrollDuration, cfg.ExpandDuration, cfg.CollapseDuration),
	}
	if debug {
		opts = append(opts, walkthrough.WithLifecycleHooks(createDebugHooks(logger)))
	}

	tour, err := walkthrough.New(domain.Mode(cfg.Mode), surface, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing tour: %w", err)
	}
	return tour, nil
}

// createDebugHooks logs every lifecycle event.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return observability.LogHooks(logger)
}

// presentTargets lists every target of the catalog except the missing ones.
func presentTargets(cat *catalog.Catalog, missing []string) []domain.Target {
	skip := make(map[domain.Target]bool, len(missing))
	for _, m := range missing {
		skip[domain.Target(m)] = true
	}
	seen := make(map[domain.Target]bool)
	var out []domain.Target
	for _, e := range cat.Entries {
		if skip[e.Target] || seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		out = append(out, e.Target)
	}
	return out
}
