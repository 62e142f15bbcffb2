package walkthrough

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// Tour is the high-level entry point of the library.
// It wraps the internal driver and wires default adapters for any port not provided.
type Tour struct {
	driver *runtime.Driver
	mode   domain.Mode

	catalog *catalog.Catalog
	blocker ports.UIBlocker
	seen    ports.SeenStore
	clicks  ports.ClickSource
	hooks   domain.LifecycleHooks
	logger  *slog.Logger

	seenKey  string
	seenTTL  time.Duration
	drawer   domain.Target
	scroll   time.Duration
	expand   time.Duration
	collapse time.Duration
}

// Option defines a functional option for configuring the Tour.
type Option func(*Tour)

// WithCatalog replaces the built-in step catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(t *Tour) {
		t.catalog = c
	}
}

// WithBlocker injects the host's UI blocking capability.
func WithBlocker(b ports.UIBlocker) Option {
	return func(t *Tour) {
		t.blocker = b
	}
}

// WithSeenStore injects the persistence of the "seen" flag.
func WithSeenStore(s ports.SeenStore) Option {
	return func(t *Tour) {
		t.seen = s
	}
}

// WithClickSource injects the source of document clicks.
func WithClickSource(c ports.ClickSource) Option {
	return func(t *Tour) {
		t.clicks = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Tour) {
		t.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tour) {
		t.logger = logger
	}
}

// WithSeenFlag sets the key and expiry of the seen flag (default "skipTutorial", 365 days).
func WithSeenFlag(key string, ttl time.Duration) Option {
	return func(t *Tour) {
		t.seenKey = key
		t.seenTTL = ttl
	}
}

// WithDrawer sets the collapsible element expanded before its tooltip.
func WithDrawer(target domain.Target) Option {
	return func(t *Tour) {
		t.drawer = target
	}
}

// WithDurations overrides the scroll, expand and collapse animation durations.
func WithDurations(scroll, expand, collapse time.Duration) Option {
	return func(t *Tour) {
		t.scroll = scroll
		t.expand = expand
		t.collapse = collapse
	}
}

// New builds the step list for mode and prepares a tour over surface.
// Unknown modes fail with domain.ErrUnknownMode.
func New(mode domain.Mode, surface ports.Surface, opts ...Option) (*Tour, error) {
	t := &Tour{
		mode:    mode,
		seenKey: runtime.DefaultSeenKey,
		seenTTL: runtime.DefaultSeenTTL,
		drawer:  domain.DefaultDrawer,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.catalog == nil {
		t.catalog = catalog.Default()
	}
	if t.blocker == nil {
		t.blocker = memory.NewBlocker()
	}
	if t.seen == nil {
		t.seen = memory.NewSeenStore()
	}
	if t.clicks == nil {
		t.clicks = memory.NewClickBus()
	}
	if t.logger == nil {
		t.logger = logging.NewNop()
	}
	if t.seenKey == "" {
		t.seenKey = runtime.DefaultSeenKey
	}

	steps, err := t.catalog.Build(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to build steps: %w", err)
	}

	t.driver, err = runtime.NewDriver(mode, steps, surface, t.blocker, t.seen, t.clicks,
		runtime.WithLogger(t.logger),
		runtime.WithLifecycleHooks(t.hooks),
		runtime.WithDrawer(t.drawer),
		runtime.WithSeenFlag(t.seenKey, t.seenTTL),
		runtime.WithDurations(t.scroll, t.expand, t.collapse),
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Start begins the tour. Without autostart the first click shows the first step.
func (t *Tour) Start(ctx context.Context, autostart bool) (domain.State, error) {
	return t.driver.Start(ctx, autostart)
}

// AutoStart starts the tour with autostart unless the seen flag is set.
// It reports whether the tour was started.
func (t *Tour) AutoStart(ctx context.Context) (bool, error) {
	seen, err := t.Seen(ctx)
	if err != nil {
		return false, err
	}
	if seen {
		t.logger.Debug("Tour already seen, not starting", "key", t.seenKey)
		return false, nil
	}
	if _, err := t.driver.Start(ctx, true); err != nil {
		return false, err
	}
	return true, nil
}

// Advance moves the tour forward, exactly as a click would.
func (t *Tour) Advance(ctx context.Context) (domain.State, error) {
	return t.driver.Advance(ctx)
}

// State returns the current snapshot.
func (t *Tour) State() domain.State {
	return t.driver.State()
}

// Current returns the step on display, if any.
func (t *Tour) Current() (domain.Step, bool) {
	return t.driver.Current()
}

// Steps returns the step list of the tour.
func (t *Tour) Steps() []domain.Step {
	return t.driver.Steps()
}

// Mode returns the annotation mode the tour was built for.
func (t *Tour) Mode() domain.Mode {
	return t.mode
}

// Clicks returns the click source the tour listens to.
func (t *Tour) Clicks() ports.ClickSource {
	return t.clicks
}

// Seen reports whether the seen flag is set.
func (t *Tour) Seen(ctx context.Context) (bool, error) {
	seen, err := t.seen.Seen(ctx, t.seenKey)
	if err != nil {
		return false, fmt.Errorf("failed to read seen flag: %w", err)
	}
	return seen, nil
}

// Reset clears the seen flag so the next AutoStart shows the tour again.
func (t *Tour) Reset(ctx context.Context) error {
	if err := t.seen.Forget(ctx, t.seenKey); err != nil {
		return fmt.Errorf("failed to reset seen flag: %w", err)
	}
	return nil
}
