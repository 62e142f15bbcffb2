package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
)

const (
	// DefaultSeenKey is the name of the persisted "already seen" flag.
	DefaultSeenKey = "skipTutorial"
	// DefaultSeenTTL keeps the flag for a year.
	DefaultSeenTTL = 365 * 24 * time.Hour

	DefaultScrollDuration   = 1000 * time.Millisecond
	DefaultExpandDuration   = 500 * time.Millisecond
	DefaultCollapseDuration = 400 * time.Millisecond
)

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) DriverOption {
	return func(d *Driver) {
		d.hooks = hooks
	}
}

// WithDrawer sets the collapsible element that is expanded before its tooltip.
func WithDrawer(target domain.Target) DriverOption {
	return func(d *Driver) {
		d.drawer = target
	}
}

// WithSeenFlag sets the key and expiry of the persisted flag.
func WithSeenFlag(key string, ttl time.Duration) DriverOption {
	return func(d *Driver) {
		if key != "" {
			d.seenKey = key
		}
		d.seenTTL = ttl
	}
}

// WithDurations overrides the animation durations. Zero values keep the defaults.
func WithDurations(scroll, expand, collapse time.Duration) DriverOption {
	return func(d *Driver) {
		if scroll > 0 {
			d.scrollDuration = scroll
		}
		if expand > 0 {
			d.expandDuration = expand
		}
		if collapse > 0 {
			d.collapseDuration = collapse
		}
	}
}
