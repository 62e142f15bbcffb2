package ports

import (
	"context"
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Surface defines the UI primitives the driver needs from the host.
type Surface interface {
	// Count returns how many elements the target currently resolves to.
	// Steps whose target resolves to zero elements are skipped.
	Count(target domain.Target) int

	// ScrollTo starts a smooth scroll bringing the target into view.
	// It does not wait for the scroll to finish.
	ScrollTo(ctx context.Context, target domain.Target, d time.Duration) error

	// Expand slides the drawer into its open position.
	// It blocks until the animation has completed or ctx is done.
	Expand(ctx context.Context, target domain.Target, d time.Duration) error

	// Collapse slides the drawer back and re-arms its collapse-on-mouse-leave behaviour.
	Collapse(ctx context.Context, target domain.Target, d time.Duration) error

	// ShowTooltip attaches a tooltip to the target and shows it immediately.
	// The target's hover show/hide handling is suppressed until the tooltip is disposed.
	ShowTooltip(ctx context.Context, target domain.Target, message string) error

	// DisposeTooltip removes the tooltip attached to the target.
	DisposeTooltip(ctx context.Context, target domain.Target) error
}
