package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Surface implements ports.Surface on a terminal: tooltips are drawn as
// bordered boxes and animations are simulated with timers.
type Surface struct {
	out     io.Writer
	render  func(string) (string, error)
	present map[domain.Target]bool
	animate bool

	mu sync.Mutex
}

// SurfaceOption configures the Surface.
type SurfaceOption func(*Surface)

// WithRenderer sets how tooltip text is rendered (default PlainRenderer).
func WithRenderer(render func(string) (string, error)) SurfaceOption {
	return func(s *Surface) { s.render = render }
}

// WithAnimations makes Expand wait for its duration, as the browser animation does.
func WithAnimations(enabled bool) SurfaceOption {
	return func(s *Surface) { s.animate = enabled }
}

// NewSurface creates a surface where only the given targets exist.
func NewSurface(out io.Writer, present []domain.Target, opts ...SurfaceOption) *Surface {
	s := &Surface{
		out:     out,
		render:  PlainRenderer,
		present: make(map[domain.Target]bool, len(present)),
	}
	for _, t := range present {
		s.present[t] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Count reports 1 for present targets and 0 otherwise.
func (s *Surface) Count(target domain.Target) int {
	if s.present[target] {
		return 1
	}
	return 0
}

// ScrollTo announces the scroll. Scrolling is not awaited.
func (s *Surface) ScrollTo(ctx context.Context, target domain.Target, d time.Duration) error {
	return s.printf(Muted(fmt.Sprintf("↓ %s", target.Selector())))
}

// Expand opens the drawer and returns once the animation has run.
func (s *Surface) Expand(ctx context.Context, target domain.Target, d time.Duration) error {
	if err := s.printf(Muted(fmt.Sprintf("▸ expanding %s", target.Selector()))); err != nil {
		return err
	}
	if !s.animate {
		return ctx.Err()
	}
	return wait(ctx, d)
}

// Collapse closes the drawer.
func (s *Surface) Collapse(ctx context.Context, target domain.Target, d time.Duration) error {
	return s.printf(Muted(fmt.Sprintf("◂ collapsing %s", target.Selector())))
}

// ShowTooltip draws the tooltip box.
func (s *Surface) ShowTooltip(ctx context.Context, target domain.Target, message string) error {
	body, err := s.render(message)
	if err != nil {
		return fmt.Errorf("render tooltip: %w", err)
	}
	box := tooltipStyle.Render(titleStyle.Render(target.Selector()) + "\n" + body)
	return s.printf(box)
}

// DisposeTooltip is a no-op on a terminal; the next box replaces it visually.
func (s *Surface) DisposeTooltip(ctx context.Context, target domain.Target) error {
	return nil
}

func (s *Surface) printf(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.out, line)
	return err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
