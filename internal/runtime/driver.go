package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// Driver is the tour state machine: not_started -> showing(i) -> finished.
// Start and Advance are serialized, so a click arriving while the drawer
// animation is awaited is handled after the current step is fully shown.
type Driver struct {
	steps   []domain.Step
	surface ports.Surface
	blocker ports.UIBlocker
	seen    ports.SeenStore
	clicks  ports.ClickSource

	hooks  domain.LifecycleHooks
	logger *slog.Logger

	drawer           domain.Target
	seenKey          string
	seenTTL          time.Duration
	scrollDuration   time.Duration
	expandDuration   time.Duration
	collapseDuration time.Duration

	mu          sync.Mutex
	state       domain.State
	unsubscribe ports.UnsubscribeFunc
	visible     int // index whose tooltip is on display, -1 if none
	shown       int
	skipped     int
}

// NewDriver creates a driver for an already built step list.
func NewDriver(
	mode domain.Mode,
	steps []domain.Step,
	surface ports.Surface,
	blocker ports.UIBlocker,
	seen ports.SeenStore,
	clicks ports.ClickSource,
	opts ...DriverOption,
) (*Driver, error) {
	if len(steps) == 0 {
		return nil, domain.ErrEmptyTour
	}
	if surface == nil || blocker == nil || seen == nil || clicks == nil {
		return nil, fmt.Errorf("driver requires a surface, blocker, seen store and click source")
	}

	d := &Driver{
		steps:            append([]domain.Step(nil), steps...),
		surface:          surface,
		blocker:          blocker,
		seen:             seen,
		clicks:           clicks,
		logger:           logging.NewNop(),
		drawer:           domain.DefaultDrawer,
		seenKey:          DefaultSeenKey,
		seenTTL:          DefaultSeenTTL,
		scrollDuration:   DefaultScrollDuration,
		expandDuration:   DefaultExpandDuration,
		collapseDuration: DefaultCollapseDuration,
		state:            domain.NewState(mode, len(steps)),
		visible:          -1,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("mode", string(mode))
	return d, nil
}

// Start blocks the UI and subscribes to clicks. With autostart the first
// step is shown right away; otherwise the first click shows it.
// A driver can only be started once.
func (d *Driver) Start(ctx context.Context, autostart bool) (domain.State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.Status != domain.StatusNotStarted {
		return d.state, domain.ErrAlreadyStarted
	}

	d.setBlocked(ctx, true)
	d.state.Status = domain.StatusShowing
	d.unsubscribe = d.clicks.Subscribe(d.onClick)
	d.logger.Info("Tour started", "steps", len(d.steps), "autostart", autostart)

	if !autostart {
		return d.state, nil
	}
	return d.advance(ctx)
}

// Advance moves to the next step whose target exists, or finishes the tour.
// Once finished, Advance is a no-op.
func (d *Driver) Advance(ctx context.Context) (domain.State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.advance(ctx)
}

// State returns a snapshot of the cursor.
func (d *Driver) State() domain.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Steps returns a copy of the step list.
func (d *Driver) Steps() []domain.Step {
	return append([]domain.Step(nil), d.steps...)
}

// Current returns the step on display, if any.
func (d *Driver) Current() (domain.Step, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Showing() {
		return domain.Step{}, false
	}
	return d.steps[d.state.Index], true
}

func (d *Driver) onClick(ctx context.Context) {
	if _, err := d.Advance(ctx); err != nil {
		d.logger.Warn("Advance failed", "err", err)
	}
}

func (d *Driver) advance(ctx context.Context) (domain.State, error) {
	switch d.state.Status {
	case domain.StatusNotStarted:
		return d.state, domain.ErrNotStarted
	case domain.StatusFinished:
		return d.state, nil
	}
	if err := ctx.Err(); err != nil {
		return d.state, err
	}

	d.setBlocked(ctx, true)

	if d.state.Index >= 0 {
		d.leave(ctx, d.state.Index)
	}

	for {
		d.state.Index++
		if d.state.Index >= len(d.steps) {
			return d.finish(ctx), nil
		}
		step := d.steps[d.state.Index]
		if d.surface.Count(step.Target) > 0 {
			break
		}
		d.skipped++
		d.logger.Debug("Step skipped", "index", d.state.Index, "target", step.Target)
		if d.hooks.OnStepSkipped != nil {
			d.hooks.OnStepSkipped(ctx, d.stepEvent(domain.EventStepSkipped, d.state.Index))
		}
	}

	if err := d.enter(ctx, d.state.Index); err != nil {
		return d.state, err
	}
	return d.state, nil
}

// enter scrolls to the step and shows its tooltip. The drawer is expanded
// first and its tooltip only appears once the expansion has completed.
func (d *Driver) enter(ctx context.Context, i int) error {
	step := d.steps[i]

	if err := d.surface.ScrollTo(ctx, step.Target, d.scrollDuration); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		d.logger.Warn("Scroll failed", "target", step.Target, "err", err)
	}

	if step.Target == d.drawer {
		if err := d.surface.Expand(ctx, step.Target, d.expandDuration); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			d.logger.Warn("Drawer expand failed, tooltip not shown", "target", step.Target, "err", err)
			return nil
		}
	}

	if err := d.surface.ShowTooltip(ctx, step.Target, step.Message); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		d.logger.Warn("Tooltip failed", "target", step.Target, "err", err)
		return nil
	}

	d.visible = i
	d.shown++
	d.logger.Debug("Step shown", "index", i, "target", step.Target)
	if d.hooks.OnStepEnter != nil {
		d.hooks.OnStepEnter(ctx, d.stepEvent(domain.EventStepEnter, i))
	}
	return nil
}

// leave disposes the tooltip of step i and releases the drawer it held open.
// OnStepLeave only fires for a step whose OnStepEnter fired.
func (d *Driver) leave(ctx context.Context, i int) {
	step := d.steps[i]

	if err := d.surface.DisposeTooltip(ctx, step.Target); err != nil {
		d.logger.Warn("Tooltip dispose failed", "target", step.Target, "err", err)
	}
	if step.Target == d.drawer {
		if err := d.surface.Collapse(ctx, step.Target, d.collapseDuration); err != nil {
			d.logger.Warn("Drawer collapse failed", "target", step.Target, "err", err)
		}
	}

	if d.visible != i {
		return
	}
	d.visible = -1
	if d.hooks.OnStepLeave != nil {
		d.hooks.OnStepLeave(ctx, d.stepEvent(domain.EventStepLeave, i))
	}
}

func (d *Driver) finish(ctx context.Context) domain.State {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	d.setBlocked(ctx, false)

	if err := d.seen.MarkSeen(ctx, d.seenKey, d.seenTTL); err != nil {
		d.logger.Warn("Failed to persist seen flag", "key", d.seenKey, "err", err)
	}

	d.state.Index = len(d.steps)
	d.state.Status = domain.StatusFinished
	d.logger.Info("Tour finished", "shown", d.shown, "skipped", d.skipped)

	if d.hooks.OnFinish != nil {
		d.hooks.OnFinish(ctx, &domain.FinishEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFinish, Mode: d.state.Mode},
			Shown:     d.shown,
			Skipped:   d.skipped,
		})
	}
	return d.state
}

func (d *Driver) setBlocked(ctx context.Context, blocked bool) {
	if err := d.blocker.SetBlocked(ctx, blocked); err != nil {
		d.logger.Warn("Failed to toggle UI block", "blocked", blocked, "err", err)
	}
}

func (d *Driver) stepEvent(t domain.EventType, i int) *domain.StepEvent {
	return &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t, Mode: d.state.Mode},
		Index:     i,
		Target:    d.steps[i].Target,
		Message:   d.steps[i].Message,
	}
}
