package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Surface implements ports.Surface over an in-memory element set.
// Every primitive is recorded as a domain.Command, so the same type serves
// as a test double and as the command buffer of remote (browser) hosts.
type Surface struct {
	mu         sync.Mutex
	present    map[domain.Target]int
	commands   []domain.Command
	visible    map[domain.Target]string
	expanded   map[domain.Target]bool
	maxVisible int
	failures   map[domain.CommandOp]error
}

// NewSurface creates a surface where each given target resolves to one element.
func NewSurface(targets ...domain.Target) *Surface {
	s := &Surface{
		present:  make(map[domain.Target]int),
		visible:  make(map[domain.Target]string),
		expanded: make(map[domain.Target]bool),
		failures: make(map[domain.CommandOp]error),
	}
	for _, t := range targets {
		s.present[t]++
	}
	return s
}

// Set changes how many elements target resolves to.
func (s *Surface) Set(target domain.Target, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if count <= 0 {
		delete(s.present, target)
		return
	}
	s.present[target] = count
}

// Fail makes every subsequent op of the given kind return err. A nil err clears it.
func (s *Surface) Fail(op domain.CommandOp, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Count returns the element count of target.
func (s *Surface) Count(target domain.Target) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.present[target]
}

// ScrollTo records a scroll.
func (s *Surface) ScrollTo(ctx context.Context, target domain.Target, d time.Duration) error {
	return s.apply(ctx, domain.Command{Op: domain.OpScroll, Target: target, DurationMS: d.Milliseconds()}, nil)
}

// Expand records a drawer expansion. The recording completes immediately.
func (s *Surface) Expand(ctx context.Context, target domain.Target, d time.Duration) error {
	return s.apply(ctx, domain.Command{Op: domain.OpExpand, Target: target, DurationMS: d.Milliseconds()}, func() {
		s.expanded[target] = true
	})
}

// Collapse records a drawer collapse.
func (s *Surface) Collapse(ctx context.Context, target domain.Target, d time.Duration) error {
	return s.apply(ctx, domain.Command{Op: domain.OpCollapse, Target: target, DurationMS: d.Milliseconds()}, func() {
		delete(s.expanded, target)
	})
}

// ShowTooltip records a tooltip and marks it visible.
func (s *Surface) ShowTooltip(ctx context.Context, target domain.Target, message string) error {
	return s.apply(ctx, domain.Command{Op: domain.OpShowTooltip, Target: target, Message: message}, func() {
		s.visible[target] = message
		if len(s.visible) > s.maxVisible {
			s.maxVisible = len(s.visible)
		}
	})
}

// DisposeTooltip records a disposal and hides the tooltip.
func (s *Surface) DisposeTooltip(ctx context.Context, target domain.Target) error {
	return s.apply(ctx, domain.Command{Op: domain.OpDisposeTooltip, Target: target}, func() {
		delete(s.visible, target)
	})
}

func (s *Surface) apply(ctx context.Context, cmd domain.Command, effect func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[cmd.Op]; err != nil {
		return err
	}
	s.commands = append(s.commands, cmd)
	if effect != nil {
		effect()
	}
	return nil
}

// Commands returns a copy of every recorded command.
func (s *Surface) Commands() []domain.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Command(nil), s.commands...)
}

// Drain returns the recorded commands and clears the buffer.
func (s *Surface) Drain() []domain.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.commands
	s.commands = nil
	return out
}

// Visible returns the tooltips currently shown, keyed by target.
func (s *Surface) Visible() map[domain.Target]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.Target]string, len(s.visible))
	for k, v := range s.visible {
		out[k] = v
	}
	return out
}

// MaxVisible is the largest number of tooltips ever visible at once.
func (s *Surface) MaxVisible() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxVisible
}

// Expanded reports whether the drawer target is open.
func (s *Surface) Expanded(target domain.Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[target]
}
