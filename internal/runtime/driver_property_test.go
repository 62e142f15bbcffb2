package runtime_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"pgregory.net/rapid"
)

func TestDriver_ClicksToFinish(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 24).Draw(t, "steps")
		present := rapid.SliceOfN(rapid.Bool(), n, n).Draw(t, "present")
		autostart := rapid.Bool().Draw(t, "autostart")

		steps := make([]domain.Step, n)
		surface := memory.NewSurface()
		resolvable := 0
		for i := range steps {
			target := domain.Target(fmt.Sprintf("el-%d", i%5))
			if i%7 == 3 {
				target = domain.DefaultDrawer
			}
			steps[i] = domain.Step{Target: target, Message: fmt.Sprintf("msg %d", i)}
		}
		for i, ok := range present {
			if ok {
				surface.Set(steps[i].Target, 1)
			}
		}
		for _, s := range steps {
			if surface.Count(s.Target) > 0 {
				resolvable++
			}
		}

		ctx := context.Background()
		blocker := memory.NewBlocker()
		seen := memory.NewSeenStore()
		clicks := memory.NewClickBus()
		d, err := runtime.NewDriver("labels", steps, surface, blocker, seen, clicks)
		if err != nil {
			t.Fatalf("NewDriver: %v", err)
		}
		if _, err := d.Start(ctx, autostart); err != nil {
			t.Fatalf("Start: %v", err)
		}

		want := resolvable + 1
		if autostart {
			want--
		}

		got := 0
		last := d.State().Index
		for !d.State().Finished() {
			if got > n+1 {
				t.Fatalf("tour did not finish after %d clicks", got)
			}
			clicks.Click(ctx)
			got++

			idx := d.State().Index
			if idx <= last {
				t.Fatalf("cursor went from %d to %d", last, idx)
			}
			last = idx
			if surface.MaxVisible() > 1 {
				t.Fatalf("%d tooltips visible at once", surface.MaxVisible())
			}
		}

		if got != want {
			t.Fatalf("finished after %d clicks, want %d (resolvable=%d autostart=%v)", got, want, resolvable, autostart)
		}
		if seen.Writes() != 1 {
			t.Fatalf("seen flag written %d times", seen.Writes())
		}
		if blocker.Releases() != 1 {
			t.Fatalf("ui released %d times", blocker.Releases())
		}
		if clicks.Subscribers() != 0 {
			t.Fatalf("listener still registered")
		}
	})
}
