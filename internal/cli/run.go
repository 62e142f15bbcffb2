package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/internal/presentation/tui"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"golang.org/x/term"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Config  config.Config
	Force   bool     // Show the tour even if it was already seen
	Missing []string // Targets to treat as absent from the page
	Debug   bool

	In  io.Reader
	Out io.Writer
}

// RunTour plays the walkthrough in the terminal. Every line read from In counts as a click.
func RunTour(ctx context.Context, opts RunOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger := createLogger(opts.Debug)
	cfg := opts.Config

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	store, closeStore, err := OpenSeenStore(ctx, cfg.Seen)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed to close seen store", "error", err)
		}
	}()

	interactive := isTerminal(opts.Out)
	surfaceOpts := []tui.SurfaceOption{tui.WithAnimations(interactive)}
	if interactive {
		surfaceOpts = append(surfaceOpts, tui.WithRenderer(tui.NewRenderer()))
	}
	surface := tui.NewSurface(opts.Out, presentTargets(cat, opts.Missing), surfaceOpts...)
	clicks := memory.NewClickBus()

	tour, err := createTour(cfg, cat, surface, store, clicks, logger, opts.Debug)
	if err != nil {
		return err
	}

	if !opts.Force {
		seen, err := tour.Seen(ctx)
		if err != nil {
			return err
		}
		if seen {
			printSystemMessage(opts.Out, "Walkthrough already seen. Use --force or 'reset' to show it again.")
			return nil
		}
	}

	if interactive {
		tui.PrintBanner(opts.Out, cfg.Mode)
	}
	if _, err := tour.Start(ctx, cfg.Autostart); err != nil {
		return fmt.Errorf("error starting tour: %w", err)
	}
	if !cfg.Autostart {
		fmt.Fprintln(opts.Out, tui.Info("Press Enter to begin."))
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := readLines(ctx, opts.In)
	for !tour.State().Finished() {
		select {
		case <-ctx.Done():
			if sig := signalOf(parent); sig != nil {
				printSystemMessage(opts.Out, "Interrupted (%v) %s.", sig, progress(tour.State()))
				return nil
			}
			return ctx.Err()
		case _, ok := <-lines:
			if !ok {
				printSystemMessage(opts.Out, "Input closed before the walkthrough finished.")
				return nil
			}
			clicks.Click(ctx)
		}
	}

	fmt.Fprintln(opts.Out, tui.Done("Walkthrough complete."))
	return nil
}

// progress describes how far the tour got.
func progress(state domain.State) string {
	if state.Index < 0 {
		return "before the first step"
	}
	return fmt.Sprintf("at step %d of %d", state.Index+1, state.Total)
}

// readLines streams lines from r until EOF or ctx is done.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
