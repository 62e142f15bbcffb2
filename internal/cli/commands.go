package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/internal/presentation/tui"
	"github.com/aretw0/walkthrough/pkg/adapters/mcp"
	"github.com/aretw0/walkthrough/pkg/domain"
)

// ListSteps writes the steps of mode, as JSON or as a numbered list.
func ListSteps(w io.Writer, cfg config.Config, asJSON bool) error {
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	steps, err := cat.Build(domain.Mode(cfg.Mode))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}
	for i, s := range steps {
		fmt.Fprintf(w, "%2d  %-18s %s\n", i, tui.Muted(s.Target.Selector()), s.Message)
	}
	return nil
}

// ResetSeen clears the seen flag. A non-empty user scopes the key as "<key>:<user>".
func ResetSeen(ctx context.Context, w io.Writer, cfg config.Config, user string) error {
	store, closeStore, err := OpenSeenStore(ctx, cfg.Seen)
	if err != nil {
		return err
	}
	defer closeStore()

	key := cfg.Seen.Key
	if user != "" {
		key += ":" + user
	}
	if err := store.Forget(ctx, key); err != nil {
		return fmt.Errorf("error resetting seen flag: %w", err)
	}
	fmt.Fprintln(w, tui.Done(fmt.Sprintf("Cleared %q, the walkthrough will show again.", key)))
	return nil
}

// ServeMCP serves the MCP tools over stdio.
func ServeMCP(ctx context.Context, cfg config.Config, debug bool) error {
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	store, closeStore, err := OpenSeenStore(ctx, cfg.Seen)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := mcp.NewServer(store,
		mcp.WithCatalog(cat),
		mcp.WithSeenKey(cfg.Seen.Key),
		mcp.WithLogger(createLogger(debug)),
	)
	return srv.ServeStdio()
}
