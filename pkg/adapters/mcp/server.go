package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// StepsResponse is the output of the list_steps tool.
type StepsResponse struct {
	Mode  domain.Mode   `json:"mode" jsonschema_description:"The annotation mode the steps were built for"`
	Steps []domain.Step `json:"steps" jsonschema_description:"Ordered tooltip steps"`
}

// SeenResponse is the output of the seen tools.
type SeenResponse struct {
	Key  string `json:"key" jsonschema_description:"Storage key of the flag"`
	Seen bool   `json:"seen" jsonschema_description:"Whether the walkthrough is suppressed"`
}

// Server exposes the step catalog and seen flags as MCP tools.
type Server struct {
	catalog   *catalog.Catalog
	seen      ports.SeenStore
	seenKey   string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithSeenKey sets the base key of per-user flags.
func WithSeenKey(key string) Option {
	return func(s *Server) {
		if key != "" {
			s.seenKey = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(seen ports.SeenStore, opts ...Option) *Server {
	s := &Server{
		catalog:   catalog.Default(),
		seen:      seen,
		seenKey:   runtime.DefaultSeenKey,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("walkthrough-mcp", strings.TrimSpace(walkthrough.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	listTool := mcp.NewTool("list_steps",
		mcp.WithDescription("List the walkthrough steps shown for an annotation mode."),
		mcp.WithString("mode", mcp.Required(), mcp.Description("Annotation mode: labels, points or boundingBoxes")),
		mcp.WithOutputSchema[StepsResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleListSteps))

	seenTool := mcp.NewTool("get_seen",
		mcp.WithDescription("Report whether a user has already completed the walkthrough."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithOutputSchema[SeenResponse](),
	)
	s.mcpServer.AddTool(seenTool, mcp.NewStructuredToolHandler(s.handleGetSeen))

	resetTool := mcp.NewTool("reset_seen",
		mcp.WithDescription("Clear the seen flag so the walkthrough is shown to the user again."),
		mcp.WithString("user", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithOutputSchema[SeenResponse](),
	)
	s.mcpServer.AddTool(resetTool, mcp.NewStructuredToolHandler(s.handleResetSeen))
}

func (s *Server) handleListSteps(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepsResponse, error) {
	raw, _ := args["mode"].(string)
	mode, err := domain.ParseMode(raw)
	if err != nil {
		// Custom catalogs may define their own modes.
		mode = domain.Mode(raw)
	}
	steps, err := s.catalog.Build(mode)
	if err != nil {
		s.logger.Warn("MCP list_steps rejected", "mode", raw, "error", err)
		return StepsResponse{}, fmt.Errorf("list steps: %w", err)
	}
	return StepsResponse{Mode: mode, Steps: steps}, nil
}

func (s *Server) handleGetSeen(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SeenResponse, error) {
	key, err := s.userKey(args)
	if err != nil {
		return SeenResponse{}, err
	}
	seen, err := s.seen.Seen(ctx, key)
	if err != nil {
		return SeenResponse{}, fmt.Errorf("read seen flag: %w", err)
	}
	return SeenResponse{Key: key, Seen: seen}, nil
}

func (s *Server) handleResetSeen(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SeenResponse, error) {
	key, err := s.userKey(args)
	if err != nil {
		return SeenResponse{}, err
	}
	if err := s.seen.Forget(ctx, key); err != nil {
		return SeenResponse{}, fmt.Errorf("reset seen flag: %w", err)
	}
	s.logger.Info("MCP reset_seen", "key", key)
	return SeenResponse{Key: key, Seen: false}, nil
}

func (s *Server) userKey(args map[string]interface{}) (string, error) {
	user, _ := args["user"].(string)
	if user == "" {
		return "", fmt.Errorf("user is required")
	}
	return s.seenKey + ":" + user, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("walkthrough://modes", "Annotation modes with a walkthrough",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.catalog.Modes())
		if err != nil {
			return nil, fmt.Errorf("failed to encode modes: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "walkthrough://modes",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
