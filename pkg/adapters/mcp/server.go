// Package mcp exposes the parse engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/argot"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/ports"
	"github.com/aretw0/argot/pkg/schema"
)

// ParseResponse is the structured result of the parse_arguments tool.
type ParseResponse struct {
	Command string `json:"command,omitempty" jsonschema_description:"The command whose usage was applied"`
	Values  []any  `json:"values" jsonschema_description:"One coerced value per resolved slot"`
}

// TypeInfo describes one registered type.
type TypeInfo struct {
	Name string `json:"name"`
	Info string `json:"info,omitempty"`
}

// Server wraps the parser and exposes it as an MCP Server.
type Server struct {
	parser    ports.Parser
	store     ports.CommandStore
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance. store may be nil.
func NewServer(parser ports.Parser, store ports.CommandStore, opts ...Option) *Server {
	s := &Server{
		parser:    parser,
		store:     store,
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("argot-mcp", argot.Version),
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

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: parse_arguments
	parseTool := mcp.NewTool("parse_arguments",
		mcp.WithDescription("Parse positional tokens against a catalog command or an inline usage."),
		mcp.WithString("tokens", mcp.Required(), mcp.Description("JSON array of raw tokens, e.g. [\"3\", \"north\"]")),
		mcp.WithString("command", mcp.Description("Catalog command whose usage applies")),
		mcp.WithString("usage", mcp.Description("JSON array of slots, used when no command is given")),
		mcp.WithOutputSchema[ParseResponse](),
	)
	s.mcpServer.AddTool(parseTool, mcp.NewStructuredToolHandler(s.handleParse))

	// TOOL: list_types
	s.mcpServer.AddTool(mcp.NewTool("list_types",
		mcp.WithDescription("List the argument types the engine understands."),
	), s.handleListTypes)
}

func (s *Server) handleParse(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ParseResponse, error) {
	tokens, err := decodeList(args["tokens"])
	if err != nil {
		return ParseResponse{}, fmt.Errorf("invalid tokens: %w", err)
	}

	command, _ := args["command"].(string)
	var usage schema.Usage
	switch {
	case command != "":
		if s.store == nil {
			return ParseResponse{}, errors.New("no command catalog configured")
		}
		cmd, err := s.store.Load(ctx, command)
		if err != nil {
			return ParseResponse{}, fmt.Errorf("%s: %w", command, err)
		}
		usage = cmd.Usage
	case args["usage"] != nil:
		raw, err := decodeList(args["usage"])
		if err != nil {
			return ParseResponse{}, fmt.Errorf("invalid usage: %w", err)
		}
		usage, err = schema.DecodeUsage(raw)
		if err != nil {
			return ParseResponse{}, fmt.Errorf("%s: %w", schema.Kind(err), err)
		}
	default:
		return ParseResponse{}, errors.New("command or usage is required")
	}

	values, err := s.parser.Parse(ctx, tokens, usage)
	if err != nil {
		s.logger.Debug("MCP Parse: rejected", "command", command, "kind", schema.Kind(err), "err", err)
		return ParseResponse{}, fmt.Errorf("%s: %w", schema.Kind(err), err)
	}

	return ParseResponse{Command: command, Values: values}, nil
}

func (s *Server) handleListTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.types())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list types failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) types() []TypeInfo {
	descriptors := s.parser.Types()
	out := make([]TypeInfo, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, TypeInfo{Name: d.Name, Info: d.Info})
	}
	return out
}

func (s *Server) registerResources() {
	// EXPOSE: argot://commands
	s.mcpServer.AddResource(mcp.NewResource("argot://commands", "Command Catalog",
		mcp.WithMIMEType("application/json"),
	), s.handleCommandsResource)
}

func (s *Server) handleCommandsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cmds, err := s.commands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}
	jsonBytes, err := json.Marshal(cmds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode commands: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "argot://commands",
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) commands(ctx context.Context) ([]domain.Command, error) {
	if s.store == nil {
		return []domain.Command{}, nil
	}
	names, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Command, 0, len(names))
	for _, name := range names {
		cmd, err := s.store.Load(ctx, name)
		if errors.Is(err, domain.ErrCommandNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, cmd)
	}
	return out, nil
}

// decodeList accepts either a JSON-encoded array or an already decoded one.
func decodeList(v any) ([]any, error) {
	switch val := v.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return val, nil
	case string:
		var out []any
		if err := json.Unmarshal([]byte(val), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a JSON array, got %T", v)
	}
}
