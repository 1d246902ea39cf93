package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	httpadapter "github.com/aretw0/argot/pkg/adapters/http"
	"github.com/aretw0/argot/pkg/adapters/mcp"
	"github.com/aretw0/argot/pkg/persistence/middleware"
)

// RunServe serves the HTTP API on addr until ctx is cancelled.
func RunServe(ctx context.Context, env *Env, addr string) error {
	// Commands added over HTTP must parse with this engine
	store := middleware.NewValidationMiddleware(env.Engine)(env.Store)
	handler := httpadapter.NewHandler(env.Engine, store,
		httpadapter.WithGatherer(env.Registry),
		httpadapter.WithLogger(env.Logger),
	)
	err := httpadapter.Serve(ctx, addr, handler, env.Logger)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// RunMCP serves the MCP tools over the given transport ("stdio" or "sse").
func RunMCP(ctx context.Context, env *Env, transport string, port int) error {
	srv := mcp.NewServer(env.Engine, middleware.NewReadOnlyMiddleware()(env.Store), mcp.WithLogger(env.Logger))

	switch transport {
	case "stdio":
		env.Logger.Info("Starting argot MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		env.Logger.Info("Starting argot MCP Server (SSE)", "port", port)
		err := srv.ServeSSE(ctx, port)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
	}
}
