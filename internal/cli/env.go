package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/aretw0/argot"
	"github.com/aretw0/argot/internal/logging"
	"github.com/aretw0/argot/pkg/adapters/file"
	"github.com/aretw0/argot/pkg/adapters/memory"
	"github.com/aretw0/argot/pkg/adapters/redis"
	"github.com/aretw0/argot/pkg/observability"
	"github.com/aretw0/argot/pkg/ports"
)

// Env is everything a subcommand needs, built once from Options.
type Env struct {
	Engine   *argot.Engine
	Store    ports.CommandStore
	Logger   *slog.Logger
	Registry *prometheus.Registry
}

// Setup builds the logger, metrics, engine and command store, and seeds the
// store from the catalog file.
func Setup(ctx context.Context, opts Options) (*Env, error) {
	// 1. Logger
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	// 2. Metrics
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	// 3. Engine
	engineOpts := []argot.Option{
		argot.WithLogger(logger),
		argot.WithStrict(opts.Strict),
		argot.WithLifecycleHooks(metrics.Hooks()),
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		engineOpts = append(engineOpts, argot.WithLifecycleHooks(observability.LogHooks(logger)))
	}
	if opts.Builtins {
		engineOpts = append(engineOpts, argot.WithBuiltins())
	}
	eng, err := argot.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	// 4. Store
	store, err := createStore(opts)
	if err != nil {
		return nil, err
	}

	catalog := opts.Catalog
	if catalog == "" {
		catalog = DefaultCatalog
	}
	cmds, err := file.LoadCatalog(catalog)
	if err != nil {
		closeStore(store)
		return nil, err
	}
	if err := file.Seed(ctx, store, cmds); err != nil {
		closeStore(store)
		return nil, err
	}
	logger.Debug("catalog loaded", "path", catalog, "commands", len(cmds))

	return &Env{
		Engine:   eng,
		Store:    store,
		Logger:   logger,
		Registry: reg,
	}, nil
}

// Close releases the store's connections, if it holds any.
func (e *Env) Close() error {
	return closeStore(e.Store)
}

func closeStore(store ports.CommandStore) error {
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func createStore(opts Options) (ports.CommandStore, error) {
	if opts.RedisAddr == "" {
		return memory.NewStore(), nil
	}
	var redisOpts []redis.Option
	if opts.RedisPrefix != "" {
		redisOpts = append(redisOpts, redis.WithPrefix(opts.RedisPrefix))
	}
	return redis.New(opts.RedisAddr, os.Getenv("ARGOT_REDIS_PASSWORD"), 0, redisOpts...), nil
}

// createLogger configures the application logger.
// An empty level silences logging entirely.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
