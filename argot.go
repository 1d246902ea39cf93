package argot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/argot/internal/runtime"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/registry"
	"github.com/aretw0/argot/pkg/schema"
)

// Version is the release of the library.
const Version = "0.3.0"

// Engine is the high-level entry point for the argot library.
// It owns a type registry and wraps the internal parse runtime.
type Engine struct {
	runtime  *runtime.Engine
	registry *registry.Registry
	types    []schema.Descriptor
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	strict   bool
	empty    bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTypes registers additional descriptors at construction time.
func WithTypes(types ...schema.Descriptor) Option {
	return func(e *Engine) {
		e.types = append(e.types, types...)
	}
}

// WithBuiltins registers every descriptor shipped with package schema
// (float, boolean, enum, duration) on top of string and number.
func WithBuiltins() Option {
	return WithTypes(schema.Builtins()...)
}

// WithoutDefaults starts from an empty registry instead of string and number.
func WithoutDefaults() Option {
	return func(e *Engine) {
		e.empty = true
	}
}

// WithStrict makes Parse reject tokens left over after the last slot.
func WithStrict(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// New initializes a new Engine with its own registry.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if eng.empty {
		eng.registry = registry.NewEmpty()
	} else {
		eng.registry = registry.New()
	}
	for _, d := range eng.types {
		if err := eng.Register(d); err != nil {
			return nil, fmt.Errorf("failed to register type: %w", err)
		}
	}

	eng.runtime = runtime.NewEngine(
		eng.registry,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithStrict(eng.strict),
	)

	return eng, nil
}

// Register adds or replaces a type descriptor.
func (e *Engine) Register(d schema.Descriptor) error {
	if err := e.registry.Register(d); err != nil {
		e.logger.Warn("type rejected", "type", d.Name, "err", err)
		return err
	}
	e.logger.Debug("type registered", "type", d.Name)
	return nil
}

// Find looks up a type descriptor by name.
func (e *Engine) Find(name string) (schema.Descriptor, bool) {
	return e.registry.Find(name)
}

// Remove deletes a type descriptor. Unknown names are ignored.
func (e *Engine) Remove(name string) {
	e.registry.Remove(name)
	e.logger.Debug("type removed", "type", name)
}

// Types returns every registered descriptor ordered by name.
func (e *Engine) Types() []schema.Descriptor {
	return e.registry.Descriptors()
}

// Validate checks a usage against the engine's registry without parsing anything.
func (e *Engine) Validate(usage schema.Usage) error {
	return e.runtime.Validate(usage)
}

// Parse converts tokens according to usage.
// It returns one value per resolved slot, or the first error found.
func (e *Engine) Parse(ctx context.Context, tokens []any, usage schema.Usage) ([]any, error) {
	return e.runtime.Parse(ctx, tokens, usage)
}

// ParseStrings is Parse for the common case of command-line tokens.
func (e *Engine) ParseStrings(ctx context.Context, tokens []string, usage schema.Usage) ([]any, error) {
	raw := make([]any, len(tokens))
	for i, t := range tokens {
		raw[i] = t
	}
	return e.Parse(ctx, raw, usage)
}

// ParseCommand parses tokens against a command's usage, naming the command in errors.
func (e *Engine) ParseCommand(ctx context.Context, cmd domain.Command, tokens []any) ([]any, error) {
	values, err := e.Parse(ctx, tokens, cmd.Usage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return values, nil
}
