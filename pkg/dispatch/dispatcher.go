// Package dispatch routes a command line to a handler after parsing its
// arguments against the command's stored usage.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/ports"
)

var (
	// ErrNoHandler is returned when a known command has no registered handler.
	ErrNoHandler = errors.New("no handler registered for command")
	// ErrEmptyLine is returned when Dispatch receives no tokens at all.
	ErrEmptyLine = errors.New("empty command line")
)

// HandlerFunc receives the coerced values of a command's arguments.
type HandlerFunc func(ctx context.Context, cmd domain.Command, values []any) error

// Dispatcher resolves the first token to a command, parses the rest and calls
// the command's handler.
type Dispatcher struct {
	parser ports.Parser
	store  ports.CommandStore
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a dispatcher parsing with parser and looking commands up in store.
func New(parser ports.Parser, store ports.CommandStore, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		parser:   parser,
		store:    store,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		handlers: make(map[string]HandlerFunc),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle registers fn for the command name, replacing any previous handler.
func (d *Dispatcher) Handle(name string, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = fn
}

// Dispatch runs one command line. tokens[0] is the command name.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return ErrEmptyLine
	}

	// 1. Sanitize
	clean, err := SanitizeTokens(tokens)
	if err != nil {
		return err
	}
	name, args := clean[0], clean[1:]

	// 2. Resolve command and handler
	cmd, err := d.store.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	d.mu.RLock()
	fn, ok := d.handlers[name]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNoHandler)
	}

	// 3. Parse
	raw := make([]any, len(args))
	for i, a := range args {
		raw[i] = a
	}
	values, err := d.parser.Parse(ctx, raw, cmd.Usage)
	if err != nil {
		d.logger.DebugContext(ctx, "dispatch rejected", "command", name, "err", err)
		return fmt.Errorf("%s: %w", name, err)
	}

	// 4. Handle
	d.logger.DebugContext(ctx, "dispatching", "command", name, "values", len(values))
	return fn(ctx, cmd, values)
}
