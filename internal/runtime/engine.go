package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

// TypeResolver resolves a type name to its descriptor.
// *registry.Registry satisfies it.
type TypeResolver interface {
	Find(name string) (schema.Descriptor, bool)
}

// Engine validates usages and resolves tokens against them.
// It holds no per-call state; concurrent Parse calls are safe as long as the
// resolver is not mutated meanwhile.
type Engine struct {
	types  TypeResolver
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	strict bool
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStrict makes Parse reject tokens left over after the last slot.
func WithStrict(strict bool) EngineOption {
	return func(e *Engine) {
		e.strict = strict
	}
}

// NewEngine creates a new engine resolving types through types.
func NewEngine(types TypeResolver, opts ...EngineOption) *Engine {
	e := &Engine{
		types:  types,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks the usage without consuming any token.
func (e *Engine) Validate(usage schema.Usage) error {
	return usage.Validate(func(name string) bool {
		_, ok := e.types.Find(name)
		return ok
	})
}

// Parse resolves tokens against usage, slot by slot, left to right.
// It returns one value per resolved slot (a []any for grouped slots) or the first
// error encountered; there is never a partial result.
func (e *Engine) Parse(ctx context.Context, tokens []any, usage schema.Usage) (values []any, err error) {
	start := time.Now()
	e.emitParse(ctx, domain.EventParseStart, &domain.ParseEvent{Tokens: len(tokens), Slots: len(usage)})
	defer func() {
		e.emitParse(ctx, domain.EventParseEnd, &domain.ParseEvent{
			Tokens:   len(tokens),
			Slots:    len(usage),
			Values:   len(values),
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			e.logger.DebugContext(ctx, "parse failed", "usage", usage.String(), "kind", schema.Kind(err), "err", err)
		}
	}()

	// 1. Usage must be sound before touching tokens
	if err := e.Validate(usage); err != nil {
		return nil, err
	}

	// 2. Single linear pass; the cursor only moves forward
	values = make([]any, 0, len(usage))
	cursor := 0
	for i, slot := range usage {
		res, err := e.resolve(tokens, cursor, i, slot)
		if err != nil {
			return nil, err
		}

		e.emitSlot(ctx, &domain.SlotEvent{
			Slot:     i,
			Position: cursor,
			TypeName: res.typ,
			Width:    slot.Width(),
			Skipped:  res.skipped,
		})

		if res.skipped {
			continue
		}
		values = append(values, res.value)
		cursor += slot.Width()
	}

	// 3. Leftovers
	if e.strict && cursor < len(tokens) {
		return nil, &schema.ArgumentError{
			Kind:     schema.ErrUnexpectedArgument,
			Value:    tokens[cursor],
			Window:   clone(tokens[cursor:]),
			Position: cursor,
			Slot:     len(usage),
			Reason:   "no slot left to consume it",
		}
	}

	return values, nil
}

func (e *Engine) emitParse(ctx context.Context, typ domain.EventType, ev *domain.ParseEvent) {
	hook := e.hooks.OnParseStart
	if typ == domain.EventParseEnd {
		hook = e.hooks.OnParseEnd
	}
	if hook == nil {
		return
	}
	ev.Timestamp = time.Now()
	ev.Type = typ
	hook(ctx, ev)
}

func (e *Engine) emitSlot(ctx context.Context, ev *domain.SlotEvent) {
	if e.hooks.OnSlotResolved == nil {
		return
	}
	ev.Timestamp = time.Now()
	ev.Type = domain.EventSlotResolved
	e.hooks.OnSlotResolved(ctx, ev)
}
