package runtime

import (
	"fmt"

	"github.com/aretw0/argot/pkg/schema"
)

// resolution is the outcome of one slot.
type resolution struct {
	value   any
	typ     string
	skipped bool
}

// outcome is the result of trying one token against a slot's type(s).
type outcome struct {
	value any
	typ   string
	err   error // Exec failure
	ok    bool  // Some candidate accepted the token
}

func (e *Engine) resolve(tokens []any, cursor, index int, slot schema.Slot) (resolution, error) {
	if slot.Grouped() {
		return e.resolveGroup(tokens, cursor, index, slot)
	}
	return e.resolveSingle(tokens, cursor, index, slot)
}

func (e *Engine) resolveSingle(tokens []any, cursor, index int, slot schema.Slot) (resolution, error) {
	// Nothing left to read
	if cursor >= len(tokens) {
		if slot.Optional {
			return resolution{skipped: true}, nil
		}
		kind := schema.ErrTokenValidation
		if slot.Type.IsUnion() {
			kind = schema.ErrNoMatchingType
		}
		return resolution{}, &schema.ArgumentError{
			Kind:     kind,
			Position: cursor,
			Slot:     index,
			Types:    slot.Type,
			Reason:   "missing argument",
		}
	}

	token := tokens[cursor]
	out := e.try(token, slot)

	if out.err != nil {
		return resolution{}, &schema.ArgumentError{
			Kind:     schema.ErrTokenValidation,
			Value:    token,
			Window:   []any{token},
			Position: cursor,
			Slot:     index,
			Types:    []string{out.typ},
			Reason:   "conversion failed",
			Cause:    out.err,
		}
	}

	if !out.ok {
		if slot.Type.IsUnion() {
			return resolution{}, &schema.ArgumentError{
				Kind:     schema.ErrNoMatchingType,
				Value:    token,
				Window:   []any{token},
				Position: cursor,
				Slot:     index,
				Types:    slot.Type,
			}
		}
		// An optional slot that does not match is the only way through a failed check.
		if slot.Optional {
			return resolution{skipped: true}, nil
		}
		return resolution{}, &schema.ArgumentError{
			Kind:     schema.ErrTokenValidation,
			Value:    token,
			Window:   []any{token},
			Position: cursor,
			Slot:     index,
			Types:    slot.Type,
		}
	}

	return resolution{value: out.value, typ: out.typ}, nil
}

// resolveGroup handles slots with a fixed count. Each token of the window is tried
// independently, so members of a union may differ from one token to the next.
func (e *Engine) resolveGroup(tokens []any, cursor, index int, slot schema.Slot) (resolution, error) {
	window := windowAt(tokens, cursor, slot.Count)
	if len(window) == 0 && slot.Optional {
		return resolution{skipped: true}, nil
	}

	// 1. Per-token outcomes; the first failure wins
	values := make([]any, 0, len(window))
	first := ""
	for j, token := range window {
		pos := cursor + j
		out := e.try(token, slot)

		switch {
		case out.err != nil:
			return resolution{}, &schema.ArgumentError{
				Kind:     schema.ErrTokenValidation,
				Value:    token,
				Window:   window,
				Position: pos,
				Slot:     index,
				Types:    []string{out.typ},
				Reason:   "conversion failed",
				Cause:    out.err,
			}
		case !out.ok && slot.Type.IsUnion():
			return resolution{}, &schema.ArgumentError{
				Kind:     schema.ErrNoMatchingType,
				Value:    token,
				Window:   window,
				Position: cursor,
				Slot:     index,
				Types:    slot.Type,
				Reason:   fmt.Sprintf("token %d matches none of the types", pos),
			}
		case !out.ok:
			return resolution{}, &schema.ArgumentError{
				Kind:     schema.ErrTokenValidation,
				Value:    token,
				Window:   window,
				Position: pos,
				Slot:     index,
				Types:    slot.Type,
			}
		}

		if j == 0 {
			first = out.typ
		}
		values = append(values, out.value)
	}

	// 2. The window ran short
	if len(values) < slot.Count {
		return resolution{}, &schema.ArgumentError{
			Kind:     schema.ErrCountMismatch,
			Window:   window,
			Position: cursor,
			Slot:     index,
			Types:    slot.Type,
			Reason:   schema.CountMismatchReason,
		}
	}

	return resolution{value: values, typ: first}, nil
}

// try runs the slot's candidate types against one token, in order.
// The first type whose check passes is executed; later candidates are not tried.
func (e *Engine) try(token any, slot schema.Slot) outcome {
	for _, name := range slot.Type {
		d, ok := e.types.Find(name)
		if !ok {
			// Removed after validation; treat as a type that never matches.
			continue
		}
		if !d.Check(token, slot.Options) {
			continue
		}
		value, err := d.Exec(token, slot.Options)
		if err != nil {
			return outcome{typ: name, err: err}
		}
		return outcome{value: value, typ: name, ok: true}
	}
	return outcome{}
}

// windowAt returns a copy of at most n tokens starting at cursor.
func windowAt(tokens []any, cursor, n int) []any {
	if cursor >= len(tokens) {
		return []any{}
	}
	end := cursor + n
	if end > len(tokens) {
		end = len(tokens)
	}
	return clone(tokens[cursor:end])
}

func clone(tokens []any) []any {
	out := make([]any, len(tokens))
	copy(out, tokens)
	return out
}
