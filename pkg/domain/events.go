package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventParseStart   EventType = "parse_start"
	EventSlotResolved EventType = "slot_resolved"
	EventParseEnd     EventType = "parse_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ParseEvent represents the start or the end of one parse call.
type ParseEvent struct {
	EventBase
	Tokens   int           `json:"tokens"`
	Slots    int           `json:"slots"`
	Values   int           `json:"values,omitempty"`   // Set on end
	Duration time.Duration `json:"duration,omitempty"` // Set on end
	Err      error         `json:"-"`                  // Set on end when the parse failed
}

// Outcome returns OutcomeSuccess or OutcomeFailure.
func (e *ParseEvent) Outcome() string {
	if e.Err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// SlotEvent represents one slot that produced a value, or was skipped.
type SlotEvent struct {
	EventBase
	Slot     int    `json:"slot"`
	Position int    `json:"position"` // Cursor at which the slot started
	TypeName string `json:"type_name"` // Winning type; for groups the type of the first token
	Width    int    `json:"width"`    // Tokens consumed
	Skipped  bool   `json:"skipped,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnParseStart   func(context.Context, *ParseEvent)
	OnSlotResolved func(context.Context, *SlotEvent)
	OnParseEnd     func(context.Context, *ParseEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnParseStart:   chain(h.OnParseStart, other.OnParseStart),
		OnSlotResolved: chain(h.OnSlotResolved, other.OnSlotResolved),
		OnParseEnd:     chain(h.OnParseEnd, other.OnParseEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
