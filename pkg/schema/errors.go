package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is; the structured details live in
// DescriptorError, SchemaError and ArgumentError.
var (
	// ErrConfiguration is returned when a descriptor is registered without a name, check or exec.
	ErrConfiguration = errors.New("invalid type descriptor")
	// ErrSchemaType is returned when a usage is not an ordered list of slots.
	ErrSchemaType = errors.New("usage is not a list of slots")
	// ErrSchemaArity is returned when more than one slot is optional.
	ErrSchemaArity = errors.New("more than one optional slot")
	// ErrSchemaOrder is returned when the optional slot is not the last one.
	ErrSchemaOrder = errors.New("optional slot is not the last slot")
	// ErrUnknownType is returned when a slot names a type that is not registered.
	ErrUnknownType = errors.New("unknown type")
	// ErrInvalidSlot is returned for slots without types or with a negative count.
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrNoMatchingType is returned when no member of a union accepts a token.
	ErrNoMatchingType = errors.New("no matching type")
	// ErrTokenValidation is returned when a required token fails its type check.
	ErrTokenValidation = errors.New("invalid argument")
	// ErrCountMismatch is returned when a fixed-size group runs out of tokens.
	ErrCountMismatch = errors.New("argument count mismatch")
	// ErrUnexpectedArgument is returned in strict mode when tokens remain after the last slot.
	ErrUnexpectedArgument = errors.New("unexpected argument")
)

// CountMismatchReason is the message carried by every ErrCountMismatch failure.
const CountMismatchReason = "argument count does not match declared count."

// DescriptorError describes a rejected registration.
type DescriptorError struct {
	Name   string
	Reason string
}

func (e *DescriptorError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrConfiguration, e.Name, e.Reason)
}

func (e *DescriptorError) Unwrap() error { return ErrConfiguration }

// SchemaError describes a usage that was rejected before any token was consumed.
type SchemaError struct {
	Kind     error // One of the Err* schema kinds
	Position int   // Slot index, -1 when the usage as a whole is at fault
	Reason   string
}

func (e *SchemaError) Error() string {
	msg := e.Kind.Error()
	if e.Position >= 0 {
		msg = fmt.Sprintf("slot %d: %s", e.Position, msg)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return e.Kind }

// ArgumentError describes a token, or group of tokens, that could not be resolved.
type ArgumentError struct {
	Kind     error    // ErrTokenValidation, ErrNoMatchingType, ErrCountMismatch or ErrUnexpectedArgument
	Value    any      // The offending raw token (nil when missing)
	Window   []any    // The tokens the slot was looking at
	Position int      // Absolute index in the token stream
	Slot     int      // Index of the slot in the usage
	Types    []string // Type name(s) attempted
	Reason   string   // Human-readable detail
	Cause    error    // Error returned by a descriptor's Exec, if any
}

func (e *ArgumentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "argument %d: %s", e.Position, e.Kind)
	if len(e.Types) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Types, "|"))
	}
	if e.Kind == ErrNoMatchingType && len(e.Window) > 1 {
		fmt.Fprintf(&b, " for %v", e.Window)
	} else if e.Value != nil {
		fmt.Fprintf(&b, " for %q", fmt.Sprint(e.Value))
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind and the descriptor cause.
func (e *ArgumentError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Kind returns the short name of the error kind, suitable for metrics labels and
// wire formats. Unknown errors map to "internal".
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrSchemaType):
		return "schema_type"
	case errors.Is(err, ErrSchemaArity):
		return "schema_arity"
	case errors.Is(err, ErrSchemaOrder):
		return "schema_order"
	case errors.Is(err, ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, ErrInvalidSlot):
		return "invalid_slot"
	case errors.Is(err, ErrNoMatchingType):
		return "no_matching_type"
	case errors.Is(err, ErrTokenValidation):
		return "token_validation"
	case errors.Is(err, ErrCountMismatch):
		return "count_mismatch"
	case errors.Is(err, ErrUnexpectedArgument):
		return "unexpected_argument"
	default:
		return "internal"
	}
}

// IsSchemaError reports whether err was raised by usage validation rather than by a token.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
