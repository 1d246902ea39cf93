package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Options is the configuration bag of a slot. The engine forwards it untouched to
// Check and Exec; only descriptors interpret it.
type Options map[string]any

// CheckFunc reports whether value is acceptable for a type. It must not mutate value.
type CheckFunc func(value any, opts Options) bool

// ExecFunc converts a value that already passed the check.
type ExecFunc func(value any, opts Options) (any, error)

// Descriptor is one named value type.
type Descriptor struct {
	Name  string    // Unique key in a registry
	Info  string    // Human-readable description, presentational only
	Check CheckFunc // Validity predicate
	Exec  ExecFunc  // Coercion, called only after Check succeeds
}

// Valid returns a *DescriptorError when the descriptor cannot be registered.
func (d Descriptor) Valid() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return &DescriptorError{Name: d.Name, Reason: "name is empty"}
	case d.Check == nil:
		return &DescriptorError{Name: d.Name, Reason: "check function is missing"}
	case d.Exec == nil:
		return &DescriptorError{Name: d.Name, Reason: "exec function is missing"}
	}
	return nil
}

// Built-in type names.
const (
	TypeString   = "string"
	TypeNumber   = "number"
	TypeFloat    = "float"
	TypeBoolean  = "boolean"
	TypeEnum     = "enum"
	TypeDuration = "duration"
)

// --- Built-in Descriptors ---

// String accepts string-like values and converts them with an identity string conversion.
func String() Descriptor {
	return Descriptor{
		Name:  TypeString,
		Info:  "Any string value",
		Check: func(v any, _ Options) bool { return isStringLike(v) },
		Exec: func(v any, _ Options) (any, error) {
			return cast.ToStringE(v)
		},
	}
}

// Number accepts numeric and numeric-coercible values and converts them to int.
// Strings are parsed as decimal; a fractional part is truncated ("42.9" -> 42).
// Values that do not fit in an int fail the check.
func Number() Descriptor {
	return Descriptor{
		Name:  TypeNumber,
		Info:  "An integer; numeric strings are parsed and fractions truncated",
		Check: func(v any, _ Options) bool { _, err := toInt(v); return err == nil },
		Exec:  func(v any, _ Options) (any, error) { return toInt(v) },
	}
}

// Float accepts numeric and numeric-coercible values and converts them to float64.
func Float() Descriptor {
	return Descriptor{
		Name:  TypeFloat,
		Info:  "A floating point number",
		Check: func(v any, _ Options) bool { _, ok := toFloat(v); return ok },
		Exec: func(v any, _ Options) (any, error) {
			f, ok := toFloat(v)
			if !ok {
				return nil, fmt.Errorf("expected number, got %T", v)
			}
			return f, nil
		},
	}
}

// Boolean accepts true/false, 1/0, yes/no and on/off (case-insensitive).
func Boolean() Descriptor {
	return Descriptor{
		Name:  TypeBoolean,
		Info:  "A boolean (true/false, yes/no, on/off, 1/0)",
		Check: func(v any, _ Options) bool { _, err := toBool(v); return err == nil },
		Exec:  func(v any, _ Options) (any, error) { return toBool(v) },
	}
}

// Enum accepts a string listed in opts["values"].
// When opts["fold"] is true the match is case-insensitive and the canonical value is returned.
func Enum() Descriptor {
	return Descriptor{
		Name:  TypeEnum,
		Info:  "One of the values listed in the slot's \"values\" option",
		Check: func(v any, opts Options) bool { _, ok := matchEnum(v, opts); return ok },
		Exec: func(v any, opts Options) (any, error) {
			s, ok := matchEnum(v, opts)
			if !ok {
				return nil, fmt.Errorf("%v is not an allowed value", v)
			}
			return s, nil
		},
	}
}

// Duration accepts Go duration strings ("1m30s") and integer nanoseconds.
func Duration() Descriptor {
	return Descriptor{
		Name: TypeDuration,
		Info: "A duration such as 250ms or 1h30m",
		Check: func(v any, _ Options) bool {
			if v == nil {
				return false
			}
			_, err := cast.ToDurationE(v)
			return err == nil
		},
		Exec: func(v any, _ Options) (any, error) { return cast.ToDurationE(v) },
	}
}

// Defaults returns the descriptors every registry starts with.
func Defaults() []Descriptor {
	return []Descriptor{String(), Number()}
}

// Builtins returns every descriptor shipped with the package.
func Builtins() []Descriptor {
	return append(Defaults(), Float(), Boolean(), Enum(), Duration())
}

func isStringLike(v any) bool {
	switch v.(type) {
	case string, []byte, json.Number, fmt.Stringer:
		return true
	default:
		return false
	}
}

// toFloat reports whether v is numeric or a numeric string.
func toFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case nil, bool:
		return 0, false
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt converts v to int. Values outside the int range are an error rather
// than being wrapped.
func toInt(v any) (int, error) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if i, err := strconv.ParseInt(s, 10, 0); err == nil {
			return int(i), nil
		}
		f, ok := toFloat(s)
		if !ok {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		return truncInt(f)
	case json.Number:
		return toInt(string(val))
	case int, int8, int16, int32, int64:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return 0, err
		}
		if i < math.MinInt || i > math.MaxInt {
			return 0, fmt.Errorf("%d is out of range", i)
		}
		return int(i), nil
	case uint, uint8, uint16, uint32, uint64:
		u, err := cast.ToUint64E(v)
		if err != nil {
			return 0, err
		}
		if u > math.MaxInt {
			return 0, fmt.Errorf("%d is out of range", u)
		}
		return int(u), nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("expected number, got %T", v)
	}
	return truncInt(f)
}

// truncInt drops the fraction of f, toward zero.
func truncInt(f float64) (int, error) {
	t := math.Trunc(f)
	if t < math.MinInt || t >= -math.MinInt {
		return 0, fmt.Errorf("%g is out of range", f)
	}
	return int(t), nil
}

func toBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "t", "yes", "y", "on", "1":
			return true, nil
		case "false", "f", "no", "n", "off", "0":
			return false, nil
		}
		return false, fmt.Errorf("%q is not a boolean", val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToBoolE(v)
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func matchEnum(v any, opts Options) (string, bool) {
	if !isStringLike(v) {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	allowed, err := cast.ToStringSliceE(opts["values"])
	if err != nil {
		return "", false
	}
	fold := cast.ToBool(opts["fold"])
	for _, candidate := range allowed {
		if candidate == s || (fold && strings.EqualFold(candidate, s)) {
			return candidate, true
		}
	}
	return "", false
}
