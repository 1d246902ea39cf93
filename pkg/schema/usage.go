package schema

import (
	"strconv"
	"strings"
)

// TypeSpec names the type of a slot. A single entry is a plain type;
// several entries form a union where the first matching type wins.
type TypeSpec []string

// Types builds a TypeSpec from names.
func Types(names ...string) TypeSpec {
	return TypeSpec(names)
}

// IsUnion reports whether more than one type is listed.
func (t TypeSpec) IsUnion() bool { return len(t) > 1 }

// String renders the spec as "a" or "a|b".
func (t TypeSpec) String() string { return strings.Join(t, "|") }

// Slot describes what one token, or a fixed-size group of tokens, must look like.
type Slot struct {
	Name     string   // Label used by help output; ignored by the engine
	Type     TypeSpec // One type, or a union tried in order
	Optional bool     // Wire form "required: false"; only the last slot may set it
	Count    int      // 0 consumes one token, N > 0 consumes exactly N tokens
	Options  Options  // Forwarded verbatim to Check/Exec
}

// Width returns how many tokens the slot consumes.
func (s Slot) Width() int {
	if s.Count > 0 {
		return s.Count
	}
	return 1
}

// Grouped reports whether the slot consumes a fixed-size group.
func (s Slot) Grouped() bool { return s.Count > 0 }

// Usage is an ordered list of slots.
// Example: {{Type: Types("string")}, {Type: Types("number"), Optional: true}}
type Usage []Slot

// Arity returns the minimum and maximum number of tokens the usage consumes.
func (u Usage) Arity() (min, max int) {
	for _, slot := range u {
		max += slot.Width()
		if !slot.Optional {
			min += slot.Width()
		}
	}
	return min, max
}

// String renders a compact synopsis such as "<name:string> [extra:string|number]".
func (u Usage) String() string {
	parts := make([]string, 0, len(u))
	for i, slot := range u {
		label := slot.Name
		if label == "" {
			label = "arg" + strconv.Itoa(i)
		}
		label += ":" + slot.Type.String()
		if slot.Grouped() {
			label += "*" + strconv.Itoa(slot.Count)
		}
		if slot.Optional {
			parts = append(parts, "["+label+"]")
		} else {
			parts = append(parts, "<"+label+">")
		}
	}
	return strings.Join(parts, " ")
}
