package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// wireSlot is the serialized form of a Slot.
// Keys other than the known ones are collected into the slot options.
type wireSlot struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Type     TypeSpec       `json:"type" yaml:"type" mapstructure:"type"`
	Required *bool          `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Count    int            `json:"count,omitempty" yaml:"count,omitempty" mapstructure:"count"`
	Options  Options        `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
	Extra    map[string]any `json:"-" yaml:"-" mapstructure:",remain"`
}

func (w wireSlot) slot() Slot {
	s := Slot{
		Name:     w.Name,
		Type:     w.Type,
		Optional: w.Required != nil && !*w.Required,
		Count:    w.Count,
		Options:  w.Options,
	}
	if len(w.Extra) > 0 {
		merged := make(Options, len(w.Extra)+len(w.Options))
		for k, v := range w.Extra {
			merged[k] = v
		}
		for k, v := range w.Options {
			merged[k] = v
		}
		s.Options = merged
	}
	return s
}

func wire(s Slot) wireSlot {
	required := !s.Optional
	return wireSlot{
		Name:     s.Name,
		Type:     s.Type,
		Required: &required,
		Count:    s.Count,
		Options:  s.Options,
	}
}

// DecodeUsage converts loosely typed data (decoded JSON/YAML, maps built by hand)
// into a Usage. It fails with ErrSchemaType when raw is not a list or an element is
// not a slot, and with ErrInvalidSlot when a slot cannot be decoded.
// Structural rules (optional slots) are checked by Usage.Validate, not here.
func DecodeUsage(raw any) (Usage, error) {
	switch v := raw.(type) {
	case Usage:
		return v, nil
	case []Slot:
		return Usage(v), nil
	}

	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, &SchemaError{
			Kind:     ErrSchemaType,
			Position: -1,
			Reason:   fmt.Sprintf("expected a list, got %T", raw),
		}
	}

	usage := make(Usage, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if slot, ok := elem.(Slot); ok {
			usage = append(usage, slot)
			continue
		}
		slot, err := decodeSlot(i, elem)
		if err != nil {
			return nil, err
		}
		usage = append(usage, slot)
	}
	return usage, nil
}

func decodeSlot(pos int, raw any) (Slot, error) {
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return Slot{}, &SchemaError{
			Kind:     ErrSchemaType,
			Position: pos,
			Reason:   fmt.Sprintf("expected a slot object, got %T", raw),
		}
	}

	var w wireSlot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(typeSpecHook, integerHook),
		Result:     &w,
	})
	if err != nil {
		return Slot{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Slot{}, &SchemaError{Kind: ErrInvalidSlot, Position: pos, Reason: err.Error()}
	}
	return w.slot(), nil
}

// typeSpecHook lets "type" be either a single name or a list of names.
func typeSpecHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(TypeSpec{}) || from.Kind() != reflect.String {
		return data, nil
	}
	return TypeSpec{data.(string)}, nil
}

// integerHook rejects fractional numbers bound for int fields ("count: 2.5"),
// which mapstructure would otherwise truncate.
func integerHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("expected an integer, got %v", f)
		}
	}
	return data, nil
}

// --- JSON ---

// MarshalJSON emits a plain string for single types and a list for unions.
func (t TypeSpec) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// UnmarshalJSON accepts a string or a list of strings.
func (t *TypeSpec) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = TypeSpec{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("type: expected string or list of strings: %w", err)
	}
	*t = TypeSpec(many)
	return nil
}

// MarshalJSON serializes the slot in its wire form.
func (s Slot) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire(s))
}

// UnmarshalJSON decodes a slot from its wire form.
func (s *Slot) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	slot, err := decodeSlot(-1, raw)
	if err != nil {
		return err
	}
	*s = slot
	return nil
}

// UnmarshalJSON decodes a usage, rejecting anything that is not a list.
func (u *Usage) UnmarshalJSON(data []byte) error {
	if u == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*u = nil
		return nil
	}
	usage, err := DecodeUsage(raw)
	if err != nil {
		return err
	}
	*u = usage
	return nil
}

// --- YAML ---

// MarshalYAML emits a plain string for single types and a list for unions.
func (t TypeSpec) MarshalYAML() (any, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}

// MarshalYAML serializes the slot in its wire form.
func (s Slot) MarshalYAML() (any, error) {
	return wire(s), nil
}

// UnmarshalYAML decodes a slot from its wire form.
func (s *Slot) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	slot, err := decodeSlot(-1, raw)
	if err != nil {
		return err
	}
	*s = slot
	return nil
}

// UnmarshalYAML decodes a usage, rejecting anything that is not a list.
func (u *Usage) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		*u = nil
		return nil
	}
	usage, err := DecodeUsage(raw)
	if err != nil {
		return err
	}
	*u = usage
	return nil
}
