package schema

import "fmt"

// Validate checks the structural rules of a usage:
// at most one optional slot, and only in last position.
// When known is non-nil every type name must also satisfy it.
// The first violation is returned as a *SchemaError.
func (u Usage) Validate(known func(name string) bool) error {
	// 1. Optional slots: count them and remember the last one
	optional, last := 0, -1
	for i, slot := range u {
		if slot.Optional {
			optional++
			last = i
		}
	}
	if optional > 1 {
		return &SchemaError{
			Kind:     ErrSchemaArity,
			Position: last,
			Reason:   fmt.Sprintf("%d slots are optional, at most one is allowed", optional),
		}
	}
	if optional == 1 && last != len(u)-1 {
		return &SchemaError{
			Kind:     ErrSchemaOrder,
			Position: last,
			Reason:   "only the last slot may be optional",
		}
	}

	// 2. Per-slot shape
	for i, slot := range u {
		if len(slot.Type) == 0 {
			return &SchemaError{Kind: ErrInvalidSlot, Position: i, Reason: "no type given"}
		}
		if slot.Count < 0 {
			return &SchemaError{
				Kind:     ErrInvalidSlot,
				Position: i,
				Reason:   fmt.Sprintf("count must be positive, got %d", slot.Count),
			}
		}
		if known == nil {
			continue
		}
		for _, name := range slot.Type {
			if !known(name) {
				return &SchemaError{Kind: ErrUnknownType, Position: i, Reason: fmt.Sprintf("%q is not registered", name)}
			}
		}
	}

	return nil
}
