package domain

import (
	"fmt"
	"strings"

	"github.com/aretw0/argot/pkg/schema"
)

// Command associates a name with the usage of its positional arguments.
type Command struct {
	Name        string       `json:"name" yaml:"name" mapstructure:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Usage       schema.Usage `json:"usage" yaml:"usage" mapstructure:"usage"`
}

// Validate checks that the command can be stored.
func (c Command) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidCommand)
	}
	if strings.ContainsAny(c.Name, " \t\n") {
		return fmt.Errorf("%w: name %q contains whitespace", ErrInvalidCommand, c.Name)
	}
	return nil
}

// Synopsis renders "name <arg:type> [opt:type]".
func (c Command) Synopsis() string {
	if len(c.Usage) == 0 {
		return c.Name
	}
	return c.Name + " " + c.Usage.String()
}

// Clone returns a copy that shares no slices or maps with c.
func (c Command) Clone() Command {
	out := c
	if c.Usage == nil {
		return out
	}
	out.Usage = make(schema.Usage, len(c.Usage))
	for i, slot := range c.Usage {
		slot.Type = append(schema.TypeSpec(nil), slot.Type...)
		if slot.Options != nil {
			opts := make(schema.Options, len(slot.Options))
			for k, v := range slot.Options {
				opts[k] = v
			}
			slot.Options = opts
		}
		out.Usage[i] = slot
	}
	return out
}
