package dsl

import (
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

// CommandBuilder provides a fluent API for configuring a command.
// Slot modifiers (Optional, With) apply to the most recently added slot.
type CommandBuilder struct {
	cmd     domain.Command
	builder *Builder
}

// Describe sets the command's one-line description.
func (c *CommandBuilder) Describe(text string) *CommandBuilder {
	c.cmd.Description = text
	return c
}

// Arg appends a slot consuming one token. Several types make it a union,
// tried in the given order.
func (c *CommandBuilder) Arg(name string, types ...string) *CommandBuilder {
	c.cmd.Usage = append(c.cmd.Usage, schema.Slot{
		Name: name,
		Type: schema.Types(types...),
	})
	return c
}

// Group appends a slot consuming exactly count tokens.
func (c *CommandBuilder) Group(name string, count int, types ...string) *CommandBuilder {
	c.cmd.Usage = append(c.cmd.Usage, schema.Slot{
		Name:  name,
		Type:  schema.Types(types...),
		Count: count,
	})
	return c
}

// Optional marks the last slot as optional.
func (c *CommandBuilder) Optional() *CommandBuilder {
	if s := c.last(); s != nil {
		s.Optional = true
	}
	return c
}

// With sets a type option on the last slot.
func (c *CommandBuilder) With(key string, value any) *CommandBuilder {
	if s := c.last(); s != nil {
		if s.Options == nil {
			s.Options = make(schema.Options)
		}
		s.Options[key] = value
	}
	return c
}

// Add starts another command on the same catalog.
func (c *CommandBuilder) Add(name string) *CommandBuilder {
	return c.builder.Add(name)
}

func (c *CommandBuilder) last() *schema.Slot {
	if len(c.cmd.Usage) == 0 {
		return nil
	}
	return &c.cmd.Usage[len(c.cmd.Usage)-1]
}
