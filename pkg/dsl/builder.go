package dsl

import (
	"fmt"

	"github.com/aretw0/argot/pkg/adapters/memory"
	"github.com/aretw0/argot/pkg/domain"
)

// Builder manages the catalog construction.
type Builder struct {
	commands map[string]*CommandBuilder
	order    []string
}

// New creates a new catalog builder.
func New() *Builder {
	return &Builder{
		commands: make(map[string]*CommandBuilder),
	}
}

// Add creates a new command in the catalog.
// If the command already exists, it returns the existing builder.
func (b *Builder) Add(name string) *CommandBuilder {
	if cb, ok := b.commands[name]; ok {
		return cb
	}
	cb := &CommandBuilder{
		cmd:     domain.Command{Name: name},
		builder: b,
	}
	b.commands[name] = cb
	b.order = append(b.order, name)
	return cb
}

// Commands returns the declared commands in declaration order.
func (b *Builder) Commands() []domain.Command {
	out := make([]domain.Command, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.commands[name].cmd.Clone())
	}
	return out
}

// Build compiles the catalog into an in-memory command store.
func (b *Builder) Build() (*memory.Store, error) {
	store, err := memory.NewFromCommands(b.Commands()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build command store: %w", err)
	}
	return store, nil
}
