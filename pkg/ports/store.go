package ports

import (
	"context"

	"github.com/aretw0/argot/pkg/domain"
)

// CommandStore defines the interface for persisting command definitions.
type CommandStore interface {
	// Save creates or replaces a command.
	// Returns an error wrapping domain.ErrInvalidCommand if the command has no usable name.
	Save(ctx context.Context, cmd domain.Command) error

	// Load retrieves a command by name.
	// Returns domain.ErrCommandNotFound if the command does not exist.
	Load(ctx context.Context, name string) (domain.Command, error)

	// Delete removes a command. Deleting an unknown command is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored commands in lexical order.
	List(ctx context.Context) ([]string, error)
}
