package ports

import (
	"context"

	"github.com/aretw0/argot/pkg/schema"
)

// Parser is the part of the engine consumed by dispatchers and servers.
// *argot.Engine satisfies it.
type Parser interface {
	Parse(ctx context.Context, tokens []any, usage schema.Usage) ([]any, error)
	Validate(usage schema.Usage) error
	Types() []schema.Descriptor
}
