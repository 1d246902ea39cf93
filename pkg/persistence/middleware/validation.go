package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/ports"
	"github.com/aretw0/argot/pkg/schema"
)

// ErrReadOnly is returned by a read-only store on Save and Delete.
var ErrReadOnly = errors.New("command store is read-only")

// UsageValidator checks a usage before it is stored.
// *argot.Engine and ports.Parser satisfy it.
type UsageValidator interface {
	Validate(usage schema.Usage) error
}

type validationMiddleware struct {
	ports.CommandStore
	validator UsageValidator
}

// NewValidationMiddleware rejects commands whose usage the validator refuses,
// so a stored command can always be parsed.
func NewValidationMiddleware(validator UsageValidator) Middleware {
	return func(next ports.CommandStore) ports.CommandStore {
		return &validationMiddleware{
			CommandStore: next,
			validator:    validator,
		}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, cmd domain.Command) error {
	if err := m.validator.Validate(cmd.Usage); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return m.CommandStore.Save(ctx, cmd)
}

type readOnlyMiddleware struct {
	ports.CommandStore
}

// NewReadOnlyMiddleware turns Save and Delete into ErrReadOnly.
func NewReadOnlyMiddleware() Middleware {
	return func(next ports.CommandStore) ports.CommandStore {
		return &readOnlyMiddleware{CommandStore: next}
	}
}

func (m *readOnlyMiddleware) Save(ctx context.Context, cmd domain.Command) error {
	return ErrReadOnly
}

func (m *readOnlyMiddleware) Delete(ctx context.Context, name string) error {
	return ErrReadOnly
}
