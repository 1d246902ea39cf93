package dispatch_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot"
	"github.com/aretw0/argot/pkg/adapters/memory"
	"github.com/aretw0/argot/pkg/dispatch"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	eng, err := argot.New(argot.WithStrict(true))
	require.NoError(t, err)

	store, err := memory.NewFromCommands(
		domain.Command{
			Name: "move",
			Usage: schema.Usage{
				{Name: "steps", Type: schema.Types("number")},
				{Name: "dir", Type: schema.Types("string"), Optional: true},
			},
		},
		domain.Command{Name: "orphan"},
	)
	require.NoError(t, err)

	return dispatch.New(eng, store)
}

func TestDispatch(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()

	var got []any
	d.Handle("move", func(ctx context.Context, cmd domain.Command, values []any) error {
		assert.Equal(t, "move", cmd.Name)
		got = values
		return nil
	})

	require.NoError(t, d.Dispatch(ctx, []string{"move", "3", "north"}))
	assert.Equal(t, []any{3, "north"}, got)

	// Control characters are stripped before parsing
	require.NoError(t, d.Dispatch(ctx, []string{"move", "2", "so\x1buth"}))
	assert.Equal(t, []any{2, "south"}, got)
}

func TestDispatch_Errors(t *testing.T) {
	d := newDispatcher(t)
	d.Handle("move", func(context.Context, domain.Command, []any) error { return nil })
	ctx := context.Background()

	tests := []struct {
		name   string
		tokens []string
		target error
	}{
		{"empty line", nil, dispatch.ErrEmptyLine},
		{"unknown command", []string{"fly"}, domain.ErrCommandNotFound},
		{"no handler", []string{"orphan"}, dispatch.ErrNoHandler},
		{"bad argument", []string{"move", "far"}, schema.ErrTokenValidation},
		{"leftover", []string{"move", "1", "n", "extra"}, schema.ErrUnexpectedArgument},
		{"invalid utf8", []string{"move", "\xff"}, dispatch.ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Dispatch(ctx, tt.tokens)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestDispatch_HandlerErrorPropagates(t *testing.T) {
	d := newDispatcher(t)
	boom := assert.AnError
	d.Handle("move", func(context.Context, domain.Command, []any) error { return boom })

	err := d.Dispatch(context.Background(), []string{"move", "1"})
	assert.ErrorIs(t, err, boom)
}
