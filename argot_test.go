package argot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

func TestFacade_Defaults(t *testing.T) {
	eng, err := argot.New()
	require.NoError(t, err)

	var names []string
	for _, d := range eng.Types() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"number", "string"}, names)
}

func TestFacade_Builtins(t *testing.T) {
	eng, err := argot.New(argot.WithBuiltins())
	require.NoError(t, err)

	usage := schema.Usage{
		{Type: schema.Types("boolean")},
		{Type: schema.Types("enum"), Options: schema.Options{"values": []string{"json", "text"}}},
	}
	values, err := eng.ParseStrings(context.Background(), []string{"yes", "json"}, usage)
	require.NoError(t, err)
	assert.Equal(t, []any{true, "json"}, values)
}

func TestFacade_WithoutDefaults(t *testing.T) {
	eng, err := argot.New(argot.WithoutDefaults())
	require.NoError(t, err)

	_, ok := eng.Find("string")
	assert.False(t, ok)

	err = eng.Validate(schema.Usage{{Type: schema.Types("string")}})
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestFacade_RejectsBadType(t *testing.T) {
	_, err := argot.New(argot.WithTypes(schema.Descriptor{Name: "broken"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrConfiguration))
}

func TestFacade_RegisterFindRemove(t *testing.T) {
	eng, err := argot.New()
	require.NoError(t, err)

	hex := schema.Descriptor{
		Name:  "hex",
		Info:  "A hexadecimal color",
		Check: func(v any, _ schema.Options) bool { s, ok := v.(string); return ok && len(s) == 7 && s[0] == '#' },
		Exec:  func(v any, _ schema.Options) (any, error) { return v.(string)[1:], nil },
	}
	require.NoError(t, eng.Register(hex))

	found, ok := eng.Find("hex")
	require.True(t, ok)
	assert.Equal(t, "A hexadecimal color", found.Info)

	values, err := eng.ParseStrings(context.Background(), []string{"#ff00aa"}, schema.Usage{{Type: schema.Types("hex")}})
	require.NoError(t, err)
	assert.Equal(t, []any{"ff00aa"}, values)

	eng.Remove("hex")
	eng.Remove("hex")
	_, ok = eng.Find("hex")
	assert.False(t, ok)

	_, err = eng.ParseStrings(context.Background(), []string{"#ff00aa"}, schema.Usage{{Type: schema.Types("hex")}})
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestFacade_ParseCommand(t *testing.T) {
	eng, err := argot.New(argot.WithStrict(true))
	require.NoError(t, err)

	cmd := domain.Command{
		Name:  "repeat",
		Usage: schema.Usage{{Type: schema.Types("string")}, {Type: schema.Types("number")}},
	}

	values, err := eng.ParseCommand(context.Background(), cmd, []any{"hi", "3"})
	require.NoError(t, err)
	assert.Equal(t, []any{"hi", 3}, values)

	_, err = eng.ParseCommand(context.Background(), cmd, []any{"hi", "3", "extra"})
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnexpectedArgument)
	assert.Contains(t, err.Error(), "repeat:")
}

func TestFacade_HooksAreMerged(t *testing.T) {
	var first, second int
	eng, err := argot.New(
		argot.WithLifecycleHooks(domain.LifecycleHooks{
			OnParseEnd: func(context.Context, *domain.ParseEvent) { first++ },
		}),
		argot.WithLifecycleHooks(domain.LifecycleHooks{
			OnParseEnd: func(context.Context, *domain.ParseEvent) { second++ },
		}),
	)
	require.NoError(t, err)

	_, _ = eng.Parse(context.Background(), []any{"a"}, schema.Usage{{Type: schema.Types("string")}})
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
