package tui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

func TestTypesMarkdown(t *testing.T) {
	out := TypesMarkdown([]schema.Descriptor{
		{Name: "string", Info: "Any string value"},
		{Name: "pipe", Info: "a|b"},
	})
	assert.Contains(t, out, "| Type | Description |")
	assert.Contains(t, out, "| `string` | Any string value |")
	assert.Contains(t, out, "| `pipe` | a\\|b |")
}

func TestTypesPlain(t *testing.T) {
	out := TypesPlain([]schema.Descriptor{{Name: "number", Info: "An integer"}})
	assert.Equal(t, "number\tAn integer\n", out)
}

func TestCommandsMarkdown(t *testing.T) {
	out := CommandsMarkdown([]domain.Command{
		{Name: "move", Description: "Move", Usage: schema.Usage{{Name: "n", Type: schema.Types("number")}}},
		{Name: "quit"},
	})
	assert.Equal(t, "- `move <n:number>`: Move\n- `quit`\n", out)
}

func TestFormatError(t *testing.T) {
	argErr := &schema.ArgumentError{
		Kind:     schema.ErrTokenValidation,
		Value:    "far",
		Position: 1,
		Types:    []string{"number"},
	}
	err := fmt.Errorf("move: %w", argErr)

	out := FormatError(err, []string{"go", "far"}, false)
	assert.Equal(t, "error: "+err.Error()+"\n  go far\n     ^", out)

	// No caret without tokens, or for non-argument errors
	assert.Equal(t, "error: "+err.Error(), FormatError(err, nil, false))
	assert.Equal(t, "error: boom", FormatError(errors.New("boom"), []string{"x"}, false))
}
