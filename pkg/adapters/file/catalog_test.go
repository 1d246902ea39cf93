package file_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot/internal/testutils"
	"github.com/aretw0/argot/pkg/adapters/file"
	"github.com/aretw0/argot/pkg/adapters/memory"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

const catalogYAML = `
commands:
  - name: move
    description: Move a piece
    usage:
      - name: steps
        type: number
      - name: dir
        type: [enum, string]
        required: false
        values: [north, south]
  - name: greet
    usage:
      - type: string
`

const catalogJSON = `{
  "commands": [
    {"name": "pair", "usage": [{"type": ["number", "string"], "count": 2}]}
  ]
}`

func TestLoadCatalog_YAML(t *testing.T) {
	cmds, err := file.LoadCatalog(testutils.WriteCatalog(t, "commands.yaml", catalogYAML))
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	// Sorted by name
	assert.Equal(t, "greet", cmds[0].Name)
	move := cmds[1]
	assert.Equal(t, "Move a piece", move.Description)
	require.Len(t, move.Usage, 2)
	assert.Equal(t, schema.Types("enum", "string"), move.Usage[1].Type)
	assert.True(t, move.Usage[1].Optional)
	// Unknown keys land in Options
	assert.Equal(t, []any{"north", "south"}, move.Usage[1].Options["values"])
}

func TestLoadCatalog_JSON(t *testing.T) {
	cmds, err := file.LoadCatalog(testutils.WriteCatalog(t, "commands.json", catalogJSON))
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, 2, cmds[0].Usage[0].Count)
	assert.Equal(t, "<arg0:number|string*2>", cmds[0].Usage.String())
}

func TestLoadCatalog_Missing(t *testing.T) {
	cmds, err := file.LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func TestLoadCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{"malformed yaml", "c.yaml", "commands: [", nil},
		{"malformed json", "c.json", "{", nil},
		{"empty name", "c.yaml", "commands:\n  - usage: []\n", domain.ErrInvalidCommand},
		{"duplicate", "c.yaml", "commands:\n  - name: a\n  - name: a\n", domain.ErrInvalidCommand},
		{"bad usage", "c.yaml", "commands:\n  - name: a\n    usage: nope\n", schema.ErrSchemaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.LoadCatalog(testutils.WriteCatalog(t, tt.file, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	cmds, err := file.ParseCatalog([]byte(catalogYAML), ".yml")
	require.NoError(t, err)

	require.NoError(t, file.Seed(ctx, store, cmds))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"greet", "move"}, names)

	err = file.Seed(ctx, store, []domain.Command{{Name: ""}})
	assert.ErrorIs(t, err, domain.ErrInvalidCommand)
}
