package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot/pkg/adapters/memory"
	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/ports"
	"github.com/aretw0/argot/pkg/schema"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunCommandStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	cmd := domain.Command{
		Name:  "copy",
		Usage: schema.Usage{{Type: schema.Types("string"), Options: schema.Options{"k": "v"}}},
	}

	store, err := memory.NewFromCommands(cmd)
	require.NoError(t, err)

	// Mutating the original after Save must not leak into the store
	cmd.Usage[0].Type[0] = "number"
	cmd.Usage[0].Options["k"] = "changed"

	loaded, err := store.Load(ctx, "copy")
	require.NoError(t, err)
	assert.Equal(t, "string", loaded.Usage[0].Type[0])
	assert.Equal(t, "v", loaded.Usage[0].Options["k"])

	// Mutating a loaded copy must not leak either
	loaded.Usage[0].Options["k"] = "again"
	reloaded, _ := store.Load(ctx, "copy")
	assert.Equal(t, "v", reloaded.Usage[0].Options["k"])
}

func TestNewFromCommands_Invalid(t *testing.T) {
	_, err := memory.NewFromCommands(domain.Command{Name: "has space"})
	assert.ErrorIs(t, err, domain.ErrInvalidCommand)
}
