package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/schema"
)

// RunCommandStoreContract runs a suite of tests to verify that a CommandStore implementation
// adheres to the defined interface contract.
func RunCommandStoreContract(t *testing.T, store CommandStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a command with a union group and an optional trailing slot
		cmd := domain.Command{
			Name:        name,
			Description: "contract command",
			Usage: schema.Usage{
				{Name: "target", Type: schema.Types("string")},
				{Name: "pair", Type: schema.Types("number", "string"), Count: 2},
				{Name: "mode", Type: schema.Types("enum"), Optional: true, Options: schema.Options{"values": []any{"a", "b"}}},
			},
		}

		// 2. Save
		err := store.Save(ctx, cmd)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, cmd.Name, loaded.Name)
		assert.Equal(t, cmd.Description, loaded.Description)
		require.Len(t, loaded.Usage, 3)
		assert.Equal(t, schema.Types("number", "string"), loaded.Usage[1].Type)
		assert.Equal(t, 2, loaded.Usage[1].Count)
		assert.True(t, loaded.Usage[2].Optional)
		// Options go through serialization in persistent stores; only check presence.
		assert.NotNil(t, loaded.Usage[2].Options["values"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrCommandNotFound)
	})

	t.Run("Save Invalid", func(t *testing.T) {
		err := store.Save(ctx, domain.Command{Name: ""})
		assert.ErrorIs(t, err, domain.ErrInvalidCommand)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, domain.Command{Name: name})
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrCommandNotFound, "Load after Delete should return ErrCommandNotFound")

		// Deleting twice is fine
		assert.NoError(t, store.Delete(ctx, name))
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 commands
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, domain.Command{Name: id2})
		_ = store.Save(ctx, domain.Command{Name: id1})

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})
}
