package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/argot/pkg/domain"
	"github.com/aretw0/argot/pkg/ports"
)

// Catalog is the on-disk layout of commands.yaml / commands.json.
type Catalog struct {
	Commands []domain.Command `yaml:"commands" json:"commands"`
}

// LoadCatalog reads a catalog file (YAML or JSON, chosen by extension).
// A missing file yields an empty catalog.
func LoadCatalog(path string) ([]domain.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Command{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes catalog bytes. ext selects the format; anything but
// ".json" is treated as YAML.
func ParseCatalog(data []byte, ext string) ([]domain.Command, error) {
	var cat Catalog
	if strings.ToLower(ext) == ".json" {
		if err := json.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cat); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
	}

	seen := make(map[string]bool, len(cat.Commands))
	for i, cmd := range cat.Commands {
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if seen[cmd.Name] {
			return nil, fmt.Errorf("catalog entry %d: %w: duplicate name %q", i, domain.ErrInvalidCommand, cmd.Name)
		}
		seen[cmd.Name] = true
	}

	sort.Slice(cat.Commands, func(i, j int) bool {
		return cat.Commands[i].Name < cat.Commands[j].Name
	})
	return cat.Commands, nil
}

// Seed saves every command into store, stopping at the first failure.
func Seed(ctx context.Context, store ports.CommandStore, cmds []domain.Command) error {
	for _, cmd := range cmds {
		if err := store.Save(ctx, cmd); err != nil {
			return fmt.Errorf("failed to seed %q: %w", cmd.Name, err)
		}
	}
	return nil
}
