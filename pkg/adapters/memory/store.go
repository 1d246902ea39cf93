package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/argot/pkg/domain"
)

// Store implements ports.CommandStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Command
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Command),
	}
}

// NewFromCommands creates a store pre-populated with cmds.
// It fails on the first command that cannot be stored.
func NewFromCommands(cmds ...domain.Command) (*Store, error) {
	s := NewStore()
	for _, cmd := range cmds {
		if err := s.Save(context.Background(), cmd); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save stores a copy of the command.
func (s *Store) Save(ctx context.Context, cmd domain.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Deep copy to ensure isolation, similar to serialization
	copied := cmd.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[cmd.Name] = copied
	return nil
}

// Load retrieves a copy of the command.
func (s *Store) Load(ctx context.Context, name string) (domain.Command, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cmd, ok := s.data[name]
	if !ok {
		return domain.Command{}, domain.ErrCommandNotFound
	}

	// Copy on read so callers can't mutate the stored usage
	return cmd.Clone(), nil
}

// Delete removes the command.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored command names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}
