package registry

import (
	"sort"
	"sync"

	"github.com/aretw0/argot/pkg/schema"
)

// Registry maps type names to descriptors.
// Every engine owns its own registry; types are usually registered once at
// startup and only read while parsing.
type Registry struct {
	mu    sync.RWMutex
	types map[string]schema.Descriptor
}

// New creates a registry holding the default descriptors (string and number).
func New() *Registry {
	r := NewEmpty()
	for _, d := range schema.Defaults() {
		r.types[d.Name] = d
	}
	return r
}

// NewEmpty creates a registry without any descriptor.
func NewEmpty() *Registry {
	return &Registry{
		types: make(map[string]schema.Descriptor),
	}
}

// Register adds a descriptor to the registry.
// If a descriptor with the same name exists, it is overwritten.
// A descriptor without name, check or exec is rejected with a *schema.DescriptorError
// and the registry is left untouched.
func (r *Registry) Register(d schema.Descriptor) error {
	if err := d.Valid(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[d.Name] = d
	return nil
}

// Find looks up a descriptor by exact name.
func (r *Registry) Find(name string) (schema.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[name]
	return d, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Find(name)
	return ok
}

// Remove deletes a descriptor. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, name)
}

// Names returns the registered type names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Descriptors returns a snapshot of every descriptor, ordered by name.
func (r *Registry) Descriptors() []schema.Descriptor {
	names := r.Names()
	out := make([]schema.Descriptor, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		if d, ok := r.types[name]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
