package graph

import (
	"sort"
	"sync"
)

// Registry provides named node lookup for definition-driven chain
// construction.
type Registry[S, U any] struct {
	mu  sync.RWMutex
	fns map[string]NodeFunc[S, U]
}

// NewRegistry creates a new empty Registry.
func NewRegistry[S, U any]() *Registry[S, U] {
	return &Registry[S, U]{fns: make(map[string]NodeFunc[S, U])}
}

// Register adds a node function under a name. Re-registering a name
// replaces the previous function.
func (r *Registry[S, U]) Register(name string, fn NodeFunc[S, U]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[name] = fn
}

// Get retrieves a node function by name.
func (r *Registry[S, U]) Get(name string) (NodeFunc[S, U], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[name]
	return fn, ok
}

// List returns sorted names of all registered node functions.
func (r *Registry[S, U]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
