package ecs

// Registry tracks all component stores so a despawn can strip an entity from
// every one of them.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
	}
}

// Register adds a component store to the registry.
func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// Attach creates a store for T and registers it in one call.
func Attach[T any](r *Registry) *Store[T] {
	s := NewStore[T]()
	r.Register(s)
	return s
}
