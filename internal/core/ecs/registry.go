package ecs

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	stores []Removable
	byID   map[ComponentID]Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 16),
		byID:   make(map[ComponentID]Removable, 16),
	}
}

// Register adds a component store to the registry. Registering the same
// store twice is ignored.
func (r *Registry) Register(store Removable) {
	if _, ok := r.byID[store.ComponentID()]; ok {
		return
	}
	r.stores = append(r.stores, store)
	r.byID[store.ComponentID()] = store
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

func (r *Registry) Len() int { return len(r.stores) }

// Register creates a typed store and registers it with w in one step.
func Register[T any](w *World) *Store[T] {
	s := NewStore[T]()
	w.registry.Register(s)
	return s
}
