package ecs

// Registry tracks every component store so destroyed entities can be
// removed from all of them.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 8),
	}
}

func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}
