package ecs

import "sort"

// Removable is implemented by every component store so the Registry can
// strip an entity from all of them at once.
type Removable interface {
	Remove(id EntityID)
}

// Store is a typed map of per-entity components.
type Store[T any] struct {
	data map[EntityID]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[EntityID]*T, 256),
	}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Snapshot copies the components accepted by keep (all of them when keep is
// nil) into a slice ordered by entity id. The slice is detached from the
// store, so callers may add or remove entities while walking it.
func (s *Store[T]) Snapshot(keep func(*T) bool) []*T {
	ids := make([]EntityID, 0, len(s.data))
	for id, c := range s.data {
		if keep == nil || keep(c) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*T, len(ids))
	for i, id := range ids {
		out[i] = s.data[id]
	}
	return out
}
