package ecs

import "fmt"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on despawn.
type Removable interface {
	Remove(id EntityID)
}

// Store is a generic typed component store. Components live behind pointers so
// systems mutate them in place. Iteration order is the dense slice order, which
// depends only on the sequence of Set/Remove calls: two runs fed the same
// inputs visit entities in the same order.
type Store[T any] struct {
	index map[EntityID]int
	ids   []EntityID
	data  []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		index: make(map[EntityID]int, 64),
		ids:   make([]EntityID, 0, 64),
		data:  make([]*T, 0, 64),
	}
}

// Set attaches c to id, replacing any previous value.
func (s *Store[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

// MustGet returns the component of id and panics when it is missing. Used where
// a missing component means a broken ownership invariant, not a normal miss.
func (s *Store[T]) MustGet(id EntityID) *T {
	c, ok := s.Get(id)
	if !ok {
		var zero T
		panic(fmt.Sprintf("ecs: entity %s has no %T component", id, zero))
	}
	return c
}

// Remove detaches the component of id. Swap-remove: the last element takes the
// freed slot.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.data[i] = s.data[last]
		s.index[s.ids[i]] = i
	}
	s.ids[last] = 0
	s.data[last] = nil
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// Each visits every component in store order. fn must not add or remove
// components of this store; collect IDs and act after the loop instead.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.ids {
		fn(id, s.data[i])
	}
}

// Single returns the only entity in the store. Zero or several matches is a
// precondition violation and panics: callers rely on exactly one instance.
func (s *Store[T]) Single() (EntityID, *T) {
	if len(s.ids) != 1 {
		var zero T
		panic(fmt.Sprintf("ecs: expected exactly one %T, found %d", zero, len(s.ids)))
	}
	return s.ids[0], s.data[0]
}
