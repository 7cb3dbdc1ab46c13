package engine

import (
	"github.com/mlange-42/ark/ecs"
)

// Store is a typed view of one component type over the ark world
// Get returns a pointer into ark storage; it stays valid until the entity's
// component set changes, so callers must not hold it across Set/Remove
type Store[T any] struct {
	world  *ecs.World
	m      *ecs.Map[T]
	filter *ecs.Filter1[T]
}

// NewStore registers T with the world and returns its store
func NewStore[T any](w *ecs.World) *Store[T] {
	return &Store[T]{
		world:  w,
		m:      ecs.NewMap[T](w),
		filter: ecs.NewFilter1[T](w),
	}
}

// Set inserts or overwrites the component of e
func (s *Store[T]) Set(e ecs.Entity, val T) {
	if !s.alive(e) {
		return
	}
	if s.m.Has(e) {
		*s.m.Get(e) = val
		return
	}
	s.m.Add(e, &val)
}

// Get returns the component of e for in-place mutation
func (s *Store[T]) Get(e ecs.Entity) (*T, bool) {
	if !s.alive(e) || !s.m.Has(e) {
		return nil, false
	}
	return s.m.Get(e), true
}

// Has reports whether e is alive and carries T
func (s *Store[T]) Has(e ecs.Entity) bool {
	return s.alive(e) && s.m.Has(e)
}

// Remove detaches T from e; no-op when absent
func (s *Store[T]) Remove(e ecs.Entity) {
	if s.Has(e) {
		s.m.Remove(e)
	}
}

// All returns every entity carrying T
// Collected up front so callers may destroy entities while iterating the result
func (s *Store[T]) All() []ecs.Entity {
	var out []ecs.Entity
	q := s.filter.Query()
	for q.Next() {
		out = append(out, q.Entity())
	}
	return out
}

// First returns any entity carrying T, for singleton roles
func (s *Store[T]) First() (ecs.Entity, bool) {
	q := s.filter.Query()
	if !q.Next() {
		return ecs.Entity{}, false
	}
	e := q.Entity()
	q.Close()
	return e, true
}

// Count returns the number of entities carrying T
func (s *Store[T]) Count() int {
	n := 0
	q := s.filter.Query()
	for q.Next() {
		n++
	}
	return n
}

// alive rejects the zero entity before asking the substrate
func (s *Store[T]) alive(e ecs.Entity) bool {
	return e != (ecs.Entity{}) && s.world.Alive(e)
}
