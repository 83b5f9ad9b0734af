package ecs

import (
	"reflect"
	"sync/atomic"
)

// ComponentID identifies a component store or resource in access declarations.
type ComponentID uint32

var nextComponentID atomic.Uint32

func newComponentID() ComponentID {
	return ComponentID(nextComponentID.Add(1))
}

// Component is anything a system can declare read or write access to.
type Component interface {
	ComponentID() ComponentID
	Name() string
}

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Component
	Remove(id EntityID)
}

// Store is a sparse-set store for one component type. Rows live in a dense
// slice next to a parallel enabled column, so toggling a flag never moves
// data and iteration stays linear.
//
// Set and Remove are structural and must only run at command playback or
// setup. Get, Enabled, SetEnabled and the Each variants may run from
// concurrent systems as long as no two goroutines touch the same row.
type Store[T any] struct {
	id      ComponentID
	name    string
	index   map[EntityID]int
	ids     []EntityID
	rows    []T
	enabled []bool
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		id:      newComponentID(),
		name:    reflect.TypeFor[T]().Name(),
		index:   make(map[EntityID]int, 256),
		ids:     make([]EntityID, 0, 256),
		rows:    make([]T, 0, 256),
		enabled: make([]bool, 0, 256),
	}
}

func (s *Store[T]) ComponentID() ComponentID { return s.id }
func (s *Store[T]) Name() string             { return s.name }

// Set inserts or overwrites the row for id. New rows start enabled.
func (s *Store[T]) Set(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.rows[i] = c
		return
	}
	s.index[id] = len(s.rows)
	s.ids = append(s.ids, id)
	s.rows = append(s.rows, c)
	s.enabled = append(s.enabled, true)
}

// Get returns a pointer into the dense column. The pointer stays valid until
// the next structural change to this store.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.rows[i], true
}

// Remove swaps the last row into the removed slot.
func (s *Store[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.rows) - 1
	if i != last {
		s.rows[i] = s.rows[last]
		s.ids[i] = s.ids[last]
		s.enabled[i] = s.enabled[last]
		s.index[s.ids[i]] = i
	}
	var zero T
	s.rows[last] = zero
	s.rows = s.rows[:last]
	s.ids = s.ids[:last]
	s.enabled = s.enabled[:last]
	delete(s.index, id)
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Enabled reports whether id has the component and it is switched on.
func (s *Store[T]) Enabled(id EntityID) bool {
	i, ok := s.index[id]
	return ok && s.enabled[i]
}

// SetEnabled flips the enabled column in place. It is not a structural
// change. Returns false when id has no row.
func (s *Store[T]) SetEnabled(id EntityID, on bool) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.enabled[i] = on
	return true
}

func (s *Store[T]) Len() int {
	return len(s.rows)
}

// Each visits every row regardless of its enabled state, in dense order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.rows {
		fn(s.ids[i], &s.rows[i])
	}
}

// EachEnabled visits only enabled rows.
func (s *Store[T]) EachEnabled(fn func(EntityID, *T)) {
	for i := range s.rows {
		if s.enabled[i] {
			fn(s.ids[i], &s.rows[i])
		}
	}
}

// EachRange visits dense rows [lo, hi), clamped to the store size. Disjoint
// ranges may be walked from different goroutines.
func (s *Store[T]) EachRange(lo, hi int, fn func(EntityID, *T)) {
	if hi > len(s.rows) {
		hi = len(s.rows)
	}
	for i := max(lo, 0); i < hi; i++ {
		fn(s.ids[i], &s.rows[i])
	}
}

// Entities returns a copy of the ids with a row, enabled or not.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

// First returns the first enabled row. Used for singleton components.
func (s *Store[T]) First() (EntityID, *T, bool) {
	for i := range s.rows {
		if s.enabled[i] {
			return s.ids[i], &s.rows[i], true
		}
	}
	return 0, nil, false
}

// Resource is a world-level value that is not keyed by entity but still
// takes part in access declarations (per-tick event frames, for example).
type Resource[T any] struct {
	id    ComponentID
	name  string
	Value T
}

func NewResource[T any]() *Resource[T] {
	return &Resource[T]{
		id:   newComponentID(),
		name: reflect.TypeFor[T]().Name(),
	}
}

func (r *Resource[T]) ComponentID() ComponentID { return r.id }
func (r *Resource[T]) Name() string             { return r.name }
