package engine

import (
	"fmt"
	"reflect"

	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/parameter"
)

// anyStore provides type-erased operations the World needs for lifecycle management
type anyStore interface {
	remove(e core.Entity) bool
	has(e core.Entity) bool
	copyTo(src, dst core.Entity)
	clear()
	typeName() string
}

// Store is the container for one component type
// Uses the sparse set pattern: dense values, dense entities, entity to slot index
type Store[T any] struct {
	w        *World
	name     string
	dense    []T
	entities []core.Entity
	index    map[core.Entity]int
}

func newStore[T any](w *World) *Store[T] {
	return &Store[T]{
		w:        w,
		name:     reflect.TypeFor[T]().String(),
		dense:    make([]T, 0, parameter.StoreCapacity),
		entities: make([]core.Entity, 0, parameter.StoreCapacity),
		index:    make(map[core.Entity]int, parameter.StoreCapacity),
	}
}

// StoreOf returns the store for T, registering it on first use
func StoreOf[T any](w *World) *Store[T] {
	t := reflect.TypeFor[T]()
	if s, ok := w.stores[t]; ok {
		return s.(*Store[T])
	}
	s := newStore[T](w)
	w.stores[t] = s
	w.storeOrder = append(w.storeOrder, s)
	return s
}

// Set inserts or replaces the component of e
// While the world is staging the write is queued until the scope ends
func (s *Store[T]) Set(e core.Entity, v T) {
	if s.w.Staging() {
		s.w.enqueue(func() { s.set(e, v) })
		return
	}
	s.set(e, v)
}

func (s *Store[T]) set(e core.Entity, v T) {
	if !s.w.pool.isAlive(e) {
		if s.w.merging {
			// queued against an entity destroyed earlier in the same merge
			return
		}
		panic(fmt.Sprintf("set %s on dead entity %s", s.name, e))
	}
	if i, ok := s.index[e]; ok {
		s.dense[i] = v
		return
	}
	s.index[e] = len(s.dense)
	s.dense = append(s.dense, v)
	s.entities = append(s.entities, e)
}

// Get returns a pointer into the store, valid until the next structural change
func (s *Store[T]) Get(e core.Entity) (*T, bool) {
	i, ok := s.index[e]
	if !ok {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *Store[T]) Has(e core.Entity) bool {
	_, ok := s.index[e]
	return ok
}

// Remove deletes the component of e, queued while staging
func (s *Store[T]) Remove(e core.Entity) {
	if s.w.Staging() {
		s.w.enqueue(func() { s.remove(e) })
		return
	}
	s.remove(e)
}

func (s *Store[T]) remove(e core.Entity) bool {
	i, ok := s.index[e]
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.entities[i] = s.entities[last]
		s.index[s.entities[i]] = i
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.entities = s.entities[:last]
	delete(s.index, e)
	return true
}

func (s *Store[T]) has(e core.Entity) bool { return s.Has(e) }
func (s *Store[T]) typeName() string       { return s.name }

func (s *Store[T]) copyTo(src, dst core.Entity) {
	if v, ok := s.Get(src); ok {
		s.Set(dst, *v)
	}
}

func (s *Store[T]) clear() {
	clear(s.dense)
	s.dense = s.dense[:0]
	s.entities = s.entities[:0]
	clear(s.index)
}

func (s *Store[T]) Len() int {
	return len(s.entities)
}

// Entities returns a copy of every entity holding T, prefabs included
func (s *Store[T]) Entities() []core.Entity {
	out := make([]core.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Each visits every non-prefab entity holding T inside a staging scope
// Structural changes made by fn apply when the outermost scope ends
func (s *Store[T]) Each(fn func(e core.Entity, v *T)) {
	s.w.BeginStaging()
	defer s.w.EndStaging()

	for _, e := range s.Entities() {
		if s.w.IsPrefab(e) {
			continue
		}
		if v, ok := s.Get(e); ok {
			fn(e, v)
		}
	}
}

// First returns the first non-prefab holder of T, for singleton-like components
func (s *Store[T]) First() (core.Entity, *T, bool) {
	for i, e := range s.entities {
		if !s.w.IsPrefab(e) {
			return e, &s.dense[i], true
		}
	}
	return core.NoEntity, nil, false
}
