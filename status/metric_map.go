package status

import (
	"maps"
	"slices"
	"sync"
)

// MetricMap holds named metric cells of type T
// Callers resolve a cell once with Get and keep the pointer; cell access never locks
type MetricMap[T any] struct {
	mu    sync.RWMutex
	cells map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{cells: make(map[string]*T)}
}

// Get returns the cell for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if c, ok := m.Lookup(key); ok {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cells[key]
	if !ok {
		c = new(T)
		m.cells[key] = c
	}
	return c
}

// Lookup returns the cell for key without creating it
func (m *MetricMap[T]) Lookup(key string) (*T, bool) {
	m.mu.RLock()
	c, ok := m.cells[key]
	m.mu.RUnlock()
	return c, ok
}

func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.Lookup(key)
	return ok
}

// Keys returns the registered names sorted
func (m *MetricMap[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.cells))
}

// Range visits cells in key order over a snapshot; fn may call Get
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	m.mu.RLock()
	snap := maps.Clone(m.cells)
	m.mu.RUnlock()
	for _, k := range slices.Sorted(maps.Keys(snap)) {
		fn(k, snap[k])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}
