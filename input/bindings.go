package input

import (
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/terminal"
)

// Bindings maps input keys to the prefab entity instantiated when the key fires
// Iteration order is unspecified; consumers must not depend on it
type Bindings struct {
	entries  map[Key]core.Entity
	DeadZone float64
}

func NewBindings() *Bindings {
	return &Bindings{
		entries:  make(map[Key]core.Entity),
		DeadZone: DefaultDeadZone,
	}
}

// Bind associates key with prefab, replacing any previous binding
func (b *Bindings) Bind(key Key, prefab core.Entity) *Bindings {
	b.entries[key] = prefab
	return b
}

func (b *Bindings) Unbind(key Key) {
	delete(b.entries, key)
}

func (b *Bindings) Lookup(key Key) (core.Entity, bool) {
	if b == nil {
		return core.NoEntity, false
	}
	p, ok := b.entries[key]
	return p, ok
}

func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Each visits every binding until fn returns false
func (b *Bindings) Each(fn func(key Key, prefab core.Entity) bool) {
	if b == nil {
		return
	}
	for k, p := range b.entries {
		if !fn(k, p) {
			return
		}
	}
}

// Active returns the prefabs of every binding whose key is currently activated
func (b *Bindings) Active(state terminal.InputState) []core.Entity {
	var out []core.Entity
	b.Each(func(k Key, p core.Entity) bool {
		if k.Activated(state, b.DeadZone) {
			out = append(out, p)
		}
		return true
	})
	return out
}
