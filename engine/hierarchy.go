package engine

import (
	"slices"

	"github.com/lixenwraith/stagecraft/core"
)

// SetParent attaches child under parent, replacing any previous parent
// Hierarchy changes apply immediately; only destruction is staged
func (w *World) SetParent(child, parent core.Entity) {
	w.mustBeAlive(child, "SetParent")
	w.mustBeAlive(parent, "SetParent")
	if child == parent {
		panic("SetParent: entity cannot parent itself")
	}
	w.detach(child)
	w.parent[child] = parent
	w.children[parent] = append(w.children[parent], child)
	if w.IsPrefab(parent) {
		// template parts are skipped by systems like their root
		w.prefabs[child] = ""
	}
}

// Parent returns the parent of e, if any
func (w *World) Parent(e core.Entity) (core.Entity, bool) {
	p, ok := w.parent[e]
	return p, ok
}

// Children returns a copy of e's direct children in attach order
func (w *World) Children(e core.Entity) []core.Entity {
	return slices.Clone(w.children[e])
}

// Ancestor walks up from e and returns the first entity (e included) matching pred
func (w *World) Ancestor(e core.Entity, pred func(core.Entity) bool) (core.Entity, bool) {
	for cur, ok := e, true; ok; cur, ok = w.parent[cur] {
		if pred(cur) {
			return cur, true
		}
	}
	return core.NoEntity, false
}

// DeleteChildren destroys every descendant of parent, leaving parent alive
// Staged like Destroy when called inside a staging scope
func (w *World) DeleteChildren(parent core.Entity) {
	for _, c := range w.Children(parent) {
		w.Destroy(c)
	}
}

func (w *World) detach(child core.Entity) {
	p, ok := w.parent[child]
	if !ok {
		return
	}
	delete(w.parent, child)
	siblings := w.children[p]
	if i := slices.Index(siblings, child); i >= 0 {
		siblings = slices.Delete(siblings, i, i+1)
	}
	if len(siblings) == 0 {
		delete(w.children, p)
		return
	}
	w.children[p] = siblings
}
