package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
)

// NewPrefab creates a named template entity
// Prefabs are skipped by Store.Each; Instantiate copies them onto live entities
// Registering a second prefab under the same name panics
func (w *World) NewPrefab(name string) core.Entity {
	if _, ok := w.prefabNames[name]; ok {
		panic(fmt.Sprintf("prefab %q already registered", name))
	}
	e := w.Create()
	w.prefabs[e] = name
	w.prefabNames[name] = e
	StoreOf[component.PrefabComponent](w).set(e, component.PrefabComponent{Name: name})
	w.log.Debug("prefab registered", zap.String("name", name), zap.Stringer("entity", e))
	return e
}

// Prefab looks up a template by name
func (w *World) Prefab(name string) (core.Entity, bool) {
	e, ok := w.prefabNames[name]
	return e, ok
}

// MustPrefab panics when the template is missing
func (w *World) MustPrefab(name string) core.Entity {
	e, ok := w.prefabNames[name]
	if !ok {
		panic(fmt.Sprintf("prefab %q not found", name))
	}
	return e
}

func (w *World) IsPrefab(e core.Entity) bool {
	_, ok := w.prefabs[e]
	return ok
}

// Instantiate creates a new entity carrying a copy of every component of prefab
// Children of the prefab are instantiated recursively under the new entity
// Component copies are staged like any Set; the entity itself exists immediately
func (w *World) Instantiate(prefab core.Entity) core.Entity {
	if !w.IsPrefab(prefab) {
		panic(fmt.Sprintf("Instantiate: %s is not a prefab", prefab))
	}
	return w.instantiate(prefab)
}

func (w *World) instantiate(src core.Entity) core.Entity {
	e := w.Create()
	prefabStore := StoreOf[component.PrefabComponent](w)
	for _, s := range w.storeOrder {
		if s == anyStore(prefabStore) {
			continue
		}
		s.copyTo(src, e)
	}
	for _, c := range w.Children(src) {
		child := w.instantiate(c)
		w.SetParent(child, e)
	}
	return e
}

// InstantiateNamed instantiates the prefab registered under name
func (w *World) InstantiateNamed(name string) (core.Entity, bool) {
	p, ok := w.Prefab(name)
	if !ok {
		w.log.Warn("prefab not found", zap.String("name", name))
		return core.NoEntity, false
	}
	return w.Instantiate(p), true
}
