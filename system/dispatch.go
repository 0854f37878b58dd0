package system

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/input"
)

// EventDispatchSystem resolves key and mouse presses against scene event bindings
// Among active, unpaused scenes that bind the key, only the highest depth instantiates its prefab
type EventDispatchSystem struct {
	log *zap.Logger
}

func NewEventDispatchSystem(log *zap.Logger) *EventDispatchSystem {
	return &EventDispatchSystem{log: log.Named("dispatch")}
}

func (s *EventDispatchSystem) Name() string        { return "event_dispatch" }
func (s *EventDispatchSystem) Stage() engine.Stage { return engine.StageInput }

func (s *EventDispatchSystem) Update(w *engine.World, _ time.Duration) {
	engine.StoreOf[component.KeyPressedComponent](w).Each(func(_ core.Entity, k *component.KeyPressedComponent) {
		s.Dispatch(w, input.Keyboard(k.Key.Code))
	})
	engine.StoreOf[component.MousePressedComponent](w).Each(func(_ core.Entity, m *component.MousePressedComponent) {
		s.Dispatch(w, input.Mouse(m.Button))
	})
}

type boundScene struct {
	root   core.Entity
	depth  uint64
	prefab core.Entity
}

// Dispatch instantiates the prefab bound to key in the topmost scene that binds it
// The instance is parented to that scene's root; reports false when no scene claims the key
func (s *EventDispatchSystem) Dispatch(w *engine.World, key input.Key) (core.Entity, bool) {
	roots := engine.StoreOf[component.SceneRootComponent](w)
	paused := engine.StoreOf[component.ScenePausedComponent](w)
	depths := engine.StoreOf[component.SceneDepthComponent](w)

	var candidates []boundScene
	engine.StoreOf[component.EventBindingsComponent](w).Each(func(root core.Entity, b *component.EventBindingsComponent) {
		if !roots.Has(root) || paused.Has(root) {
			return
		}
		d, ok := depths.Get(root)
		if !ok {
			return
		}
		prefab, ok := b.Bindings.Lookup(key)
		if !ok {
			return
		}
		candidates = append(candidates, boundScene{root: root, depth: d.Depth, prefab: prefab})
	})
	if len(candidates) == 0 {
		return core.NoEntity, false
	}

	slices.SortFunc(candidates, func(a, b boundScene) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})

	top := candidates[0]
	if !w.Alive(top.prefab) || !w.IsPrefab(top.prefab) {
		s.log.Warn("binding points at a missing prefab", zap.Stringer("key", key), zap.Stringer("prefab", top.prefab))
		return core.NoEntity, false
	}
	e := w.Instantiate(top.prefab)
	w.SetParent(e, top.root)
	s.log.Debug("event dispatched",
		zap.Stringer("key", key),
		zap.Uint64("depth", top.depth),
		zap.Stringer("entity", e))
	return e, true
}
