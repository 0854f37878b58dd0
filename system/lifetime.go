package system

import (
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
)

// LifetimeSystem ages every LifetimeComponent by the frame delta
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Name() string        { return "lifetime" }
func (s *LifetimeSystem) Stage() engine.Stage { return engine.StageUpdate }

func (s *LifetimeSystem) Update(w *engine.World, dt time.Duration) {
	engine.StoreOf[component.LifetimeComponent](w).Each(func(_ core.Entity, l *component.LifetimeComponent) {
		l.Remaining -= dt
	})
}

// LifetimeCullSystem destroys expired entities and every one-frame entity
type LifetimeCullSystem struct{}

func NewLifetimeCullSystem() *LifetimeCullSystem {
	return &LifetimeCullSystem{}
}

func (s *LifetimeCullSystem) Name() string        { return "lifetime_cull" }
func (s *LifetimeCullSystem) Stage() engine.Stage { return engine.StagePostUpdate }

func (s *LifetimeCullSystem) Update(w *engine.World, _ time.Duration) {
	engine.StoreOf[component.LifetimeComponent](w).Each(func(e core.Entity, l *component.LifetimeComponent) {
		if l.Remaining <= 0 {
			w.Destroy(e)
		}
	})
	engine.StoreOf[component.OneFrameComponent](w).Each(func(e core.Entity, _ *component.OneFrameComponent) {
		w.Destroy(e)
	})
}
