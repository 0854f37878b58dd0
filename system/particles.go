package system

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/parameter"
)

// ParticleEmitterSystem spawns short-lived particles as children of each enabled emitter
// Live particles per emitter never exceed MaxParticles
type ParticleEmitterSystem struct {
	rng *rand.Rand
}

func NewParticleEmitterSystem(rng *rand.Rand) *ParticleEmitterSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ParticleEmitterSystem{rng: rng}
}

func (s *ParticleEmitterSystem) Name() string        { return "particles" }
func (s *ParticleEmitterSystem) Stage() engine.Stage { return engine.StageUpdate }

func (s *ParticleEmitterSystem) Update(w *engine.World, dt time.Duration) {
	particles := engine.StoreOf[component.ParticleComponent](w)

	engine.Each2(w, func(e core.Entity, em *component.ParticleEmitterComponent, t *component.TransformComponent) {
		if !em.Enabled {
			return
		}
		due := em.Accumulate(dt)
		if due <= 0 {
			return
		}
		live := 0
		for _, c := range w.Children(e) {
			if particles.Has(c) {
				live++
			}
		}
		due = min(due, em.MaxParticles-live)
		origin := t.Position
		for range due {
			s.spawn(w, e, em, origin)
		}
	})
}

func (s *ParticleEmitterSystem) spawn(w *engine.World, emitter core.Entity, em *component.ParticleEmitterComponent, origin core.Vec2) {
	speed := s.uniform(em.MinVelocity, em.MaxVelocity)
	lifetime := time.Duration(s.uniform(float64(em.MinLifetime), float64(em.MaxLifetime)))

	p := w.CreateChild(emitter)
	engine.StoreOf[component.ParticleComponent](w).Set(p, component.ParticleComponent{})
	engine.StoreOf[component.TransformComponent](w).Set(p, component.TransformComponent{Position: origin})
	engine.StoreOf[component.SizeComponent](w).Set(p, component.SizeComponent{Size: core.Vec2{X: 1, Y: 1}})
	engine.StoreOf[component.VelocityComponent](w).Set(p, component.VelocityComponent{
		Velocity: core.Vec2{X: s.uniform(-speed, speed), Y: s.uniform(-speed, speed)},
	})
	engine.StoreOf[component.LifetimeComponent](w).Set(p, component.LifetimeComponent{Remaining: lifetime})
	engine.StoreOf[component.RectangleComponent](w).Set(p, component.RectangleComponent{Style: em.Style})
	engine.StoreOf[component.ZOrderComponent](w).Set(p, component.ZOrderComponent{Z: parameter.ParticleZOrder})
}

func (s *ParticleEmitterSystem) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
