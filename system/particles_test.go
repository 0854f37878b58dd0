package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
)

func TestParticleEmitterRespectsCap(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	w := ctx.World
	ctx.Pipeline.Add(NewParticleEmitterSystem(rand.New(rand.NewPCG(3, 4))))

	emitter := w.Create()
	engine.StoreOf[component.TransformComponent](w).Set(emitter, component.TransformComponent{Position: core.Vec2{X: 4, Y: 4}})
	engine.StoreOf[component.ParticleEmitterComponent](w).Set(emitter, component.ParticleEmitterComponent{
		RatePerSecond: 100,
		MaxParticles:  5,
		MinLifetime:   time.Second,
		MaxLifetime:   2 * time.Second,
		MaxVelocity:   3,
		Enabled:       true,
	})

	for range 3 {
		ctx.Pipeline.Progress(w, time.Second)
	}

	particles := engine.StoreOf[component.ParticleComponent](w)
	lifetimes := engine.StoreOf[component.LifetimeComponent](w)
	children := w.Children(emitter)
	if len(children) != 5 {
		t.Fatalf("emitter has %d particles, want cap 5", len(children))
	}
	for _, c := range children {
		if !particles.Has(c) {
			t.Errorf("child %s is not a particle", c)
		}
		l, ok := lifetimes.Get(c)
		if !ok || l.Remaining < time.Second || l.Remaining > 2*time.Second {
			t.Errorf("lifetime = %v, %v; want within emitter range", l, ok)
		}
	}
}

func TestParticleEmitterDisabled(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	w := ctx.World
	emitter := w.Create()
	engine.StoreOf[component.TransformComponent](w).Set(emitter, component.TransformComponent{})
	engine.StoreOf[component.ParticleEmitterComponent](w).Set(emitter, component.ParticleEmitterComponent{
		RatePerSecond: 100,
		MaxParticles:  5,
	})

	NewParticleEmitterSystem(nil).Update(w, time.Second)
	if n := len(w.Children(emitter)); n != 0 {
		t.Errorf("disabled emitter spawned %d particles", n)
	}
}

func TestParticleEmitterAccumulatesFractions(t *testing.T) {
	em := component.ParticleEmitterComponent{RatePerSecond: 10}
	total := 0
	for range 10 {
		total += em.Accumulate(25 * time.Millisecond)
	}
	if total != 2 {
		t.Errorf("spawned %d over 250ms at 10/s, want 2", total)
	}
}
