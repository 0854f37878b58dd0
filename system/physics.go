package system

import (
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
)

// PhysicsSystem integrates gravity, friction, acceleration and movement, then
// resolves circle-circle collisions, in that order every frame
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Name() string        { return "physics" }
func (s *PhysicsSystem) Stage() engine.Stage { return engine.StageUpdate }

func (s *PhysicsSystem) Update(w *engine.World, dt time.Duration) {
	sec := dt.Seconds()
	settings := engine.MustGetResource[component.GravitySettingsResource](w)

	if settings.Enabled {
		engine.Each2(w, func(_ core.Entity, g *component.GravityComponent, v *component.VelocityComponent) {
			v.Velocity = v.Velocity.Add(g.Gravity.Scale(settings.PixelsPerCentimeter * sec))
		})
	}

	engine.Each2(w, func(_ core.Entity, f *component.FrictionComponent, v *component.VelocityComponent) {
		v.Velocity = v.Velocity.Scale(max(0, 1-f.Friction*sec))
	})

	engine.Each2(w, func(_ core.Entity, a *component.AccelerationComponent, v *component.VelocityComponent) {
		v.Velocity = v.Velocity.Add(a.Acceleration.Scale(settings.PixelsPerCentimeter * sec))
		a.Acceleration = core.Vec2{}
	})

	engine.Each2(w, func(_ core.Entity, t *component.TransformComponent, v *component.VelocityComponent) {
		t.Position = t.Position.Add(v.Velocity.Scale(sec))
	})

	s.collideCircles(w)
}

type circleBody struct {
	t *component.TransformComponent
	v *component.VelocityComponent
	r float64
}

// collideCircles exchanges the normal velocity component of approaching circles
// and pushes overlapping pairs apart by half the overlap each
func (s *PhysicsSystem) collideCircles(w *engine.World) {
	velocities := engine.StoreOf[component.VelocityComponent](w)
	radii := engine.StoreOf[component.RadiusComponent](w)

	var bodies []circleBody
	engine.Each2(w, func(e core.Entity, t *component.TransformComponent, c *component.ColliderComponent) {
		if c.Shape != component.ColliderCircle {
			return
		}
		v, ok := velocities.Get(e)
		if !ok {
			return
		}
		r, ok := radii.Get(e)
		if !ok {
			return
		}
		bodies = append(bodies, circleBody{t: t, v: v, r: r.Radius})
	})

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			resolveCircles(bodies[i], bodies[j])
		}
	}
}

func resolveCircles(a, b circleBody) {
	diff := b.t.Position.Sub(a.t.Position)
	dist := diff.Len()
	sum := a.r + b.r
	if dist > sum || dist == 0 {
		return
	}
	normal := diff.Normalized()
	vn := b.v.Velocity.Sub(a.v.Velocity).Dot(normal)
	if vn > 0 {
		return
	}
	a.v.Velocity = a.v.Velocity.Add(normal.Scale(vn))
	b.v.Velocity = b.v.Velocity.Sub(normal.Scale(vn))

	overlap := sum - dist
	a.t.Position = a.t.Position.Sub(normal.Scale(overlap * 0.5))
	b.t.Position = b.t.Position.Add(normal.Scale(overlap * 0.5))
}
