package main

import (
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/input"
	"github.com/lixenwraith/stagecraft/terminal"
)

// playerAcceleration is applied per frame a move key is held, in centimeters per second squared
const playerAcceleration = 60.0

// playerControlSystem turns move commands into acceleration on their target
// Targets inside a paused scene ignore input
type playerControlSystem struct {
	directions map[string]core.Vec2
}

func newPlayerControlSystem() *playerControlSystem {
	dirs := make(map[string]core.Vec2, len(moveDirections))
	for k, v := range moveDirections {
		dirs[input.Keyboard(terminal.NamedKey(k)).String()] = v
	}
	return &playerControlSystem{directions: dirs}
}

func (s *playerControlSystem) Name() string        { return "player_control" }
func (s *playerControlSystem) Stage() engine.Stage { return engine.StageUpdate }

func (s *playerControlSystem) Update(w *engine.World, _ time.Duration) {
	accel := engine.StoreOf[component.AccelerationComponent](w)
	paused := engine.StoreOf[component.ScenePausedComponent](w)

	engine.Each2(w, func(_ core.Entity, c *component.CommandComponent, t *component.CommandTargetComponent) {
		dir, ok := s.directions[c.Action]
		if !ok || !w.Alive(t.Target) {
			return
		}
		if _, inPaused := w.Ancestor(t.Target, paused.Has); inPaused {
			return
		}
		a, ok := accel.Get(t.Target)
		if !ok {
			return
		}
		a.Acceleration = a.Acceleration.Add(dir.Scale(playerAcceleration))
	})
}

// boundsSystem keeps moving circles inside the reference area, reflecting their velocity
type boundsSystem struct{}

func (s *boundsSystem) Name() string        { return "bounds" }
func (s *boundsSystem) Stage() engine.Stage { return engine.StagePostUpdate }

func (s *boundsSystem) Update(w *engine.World, _ time.Duration) {
	ref := engine.MustGetResource[component.WindowSizeResource](w).Reference.ToVec2()
	radii := engine.StoreOf[component.RadiusComponent](w)

	engine.Each2(w, func(e core.Entity, t *component.TransformComponent, v *component.VelocityComponent) {
		r, ok := radii.Get(e)
		if !ok {
			return
		}
		lo := core.Vec2{X: r.Radius, Y: r.Radius}
		hi := ref.Sub(lo)
		if t.Position.X < lo.X || t.Position.X > hi.X {
			t.Position.X = max(lo.X, min(hi.X, t.Position.X))
			v.Velocity.X = -v.Velocity.X
		}
		if t.Position.Y < lo.Y || t.Position.Y > hi.Y {
			t.Position.Y = max(lo.Y, min(hi.Y, t.Position.Y))
			v.Velocity.Y = -v.Velocity.Y
		}
	})
}
