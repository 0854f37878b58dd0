package component

import (
	"time"

	"github.com/lixenwraith/stagecraft/render"
)

// ParticleEmitterComponent spawns child particles at RatePerSecond up to MaxParticles alive
type ParticleEmitterComponent struct {
	RatePerSecond float64
	MaxParticles  int
	MinLifetime   time.Duration
	MaxLifetime   time.Duration
	MinVelocity   float64
	MaxVelocity   float64
	Style         render.Style
	Enabled       bool

	accumulator float64
}

// Accumulate adds dt worth of spawns and returns the whole particles now due
func (e *ParticleEmitterComponent) Accumulate(dt time.Duration) int {
	e.accumulator += e.RatePerSecond * dt.Seconds()
	n := int(e.accumulator)
	e.accumulator -= float64(n)
	return n
}

type ParticleComponent struct{}
