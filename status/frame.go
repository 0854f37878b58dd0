package status

import (
	"sync/atomic"
	"time"
)

// Frame metric keys
const (
	KeyFrameCount    = "frame.count"
	KeyFrameDeltaMs  = "frame.dt_ms"
	KeyFrameFPS      = "frame.fps"
	KeyWorldEntities = "world.entities"
	KeyEventsDropped = "events.dropped"
	KeyActiveState   = "state.active"
	KeyTopScene      = "scene.top"
)

// fpsSmoothing weights the newest frame in the reported FPS average
const fpsSmoothing = 0.1

// FrameMeter publishes the frame-boundary mark
// Pointers are resolved once; Mark is allocation-free
type FrameMeter struct {
	count    *atomic.Int64
	dtMs     *AtomicFloat
	fps      *AtomicFloat
	entities *atomic.Int64
}

func NewFrameMeter(reg *Registry) *FrameMeter {
	return &FrameMeter{
		count:    reg.Ints.Get(KeyFrameCount),
		dtMs:     reg.Floats.Get(KeyFrameDeltaMs),
		fps:      reg.Floats.Get(KeyFrameFPS),
		entities: reg.Ints.Get(KeyWorldEntities),
	}
}

// Mark records a completed frame and returns the new frame count
func (m *FrameMeter) Mark(dt time.Duration, entities int) int64 {
	ms := float64(dt) / float64(time.Millisecond)
	m.dtMs.Set(ms)
	if dt > 0 {
		m.fps.Smooth(float64(time.Second)/float64(dt), fpsSmoothing)
	}
	m.entities.Store(int64(entities))
	return m.count.Add(1)
}

// Frames returns the number of completed frames
func (m *FrameMeter) Frames() int64 {
	return m.count.Load()
}
