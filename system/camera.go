package system

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/render"
)

// CameraViewportSystem refits the main camera viewport when the window is resized
// Pillarbox when the window is wider than the game, letterbox otherwise
type CameraViewportSystem struct{}

func NewCameraViewportSystem() *CameraViewportSystem {
	return &CameraViewportSystem{}
}

func (s *CameraViewportSystem) Name() string        { return "camera_viewport" }
func (s *CameraViewportSystem) Stage() engine.Stage { return engine.StageInput }

func (s *CameraViewportSystem) Update(w *engine.World, _ time.Duration) {
	intents := engine.StoreOf[component.WindowResizeIntentComponent](w)
	if intents.Len() == 0 {
		return
	}
	size := engine.MustGetResource[component.WindowSizeResource](w)
	cam := engine.MustGetResource[component.MainCameraResource](w)
	intents.Each(func(_ core.Entity, _ *component.WindowResizeIntentComponent) {
		cam.View.Viewport = render.LetterboxViewport(size.Current, size.Reference)
	})
}

// CameraShakeIntentSystem merges shake requests into the running shake or starts one
type CameraShakeIntentSystem struct{}

func NewCameraShakeIntentSystem() *CameraShakeIntentSystem {
	return &CameraShakeIntentSystem{}
}

func (s *CameraShakeIntentSystem) Name() string        { return "camera_shake_intent" }
func (s *CameraShakeIntentSystem) Stage() engine.Stage { return engine.StageUpdate }

func (s *CameraShakeIntentSystem) Update(w *engine.World, _ time.Duration) {
	shakes := engine.StoreOf[component.CameraShakeComponent](w)
	var started *component.CameraShakeComponent
	engine.StoreOf[component.CameraShakeIntentComponent](w).Each(func(e core.Entity, intent *component.CameraShakeIntentComponent) {
		shake := started
		if _, running, ok := shakes.First(); ok {
			shake = running
		}
		if shake != nil {
			shake.Intensity = max(shake.Intensity, intent.Intensity)
			shake.Remaining = max(shake.Remaining, intent.Duration)
		} else {
			cam := engine.MustGetResource[component.MainCameraResource](w)
			started = &component.CameraShakeComponent{
				Intensity:      intent.Intensity,
				Remaining:      intent.Duration,
				OriginalCenter: cam.View.Center,
			}
		}
		w.Destroy(e)
	})
	if started != nil {
		shakes.Set(w.Create(), *started)
	}
}

// CameraShakeSystem offsets the main camera by a random amount up to the shake intensity
// and restores the original center once the shake expires
type CameraShakeSystem struct {
	rng *rand.Rand
}

func NewCameraShakeSystem(rng *rand.Rand) *CameraShakeSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &CameraShakeSystem{rng: rng}
}

func (s *CameraShakeSystem) Name() string        { return "camera_shake" }
func (s *CameraShakeSystem) Stage() engine.Stage { return engine.StagePreStore }

func (s *CameraShakeSystem) Update(w *engine.World, dt time.Duration) {
	engine.StoreOf[component.CameraShakeComponent](w).Each(func(e core.Entity, shake *component.CameraShakeComponent) {
		cam := engine.MustGetResource[component.MainCameraResource](w)
		shake.Remaining -= dt
		if shake.Remaining <= 0 {
			cam.View.Center = shake.OriginalCenter
			w.Destroy(e)
			return
		}
		shake.Offset = core.Vec2{
			X: (s.rng.Float64() - 0.5) * 2 * shake.Intensity,
			Y: (s.rng.Float64() - 0.5) * 2 * shake.Intensity,
		}
		cam.View.Center = shake.OriginalCenter.Add(shake.Offset)
	})
}

// ApplyCameraSystem hands the main camera view to the renderer
type ApplyCameraSystem struct {
	renderer render.Renderer
}

func NewApplyCameraSystem(r render.Renderer) *ApplyCameraSystem {
	return &ApplyCameraSystem{renderer: r}
}

func (s *ApplyCameraSystem) Name() string        { return "apply_camera" }
func (s *ApplyCameraSystem) Stage() engine.Stage { return engine.StagePreStore }

func (s *ApplyCameraSystem) Update(w *engine.World, _ time.Duration) {
	s.renderer.SetView(engine.MustGetResource[component.MainCameraResource](w).View)
}
