package component

import (
	"time"

	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/render"
)

// CameraShakeIntentComponent requests a shake; merged into any running shake
type CameraShakeIntentComponent struct {
	Intensity float64
	Duration  time.Duration
}

type CameraShakeComponent struct {
	Intensity      float64
	Remaining      time.Duration
	OriginalCenter core.Vec2
	Offset         core.Vec2
}

// MainCameraResource is the view handed to the renderer each frame
type MainCameraResource struct {
	View render.View
}
