package component

import (
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/terminal"
)

// WindowResizeIntentComponent describes a window resize for this frame
// Offset centers the reference area inside the new size at Scale
type WindowResizeIntentComponent struct {
	OldSize core.Vec2u
	NewSize core.Vec2u
	Scale   float64
	Offset  core.Vec2
}

type FocusLostComponent struct{}

type FocusGainedComponent struct{}

type KeyPressedComponent struct {
	Key terminal.KeyEvent
}

type KeyReleasedComponent struct {
	Key terminal.KeyEvent
}

type MousePressedComponent struct {
	Button   terminal.MouseButton
	Position core.Vec2
}

type MouseReleasedComponent struct {
	Button   terminal.MouseButton
	Position core.Vec2
}

// WindowSizeResource is the current window size and the logical game size it scales from
type WindowSizeResource struct {
	Current   core.Vec2u
	Reference core.Vec2u
}

// MousePositionResource is the last known pointer position in window cells
type MousePositionResource struct {
	Position core.Vec2
}
