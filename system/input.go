package system

import (
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/input"
	"github.com/lixenwraith/stagecraft/terminal"
)

// InputIntentSystem turns held input into one-frame command entities for every possessed entity
// Each active binding yields its own command per target; binding order is unspecified
type InputIntentSystem struct {
	state terminal.InputState
}

func NewInputIntentSystem(state terminal.InputState) *InputIntentSystem {
	return &InputIntentSystem{state: state}
}

func (s *InputIntentSystem) Name() string        { return "input_intent" }
func (s *InputIntentSystem) Stage() engine.Stage { return engine.StageInput }

func (s *InputIntentSystem) Update(w *engine.World, _ time.Duration) {
	res, ok := engine.GetResource[component.InputBindingsResource](w)
	if !ok || res.Bindings.Len() == 0 {
		return
	}
	possessed := engine.StoreOf[component.PossessedByPlayerComponent](w)
	if possessed.Len() == 0 {
		return
	}

	commands := engine.StoreOf[component.CommandComponent](w)
	targets := engine.StoreOf[component.CommandTargetComponent](w)

	res.Bindings.Each(func(key input.Key, prefab core.Entity) bool {
		if !key.Activated(s.state, res.Bindings.DeadZone) || !w.IsPrefab(prefab) {
			return true
		}
		possessed.Each(func(target core.Entity, _ *component.PossessedByPlayerComponent) {
			e := w.Instantiate(prefab)
			w.OneFrame(e)
			if !commands.Has(prefab) {
				commands.Set(e, component.CommandComponent{Action: key.String()})
			}
			targets.Set(e, component.CommandTargetComponent{Target: target})
		})
		return true
	})
}

// MousePositionSystem copies the window pointer position into the MousePosition singleton
type MousePositionSystem struct {
	window terminal.Window
}

func NewMousePositionSystem(window terminal.Window) *MousePositionSystem {
	return &MousePositionSystem{window: window}
}

func (s *MousePositionSystem) Name() string        { return "mouse_position" }
func (s *MousePositionSystem) Stage() engine.Stage { return engine.StageInput }

func (s *MousePositionSystem) Update(w *engine.World, _ time.Duration) {
	engine.MustGetResource[component.MousePositionResource](w).Position = s.window.MousePosition()
}
