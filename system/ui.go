package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/terminal"
)

// UIHitTestSystem schedules the command of every clickable under a released left click
// Runs immediate so the commands it schedules are visible to the rest of the input stage
type UIHitTestSystem struct {
	log *zap.Logger
}

func NewUIHitTestSystem(log *zap.Logger) *UIHitTestSystem {
	return &UIHitTestSystem{log: log.Named("ui")}
}

func (s *UIHitTestSystem) Name() string        { return "ui_hit_test" }
func (s *UIHitTestSystem) Stage() engine.Stage { return engine.StageInput }
func (s *UIHitTestSystem) Immediate() bool     { return true }

func (s *UIHitTestSystem) Update(w *engine.World, _ time.Duration) {
	releases := engine.StoreOf[component.MouseReleasedComponent](w)
	if releases.Len() == 0 {
		return
	}
	size := engine.MustGetResource[component.WindowSizeResource](w)
	cam := engine.MustGetResource[component.MainCameraResource](w)
	sizes := engine.StoreOf[component.SizeComponent](w)
	transforms := engine.StoreOf[component.TransformComponent](w)

	releases.Each(func(_ core.Entity, m *component.MouseReleasedComponent) {
		if m.Button != terminal.MouseBtnLeft {
			return
		}
		at := cam.View.PixelToWorld(m.Position, size.Current)
		engine.StoreOf[component.ClickableComponent](w).Each(func(e core.Entity, c *component.ClickableComponent) {
			t, ok := transforms.Get(e)
			if !ok {
				return
			}
			sz, ok := sizes.Get(e)
			if !ok {
				return
			}
			if !(core.Rect{Pos: t.Position, Size: sz.Size}).Contains(at) {
				return
			}
			cmd, ok := c.OnClick.(engine.Command)
			if !ok {
				s.log.Warn("clickable without command", zap.Stringer("entity", e))
				return
			}
			engine.Schedule(w, cmd)
		})
	})
}
