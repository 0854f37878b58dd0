package system

import (
	"testing"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/terminal"
)

func TestUIHitTestSchedulesCommand(t *testing.T) {
	tests := []struct {
		name   string
		button terminal.MouseButton
		at     core.Vec2
		want   int
	}{
		{"inside", terminal.MouseBtnLeft, core.Vec2{X: 12, Y: 6}, 1},
		{"outside", terminal.MouseBtnLeft, core.Vec2{X: 40, Y: 6}, 0},
		{"right button", terminal.MouseBtnRight, core.Vec2{X: 12, Y: 6}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, win, _ := newTestContext(t)
			w := ctx.World
			ctx.Pipeline.Add(NewUIHitTestSystem(zap.NewNop()))

			button := w.Create()
			engine.StoreOf[component.TransformComponent](w).Set(button, component.TransformComponent{Position: core.Vec2{X: 10, Y: 5}})
			engine.StoreOf[component.SizeComponent](w).Set(button, component.SizeComponent{Size: core.Vec2{X: 8, Y: 3}})
			engine.StoreOf[component.ClickableComponent](w).Set(button, component.ClickableComponent{OnClick: engine.RequestExit{}})

			win.Push(terminal.Event{Type: terminal.EventMouseReleased, Mouse: terminal.MouseEvent{Button: tt.button, Position: tt.at}})
			engine.NewGame(ctx).Frame(0)

			if got := ctx.ExitRequested(); got != (tt.want == 1) {
				t.Errorf("exit requested = %v, want %v", got, tt.want == 1)
			}
		})
	}
}

func TestUIHitTestIgnoresNonCommand(t *testing.T) {
	ctx, win, _ := newTestContext(t)
	w := ctx.World
	ctx.Pipeline.Add(NewUIHitTestSystem(zap.NewNop()))

	button := w.Create()
	engine.StoreOf[component.TransformComponent](w).Set(button, component.TransformComponent{})
	engine.StoreOf[component.SizeComponent](w).Set(button, component.SizeComponent{Size: core.Vec2{X: 4, Y: 4}})
	engine.StoreOf[component.ClickableComponent](w).Set(button, component.ClickableComponent{OnClick: "not a command"})

	win.Push(terminal.Event{Type: terminal.EventMouseReleased, Mouse: terminal.MouseEvent{Button: terminal.MouseBtnLeft, Position: core.Vec2{X: 1, Y: 1}}})
	engine.NewGame(ctx).Frame(0)

	if n := engine.StoreOf[engine.DeferredEvent](w).Len(); n != 0 {
		t.Errorf("%d commands scheduled for a non-command click", n)
	}
}
