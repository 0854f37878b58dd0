package system

import (
	"testing"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/render"
)

func TestRenderOrdersBySceneDepthThenZ(t *testing.T) {
	ctx, _, rec := newTestContext(t)
	w := ctx.World

	back := newTestScene("back")
	front := &otherScene{SceneBase: engine.NewSceneBase("front")}
	engine.AddScene(ctx.Scenes, back)
	engine.AddScene(ctx.Scenes, front)
	engine.LoadScene[*testScene](ctx.Scenes, engine.LoadAdditive)
	engine.LoadScene[*otherScene](ctx.Scenes, engine.LoadAdditive)

	text := func(parent core.Entity, label string, z float64) {
		var e core.Entity
		if parent.IsZero() {
			e = w.Create()
		} else {
			e = w.CreateChild(parent)
		}
		engine.StoreOf[component.TransformComponent](w).Set(e, component.TransformComponent{})
		engine.StoreOf[component.TextComponent](w).Set(e, component.TextComponent{Text: label})
		engine.StoreOf[component.ZOrderComponent](w).Set(e, component.ZOrderComponent{Z: z})
	}
	text(front.Spawn(), "front-low", -5)
	text(front.Root(), "front-high", 5)
	text(back.Root(), "back-high", 100)
	text(back.Spawn(), "back-low", 0)
	text(core.NoEntity, "loose", 1000)

	rec.Clear()
	NewRenderSystem(rec).Update(w, 0)

	var got []string
	for _, c := range rec.Pending() {
		got = append(got, c.Text)
	}
	want := []string{"loose", "back-low", "back-high", "front-low", "front-high"}
	if len(got) != len(want) {
		t.Fatalf("drew %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d = %q, want %q (all %v)", i, got[i], want[i], got)
		}
	}
}

func TestRenderPrimitives(t *testing.T) {
	ctx, _, rec := newTestContext(t)
	w := ctx.World
	style := render.Style{Rune: '#'}

	rect := w.Create()
	engine.StoreOf[component.TransformComponent](w).Set(rect, component.TransformComponent{Position: core.Vec2{X: 1, Y: 2}, Scale: core.Vec2{X: 2, Y: 2}})
	engine.StoreOf[component.SizeComponent](w).Set(rect, component.SizeComponent{Size: core.Vec2{X: 3, Y: 1}})
	engine.StoreOf[component.RectangleComponent](w).Set(rect, component.RectangleComponent{Style: style})

	circle := w.Create()
	engine.StoreOf[component.TransformComponent](w).Set(circle, component.TransformComponent{Position: core.Vec2{X: 5, Y: 5}})
	engine.StoreOf[component.RadiusComponent](w).Set(circle, component.RadiusComponent{Radius: 2})
	engine.StoreOf[component.CircleComponent](w).Set(circle, component.CircleComponent{Style: style})
	engine.StoreOf[component.ZOrderComponent](w).Set(circle, component.ZOrderComponent{Z: 1})

	// Missing size: not drawable
	bare := w.Create()
	engine.StoreOf[component.TransformComponent](w).Set(bare, component.TransformComponent{})
	engine.StoreOf[component.RectangleComponent](w).Set(bare, component.RectangleComponent{Style: style})

	rec.Clear()
	NewRenderSystem(rec).Update(w, 0)
	calls := rec.Pending()
	if len(calls) != 2 {
		t.Fatalf("drew %d primitives, want 2: %+v", len(calls), calls)
	}
	if calls[0].Kind != render.DrawRect || calls[0].Rect != (core.Rect{Pos: core.Vec2{X: 1, Y: 2}, Size: core.Vec2{X: 6, Y: 2}}) {
		t.Errorf("rect call = %+v", calls[0])
	}
	if calls[1].Kind != render.DrawCircle || calls[1].Radius != 2 || calls[1].Center != (core.Vec2{X: 5, Y: 5}) {
		t.Errorf("circle call = %+v", calls[1])
	}
}
