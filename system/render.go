package system

import (
	"cmp"
	"slices"
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/render"
)

type drawKind uint8

const (
	drawSprite drawKind = iota
	drawCircle
	drawRect
	drawText
)

type drawable struct {
	entity core.Entity
	kind   drawKind
	depth  uint64
	z      float64
}

// RenderSystem draws every renderable entity ordered by owning scene depth, then z-order
// Entities outside any scene draw first
type RenderSystem struct {
	renderer render.Renderer
	queue    []drawable
	depths   map[core.Entity]uint64
}

func NewRenderSystem(r render.Renderer) *RenderSystem {
	return &RenderSystem{
		renderer: r,
		depths:   make(map[core.Entity]uint64),
	}
}

func (s *RenderSystem) Name() string        { return "render" }
func (s *RenderSystem) Stage() engine.Stage { return engine.StageStore }

func (s *RenderSystem) Update(w *engine.World, _ time.Duration) {
	s.queue = s.queue[:0]
	clear(s.depths)

	transforms := engine.StoreOf[component.TransformComponent](w)
	zs := engine.StoreOf[component.ZOrderComponent](w)

	collect := func(e core.Entity, kind drawKind) {
		if !transforms.Has(e) {
			return
		}
		d := drawable{entity: e, kind: kind, depth: s.sceneDepth(w, e)}
		if z, ok := zs.Get(e); ok {
			d.z = z.Z
		}
		s.queue = append(s.queue, d)
	}

	engine.StoreOf[component.SpriteComponent](w).Each(func(e core.Entity, _ *component.SpriteComponent) { collect(e, drawSprite) })
	engine.StoreOf[component.CircleComponent](w).Each(func(e core.Entity, _ *component.CircleComponent) { collect(e, drawCircle) })
	engine.StoreOf[component.RectangleComponent](w).Each(func(e core.Entity, _ *component.RectangleComponent) { collect(e, drawRect) })
	engine.StoreOf[component.TextComponent](w).Each(func(e core.Entity, _ *component.TextComponent) { collect(e, drawText) })

	slices.SortStableFunc(s.queue, func(a, b drawable) int {
		if c := cmp.Compare(a.depth, b.depth); c != 0 {
			return c
		}
		return cmp.Compare(a.z, b.z)
	})

	for _, d := range s.queue {
		s.draw(w, d)
	}
}

// sceneDepth walks to the nearest scene root; results are memoized per frame
func (s *RenderSystem) sceneDepth(w *engine.World, e core.Entity) uint64 {
	roots := engine.StoreOf[component.SceneRootComponent](w)
	root, ok := w.Ancestor(e, roots.Has)
	if !ok {
		return 0
	}
	if d, ok := s.depths[root]; ok {
		return d
	}
	var depth uint64
	if d, ok := engine.StoreOf[component.SceneDepthComponent](w).Get(root); ok {
		depth = d.Depth
	}
	s.depths[root] = depth
	return depth
}

func (s *RenderSystem) draw(w *engine.World, d drawable) {
	t, _ := engine.StoreOf[component.TransformComponent](w).Get(d.entity)
	scale := t.Scale
	if scale == (core.Vec2{}) {
		scale = core.Vec2{X: 1, Y: 1}
	}

	switch d.kind {
	case drawSprite:
		sp, _ := engine.StoreOf[component.SpriteComponent](w).Get(d.entity)
		if sz, ok := engine.StoreOf[component.SizeComponent](w).Get(d.entity); ok && sp.Image != nil {
			s.renderer.DrawSprite(core.Rect{Pos: t.Position, Size: sz.Size.Mul(scale)}, sp.Image)
		}
	case drawCircle:
		c, _ := engine.StoreOf[component.CircleComponent](w).Get(d.entity)
		if r, ok := engine.StoreOf[component.RadiusComponent](w).Get(d.entity); ok {
			s.renderer.DrawCircle(t.Position, r.Radius*max(scale.X, scale.Y), c.Style)
		}
	case drawRect:
		rc, _ := engine.StoreOf[component.RectangleComponent](w).Get(d.entity)
		if sz, ok := engine.StoreOf[component.SizeComponent](w).Get(d.entity); ok {
			s.renderer.DrawRect(core.Rect{Pos: t.Position, Size: sz.Size.Mul(scale)}, rc.Style)
		}
	case drawText:
		tx, _ := engine.StoreOf[component.TextComponent](w).Get(d.entity)
		s.renderer.DrawText(t.Position, tx.Text, tx.Style)
	}
}
