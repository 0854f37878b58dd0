package render

import "github.com/lixenwraith/stagecraft/core"

// View is a camera over world space
// Viewport is the normalized (0..1) window region the view is drawn into
type View struct {
	Center   core.Vec2
	Size     core.Vec2
	Viewport core.Rect
}

// NewView centers a view of the given size over the origin quadrant, filling the window
func NewView(size core.Vec2) View {
	return View{
		Center:   size.Scale(0.5),
		Size:     size,
		Viewport: core.Rect{Size: core.Vec2{X: 1, Y: 1}},
	}
}

// PixelViewport is the viewport in window cells
func (v View) PixelViewport(window core.Vec2u) core.Rect {
	w := window.ToVec2()
	return core.Rect{
		Pos:  v.Viewport.Pos.Mul(w),
		Size: v.Viewport.Size.Mul(w),
	}
}

// WorldToPixel maps a world point to window cell coordinates
func (v View) WorldToPixel(p core.Vec2, window core.Vec2u) core.Vec2 {
	vp := v.PixelViewport(window)
	if v.Size.X == 0 || v.Size.Y == 0 {
		return vp.Pos
	}
	rel := p.Sub(v.topLeft())
	return core.Vec2{
		X: vp.Pos.X + rel.X/v.Size.X*vp.Size.X,
		Y: vp.Pos.Y + rel.Y/v.Size.Y*vp.Size.Y,
	}
}

// PixelToWorld is the inverse of WorldToPixel
func (v View) PixelToWorld(px core.Vec2, window core.Vec2u) core.Vec2 {
	vp := v.PixelViewport(window)
	if vp.Size.X == 0 || vp.Size.Y == 0 {
		return v.Center
	}
	tl := v.topLeft()
	return core.Vec2{
		X: tl.X + (px.X-vp.Pos.X)/vp.Size.X*v.Size.X,
		Y: tl.Y + (px.Y-vp.Pos.Y)/vp.Size.Y*v.Size.Y,
	}
}

func (v View) topLeft() core.Vec2 {
	return v.Center.Sub(v.Size.Scale(0.5))
}

// LetterboxViewport fits a reference aspect ratio into a window, pillarboxing
// when the window is wider and letterboxing when it is taller
func LetterboxViewport(window, reference core.Vec2u) core.Rect {
	if window.X == 0 || window.Y == 0 || reference.X == 0 || reference.Y == 0 {
		return core.Rect{Size: core.Vec2{X: 1, Y: 1}}
	}
	windowAspect := float64(window.X) / float64(window.Y)
	gameAspect := float64(reference.X) / float64(reference.Y)

	if windowAspect > gameAspect {
		w := gameAspect / windowAspect
		return core.Rect{Pos: core.Vec2{X: (1 - w) / 2}, Size: core.Vec2{X: w, Y: 1}}
	}
	h := windowAspect / gameAspect
	return core.Rect{Pos: core.Vec2{Y: (1 - h) / 2}, Size: core.Vec2{X: 1, Y: h}}
}
