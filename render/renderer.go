package render

import (
	"image"

	"github.com/lixenwraith/stagecraft/core"
)

// Renderer is the drawing surface the frame loop clears, systems draw into, and the loop presents
// All positions and sizes are world units mapped through the current View
type Renderer interface {
	Clear()
	Present()
	SetView(v View)
	View() View
	DrawRect(r core.Rect, s Style)
	DrawCircle(center core.Vec2, radius float64, s Style)
	DrawText(pos core.Vec2, text string, s Style)
	DrawSprite(r core.Rect, img image.Image)
}
