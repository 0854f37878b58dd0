package component

import (
	"image"

	"github.com/lixenwraith/stagecraft/render"
)

// RectangleComponent draws a filled rectangle at the transform with SizeComponent extents
type RectangleComponent struct {
	Style render.Style
}

// CircleComponent draws a disc centered on the transform with RadiusComponent radius
type CircleComponent struct {
	Style render.Style
}

type TextComponent struct {
	Text  string
	Style render.Style
}

// SpriteComponent draws Image scaled into the transform and size
type SpriteComponent struct {
	Image image.Image
}
