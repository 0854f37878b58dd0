package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Nord palette, the default theme
var (
	RGBBlack   = RGB{0, 0, 0}
	RGBPolar   = RGB{46, 52, 64}
	RGBSnow    = RGB{236, 239, 244}
	RGBFrost   = RGB{136, 192, 208}
	RGBAurora  = RGB{191, 97, 106}
	RGBGreen   = RGB{163, 190, 140}
	RGBYellow  = RGB{235, 203, 139}
	RGBPurple  = RGB{180, 142, 173}
	RGBOrange  = RGB{208, 135, 112}
	RGBDefault = RGBSnow
)

func (c RGB) tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// RGBFromColor converts any image color, dropping alpha
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// Style describes how a primitive fills its cells
type Style struct {
	Fg   RGB
	Bg   RGB
	Rune rune // fill rune for shapes; ' ' when zero
	// NoBg leaves the cell background untouched
	NoBg bool
}

func (s Style) tcell() tcell.Style {
	st := tcell.StyleDefault.Foreground(s.Fg.tcell())
	if !s.NoBg {
		st = st.Background(s.Bg.tcell())
	}
	return st
}

func (s Style) fill() rune {
	if s.Rune == 0 {
		return ' '
	}
	return s.Rune
}
