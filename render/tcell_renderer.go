package render

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/stagecraft/core"
)

// TcellRenderer draws world-space primitives into terminal cells
// Cells outside the view's viewport are left as letterbox bars
type TcellRenderer struct {
	screen tcell.Screen
	view   View
	// Bars fills the area outside the viewport, Backdrop the area inside
	Bars     RGB
	Backdrop RGB
}

func NewTcellRenderer(screen tcell.Screen, view View) *TcellRenderer {
	return &TcellRenderer{
		screen:   screen,
		view:     view,
		Bars:     RGBBlack,
		Backdrop: RGBPolar,
	}
}

func (r *TcellRenderer) SetView(v View) { r.view = v }
func (r *TcellRenderer) View() View     { return r.view }

func (r *TcellRenderer) windowSize() core.Vec2u {
	w, h := r.screen.Size()
	return core.Vec2u{X: uint32(w), Y: uint32(h)}
}

// Clear paints the bars and the viewport backdrop
func (r *TcellRenderer) Clear() {
	r.screen.Fill(' ', tcell.StyleDefault.Background(r.Bars.tcell()))
	x0, y0, x1, y1 := r.clip()
	st := tcell.StyleDefault.Background(r.Backdrop.tcell())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (r *TcellRenderer) Present() {
	r.screen.Show()
}

func (r *TcellRenderer) DrawRect(rect core.Rect, s Style) {
	x0, y0, x1, y1 := r.cellBounds(rect)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.set(x, y, s.fill(), nil, s)
		}
	}
}

func (r *TcellRenderer) DrawCircle(center core.Vec2, radius float64, s Style) {
	bounds := core.Rect{
		Pos:  center.Sub(core.Vec2{X: radius, Y: radius}),
		Size: core.Vec2{X: 2 * radius, Y: 2 * radius},
	}
	win := r.windowSize()
	x0, y0, x1, y1 := r.cellBounds(bounds)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := r.view.PixelToWorld(core.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}, win)
			if p.Sub(center).Len() <= radius {
				r.set(x, y, s.fill(), nil, s)
			}
		}
	}
}

func (r *TcellRenderer) DrawText(pos core.Vec2, text string, s Style) {
	p := r.view.WorldToPixel(pos, r.windowSize())
	x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		r.set(x, y, runes[0], runes[1:], s)
		x += max(g.Width(), 1)
	}
}

// DrawSprite samples img once per covered cell and paints it as background
func (r *TcellRenderer) DrawSprite(rect core.Rect, img image.Image) {
	if img == nil {
		return
	}
	win := r.windowSize()
	p0 := r.view.WorldToPixel(rect.Pos, win)
	p1 := r.view.WorldToPixel(rect.Pos.Add(rect.Size), win)
	w, h := p1.X-p0.X, p1.Y-p0.Y
	if w <= 0 || h <= 0 {
		return
	}
	b := img.Bounds()

	x0, y0, x1, y1 := r.cellBounds(rect)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			u := (float64(x) + 0.5 - p0.X) / w
			v := (float64(y) + 0.5 - p0.Y) / h
			sx := b.Min.X + min(int(u*float64(b.Dx())), b.Dx()-1)
			sy := b.Min.Y + min(int(v*float64(b.Dy())), b.Dy()-1)
			c := RGBFromColor(img.At(sx, sy))
			r.set(x, y, ' ', nil, Style{Bg: c})
		}
	}
}

func (r *TcellRenderer) set(x, y int, ch rune, comb []rune, s Style) {
	x0, y0, x1, y1 := r.clip()
	if x < x0 || y < y0 || x >= x1 || y >= y1 {
		return
	}
	st := s.tcell()
	if s.NoBg {
		_, _, under, _ := r.screen.GetContent(x, y)
		st = under.Foreground(s.Fg.tcell())
	}
	r.screen.SetContent(x, y, ch, comb, st)
}

// clip returns the viewport in whole cells, intersected with the screen
func (r *TcellRenderer) clip() (x0, y0, x1, y1 int) {
	win := r.windowSize()
	vp := r.view.PixelViewport(win)
	x0 = max(0, int(math.Round(vp.Pos.X)))
	y0 = max(0, int(math.Round(vp.Pos.Y)))
	x1 = min(int(win.X), int(math.Round(vp.Pos.X+vp.Size.X)))
	y1 = min(int(win.Y), int(math.Round(vp.Pos.Y+vp.Size.Y)))
	return
}

// cellBounds maps a world rect to the half-open cell range it covers
func (r *TcellRenderer) cellBounds(rect core.Rect) (x0, y0, x1, y1 int) {
	win := r.windowSize()
	p0 := r.view.WorldToPixel(rect.Pos, win)
	p1 := r.view.WorldToPixel(rect.Pos.Add(rect.Size), win)
	return int(math.Floor(p0.X)), int(math.Floor(p0.Y)), int(math.Ceil(p1.X)), int(math.Ceil(p1.Y))
}
