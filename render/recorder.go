package render

import (
	"image"

	"github.com/lixenwraith/stagecraft/core"
)

// DrawKind names a recorded primitive
type DrawKind uint8

const (
	DrawRect DrawKind = iota
	DrawCircle
	DrawText
	DrawSprite
)

// DrawCall is one recorded primitive
type DrawCall struct {
	Kind   DrawKind
	Rect   core.Rect
	Center core.Vec2
	Radius float64
	Text   string
	Style  Style
}

// Recorder is a Renderer that keeps the draw calls of the current frame
// Used for headless runs and tests
type Recorder struct {
	view     View
	calls    []DrawCall
	last     []DrawCall
	Presents int
}

func NewRecorder(view View) *Recorder {
	return &Recorder{view: view}
}

func (r *Recorder) Clear()         { r.calls = r.calls[:0] }
func (r *Recorder) SetView(v View) { r.view = v }
func (r *Recorder) View() View     { return r.view }

// Present freezes the frame's calls for inspection
func (r *Recorder) Present() {
	r.last = append(r.last[:0], r.calls...)
	r.Presents++
}

func (r *Recorder) DrawRect(rect core.Rect, s Style) {
	r.calls = append(r.calls, DrawCall{Kind: DrawRect, Rect: rect, Style: s})
}

func (r *Recorder) DrawCircle(center core.Vec2, radius float64, s Style) {
	r.calls = append(r.calls, DrawCall{Kind: DrawCircle, Center: center, Radius: radius, Style: s})
}

func (r *Recorder) DrawText(pos core.Vec2, text string, s Style) {
	r.calls = append(r.calls, DrawCall{Kind: DrawText, Center: pos, Text: text, Style: s})
}

func (r *Recorder) DrawSprite(rect core.Rect, _ image.Image) {
	r.calls = append(r.calls, DrawCall{Kind: DrawSprite, Rect: rect})
}

// Frame returns the calls of the last presented frame
func (r *Recorder) Frame() []DrawCall {
	return r.last
}

// Pending returns calls drawn since the last Clear
func (r *Recorder) Pending() []DrawCall {
	return r.calls
}
