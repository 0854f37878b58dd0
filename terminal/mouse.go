package terminal

import "github.com/gdamore/tcell/v2"

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "left"
	case MouseBtnMiddle:
		return "middle"
	case MouseBtnRight:
		return "right"
	case MouseBtnWheelUp:
		return "wheelup"
	case MouseBtnWheelDown:
		return "wheeldown"
	default:
		return "none"
	}
}

// tcellButtons pairs tcell masks with buttons, in reporting order
var tcellButtons = []struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.Button1, MouseBtnLeft},
	{tcell.Button3, MouseBtnMiddle},
	{tcell.Button2, MouseBtnRight},
}

// Wheel notches arrive as single masks with no release, reported as press+release
var tcellWheel = []struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.WheelUp, MouseBtnWheelUp},
	{tcell.WheelDown, MouseBtnWheelDown},
}

// ParseMouseButton resolves a button name
func ParseMouseButton(name string) (MouseButton, bool) {
	for b := MouseBtnLeft; b <= MouseBtnWheelDown; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return MouseBtnNone, false
}
