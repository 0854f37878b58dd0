package terminal

import "github.com/lixenwraith/stagecraft/core"

// EventType distinguishes window event categories
type EventType uint8

const (
	EventClosed EventType = iota
	EventResized
	EventFocusLost
	EventFocusGained
	EventKeyPressed
	EventKeyReleased
	EventMousePressed
	EventMouseReleased
	EventMouseMoved
)

func (t EventType) String() string {
	switch t {
	case EventClosed:
		return "closed"
	case EventResized:
		return "resized"
	case EventFocusLost:
		return "focus-lost"
	case EventFocusGained:
		return "focus-gained"
	case EventKeyPressed:
		return "key-pressed"
	case EventKeyReleased:
		return "key-released"
	case EventMousePressed:
		return "mouse-pressed"
	case EventMouseReleased:
		return "mouse-released"
	case EventMouseMoved:
		return "mouse-moved"
	default:
		return "unknown"
	}
}

// MouseEvent carries a button and the cell position, top-left origin
type MouseEvent struct {
	Button   MouseButton
	Position core.Vec2
}

// Event is a discrete window event
type Event struct {
	Type  EventType
	Key   KeyEvent   // EventKeyPressed, EventKeyReleased
	Mouse MouseEvent // EventMouse*
	Size  core.Vec2u // EventResized
}

// JoystickAxis identifies one analog axis
type JoystickAxis uint8

const (
	AxisX JoystickAxis = iota
	AxisY
	AxisZ
	AxisR
	AxisU
	AxisV
	AxisPovX
	AxisPovY
)

// InputState answers continuous input queries
type InputState interface {
	IsKeyDown(code KeyCode) bool
	IsMouseButtonDown(button MouseButton) bool
	IsJoystickConnected(id uint) bool
	IsJoystickButtonDown(id, button uint) bool
	// JoystickAxis returns the axis position in -100..100
	JoystickAxis(id uint, axis JoystickAxis) float64
}

// DropCounter is implemented by windows whose event buffer can overflow
type DropCounter interface {
	DroppedEvents() uint64
}

// Window is the drainable event source and continuous input state the frame loop drives
type Window interface {
	InputState
	IsOpen() bool
	Close()
	Size() core.Vec2u
	MousePosition() core.Vec2
	// PollEvents drains every pending event
	PollEvents() []Event
}
