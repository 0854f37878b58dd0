package terminal

import (
	"sync"

	"github.com/lixenwraith/stagecraft/core"
)

// MemoryWindow is a scripted window for headless runs and tests
// Events pushed with Push are returned by the next PollEvents
type MemoryWindow struct {
	mu        sync.Mutex
	open      bool
	size      core.Vec2u
	mousePos  core.Vec2
	pending   []Event
	keys      map[KeyCode]bool
	buttons   map[MouseButton]bool
	joyButton map[[2]uint]bool
	joyAxis   map[uint]map[JoystickAxis]float64
	polls     int
}

func NewMemoryWindow(size core.Vec2u) *MemoryWindow {
	return &MemoryWindow{
		open:      true,
		size:      size,
		keys:      make(map[KeyCode]bool),
		buttons:   make(map[MouseButton]bool),
		joyButton: make(map[[2]uint]bool),
		joyAxis:   make(map[uint]map[JoystickAxis]float64),
	}
}

// Push queues raw events; Resized events also update Size when drained
func (m *MemoryWindow) Push(events ...Event) {
	m.mu.Lock()
	m.pending = append(m.pending, events...)
	m.mu.Unlock()
}

func (m *MemoryWindow) PollEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls++
	out := m.pending
	m.pending = nil
	for _, ev := range out {
		switch ev.Type {
		case EventResized:
			m.size = ev.Size
		case EventMouseMoved, EventMousePressed, EventMouseReleased:
			m.mousePos = ev.Mouse.Position
		}
	}
	return out
}

// Polls reports how many times PollEvents was called
func (m *MemoryWindow) Polls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.polls
}

func (m *MemoryWindow) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *MemoryWindow) Close() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
}

func (m *MemoryWindow) Size() core.Vec2u {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

func (m *MemoryWindow) MousePosition() core.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mousePos
}

func (m *MemoryWindow) SetKeyDown(code KeyCode, down bool) {
	m.mu.Lock()
	m.keys[code] = down
	m.mu.Unlock()
}

func (m *MemoryWindow) SetMouseButtonDown(b MouseButton, down bool) {
	m.mu.Lock()
	m.buttons[b] = down
	m.mu.Unlock()
}

// SetJoystickButton marks a button down and the joystick connected
func (m *MemoryWindow) SetJoystickButton(id, button uint, down bool) {
	m.mu.Lock()
	m.joyButton[[2]uint{id, button}] = down
	if m.joyAxis[id] == nil {
		m.joyAxis[id] = make(map[JoystickAxis]float64)
	}
	m.mu.Unlock()
}

// SetJoystickAxis sets an axis position and marks the joystick connected
func (m *MemoryWindow) SetJoystickAxis(id uint, axis JoystickAxis, value float64) {
	m.mu.Lock()
	if m.joyAxis[id] == nil {
		m.joyAxis[id] = make(map[JoystickAxis]float64)
	}
	m.joyAxis[id][axis] = value
	m.mu.Unlock()
}

func (m *MemoryWindow) IsKeyDown(code KeyCode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keys[code]
}

func (m *MemoryWindow) IsMouseButtonDown(b MouseButton) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons[b]
}

func (m *MemoryWindow) IsJoystickConnected(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.joyAxis[id]
	return ok
}

func (m *MemoryWindow) IsJoystickButtonDown(id, button uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joyButton[[2]uint{id, button}]
}

func (m *MemoryWindow) JoystickAxis(id uint, axis JoystickAxis) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joyAxis[id][axis]
}
