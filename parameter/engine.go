package parameter

import "time"

// Window defaults
const (
	// DefaultRefWidth and DefaultRefHeight are the logical game size in cells
	DefaultRefWidth  = 80
	DefaultRefHeight = 24

	DefaultWindowTitle = "stagecraft"
)

// Frame loop
const (
	// DefaultTargetFPS caps the frame rate; 0 runs uncapped
	DefaultTargetFPS = 60
)

// Event buffering & limits
const (
	// EventQueueSize is the fixed capacity of the raw window event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047

	// EntityPoolCapacity is the initial slot capacity of the entity arena
	EntityPoolCapacity = 1024

	// StoreCapacity is the initial dense capacity of a component store
	StoreCapacity = 64
)

// Input
const (
	// KeyHoldWindow is how long a key counts as held after its last press or repeat
	// Terminals report no key release; release is synthesized when the window lapses
	KeyHoldWindow = 150 * time.Millisecond

	// JoystickDeadZone is the axis magnitude (0..100) below which an axis direction is inactive
	JoystickDeadZone = 15.0
)
