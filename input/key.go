package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/stagecraft/parameter"
	"github.com/lixenwraith/stagecraft/terminal"
)

// Kind selects which device a Key refers to
type Kind uint8

const (
	KindKeyboard Kind = iota
	KindMouse
	KindJoyButton
	KindJoyAxis
)

// Key is an abstract input key; comparable so it can index binding tables
type Key struct {
	Kind      Kind
	Code      terminal.KeyCode
	Button    terminal.MouseButton
	Joystick  uint
	JoyButton uint
	Axis      terminal.JoystickAxis
	Direction int8 // +1 or -1 for axis keys
}

func Keyboard(code terminal.KeyCode) Key {
	return Key{Kind: KindKeyboard, Code: code}
}

func Mouse(b terminal.MouseButton) Key {
	return Key{Kind: KindMouse, Button: b}
}

func JoyButton(joystick, button uint) Key {
	return Key{Kind: KindJoyButton, Joystick: joystick, JoyButton: button}
}

// JoyAxisDir activates when the axis leans past the dead zone in direction dir
func JoyAxisDir(joystick uint, axis terminal.JoystickAxis, dir int8) Key {
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	return Key{Kind: KindJoyAxis, Joystick: joystick, Axis: axis, Direction: dir}
}

// Activated evaluates the key against current continuous input state
func (k Key) Activated(state terminal.InputState, deadZone float64) bool {
	switch k.Kind {
	case KindKeyboard:
		return state.IsKeyDown(k.Code)
	case KindMouse:
		return state.IsMouseButtonDown(k.Button)
	case KindJoyButton:
		return state.IsJoystickConnected(k.Joystick) && state.IsJoystickButtonDown(k.Joystick, k.JoyButton)
	case KindJoyAxis:
		if !state.IsJoystickConnected(k.Joystick) {
			return false
		}
		v := state.JoystickAxis(k.Joystick, k.Axis)
		if k.Direction > 0 {
			return v >= deadZone
		}
		return v <= -deadZone
	}
	return false
}

var axisNames = []string{"x", "y", "z", "r", "u", "v", "povx", "povy"}

func (k Key) String() string {
	switch k.Kind {
	case KindKeyboard:
		return "key:" + k.Code.String()
	case KindMouse:
		return "mouse:" + k.Button.String()
	case KindJoyButton:
		return fmt.Sprintf("joy:%d:button:%d", k.Joystick, k.JoyButton)
	case KindJoyAxis:
		sign := "+"
		if k.Direction < 0 {
			sign = "-"
		}
		name := "?"
		if int(k.Axis) < len(axisNames) {
			name = axisNames[k.Axis]
		}
		return fmt.Sprintf("joy:%d:axis:%s%s", k.Joystick, name, sign)
	}
	return "unknown"
}

// Parse reads the String form: "key:space", "mouse:left", "joy:0:button:1", "joy:0:axis:x+"
// A bare key name is accepted as a keyboard key
func Parse(s string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch {
	case len(parts) == 1:
		return parseKeyboard(parts[0])
	case parts[0] == "key" && len(parts) == 2:
		return parseKeyboard(parts[1])
	case parts[0] == "mouse" && len(parts) == 2:
		b, ok := terminal.ParseMouseButton(parts[1])
		if !ok {
			return Key{}, fmt.Errorf("unknown mouse button %q", parts[1])
		}
		return Mouse(b), nil
	case parts[0] == "joy" && len(parts) == 4:
		id, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return Key{}, fmt.Errorf("joystick id %q: %w", parts[1], err)
		}
		switch parts[2] {
		case "button":
			b, err := strconv.ParseUint(parts[3], 10, 32)
			if err != nil {
				return Key{}, fmt.Errorf("joystick button %q: %w", parts[3], err)
			}
			return JoyButton(uint(id), uint(b)), nil
		case "axis":
			return parseAxis(uint(id), parts[3])
		}
	}
	return Key{}, fmt.Errorf("malformed input key %q", s)
}

func parseKeyboard(name string) (Key, error) {
	code, ok := terminal.ParseKeyCode(name)
	if !ok {
		return Key{}, fmt.Errorf("unknown key %q", name)
	}
	return Keyboard(code), nil
}

func parseAxis(id uint, spec string) (Key, error) {
	if len(spec) < 2 {
		return Key{}, fmt.Errorf("malformed axis %q", spec)
	}
	var dir int8
	switch spec[len(spec)-1] {
	case '+':
		dir = 1
	case '-':
		dir = -1
	default:
		return Key{}, fmt.Errorf("axis %q needs a + or - suffix", spec)
	}
	name := spec[:len(spec)-1]
	for i, n := range axisNames {
		if n == name {
			return JoyAxisDir(id, terminal.JoystickAxis(i), dir), nil
		}
	}
	return Key{}, fmt.Errorf("unknown axis %q", name)
}

// DefaultDeadZone is used by tables that do not set their own
const DefaultDeadZone = parameter.JoystickDeadZone
