package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key represents a parsed input key
type Key uint16

// Key constants
const (
	KeyNone Key = iota
	KeyRune     // Printable character (check KeyCode.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

func (m Modifier) Has(f Modifier) bool { return m&f == f }

// KeyCode identifies a key independent of modifiers
// Printable keys use KeyRune with a lowercased rune so bindings ignore shift state
type KeyCode struct {
	Key  Key
	Rune rune
}

// RuneKey returns the code for a printable key
func RuneKey(r rune) KeyCode {
	return KeyCode{Key: KeyRune, Rune: unicode.ToLower(r)}
}

// NamedKey returns the code for a non-printable key
func NamedKey(k Key) KeyCode {
	return KeyCode{Key: k}
}

// KeyEvent is the payload of a key press or release
type KeyEvent struct {
	Code      KeyCode
	Scancode  int // raw backend key value; terminals have no hardware scancodes
	Modifiers Modifier
}

// tcellKeys maps tcell named keys onto Key
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:    KeyEscape,
	tcell.KeyEnter:     KeyEnter,
	tcell.KeyTab:       KeyTab,
	tcell.KeyBacktab:   KeyBacktab,
	tcell.KeyBackspace: KeyBackspace,
	tcell.KeyDEL:       KeyBackspace,
	tcell.KeyDelete:    KeyDelete,
	tcell.KeyUp:        KeyUp,
	tcell.KeyDown:      KeyDown,
	tcell.KeyLeft:      KeyLeft,
	tcell.KeyRight:     KeyRight,
	tcell.KeyHome:      KeyHome,
	tcell.KeyEnd:       KeyEnd,
	tcell.KeyPgUp:      KeyPageUp,
	tcell.KeyPgDn:      KeyPageDown,
	tcell.KeyInsert:    KeyInsert,
	tcell.KeyF1:        KeyF1,
	tcell.KeyF2:        KeyF2,
	tcell.KeyF3:        KeyF3,
	tcell.KeyF4:        KeyF4,
	tcell.KeyF5:        KeyF5,
	tcell.KeyF6:        KeyF6,
	tcell.KeyF7:        KeyF7,
	tcell.KeyF8:        KeyF8,
	tcell.KeyF9:        KeyF9,
	tcell.KeyF10:       KeyF10,
	tcell.KeyF11:       KeyF11,
	tcell.KeyF12:       KeyF12,
}

// keyEventFromTcell translates a tcell key event; ok is false for keys with no mapping
func keyEventFromTcell(ev *tcell.EventKey) (KeyEvent, bool) {
	out := KeyEvent{Scancode: int(ev.Key())}

	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		out.Modifiers |= ModShift
	}
	if mods&tcell.ModAlt != 0 {
		out.Modifiers |= ModAlt
	}
	if mods&tcell.ModCtrl != 0 {
		out.Modifiers |= ModCtrl
	}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			out.Modifiers |= ModShift
		}
		out.Code = RuneKey(r)
		return out, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		// Tab, Enter and Backspace share codes with Ctrl+I, Ctrl+M and Ctrl+H
		if named, ok := tcellKeys[k]; ok {
			out.Code = NamedKey(named)
			return out, true
		}
		out.Code = RuneKey(rune('a' + (k - tcell.KeyCtrlA)))
		out.Modifiers |= ModCtrl
		return out, true
	}

	if named, ok := tcellKeys[k]; ok {
		out.Code = NamedKey(named)
		return out, true
	}
	return out, false
}
