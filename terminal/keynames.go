package terminal

import (
	"strings"
	"unicode/utf8"
)

var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyInsert:    "insert",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

var nameToKey = func() map[string]Key {
	m := make(map[string]Key, len(keyToName))
	for k, n := range keyToName {
		m[n] = k
	}
	return m
}()

// KeyName returns the canonical name of a named key, or "" for KeyRune/KeyNone
func KeyName(k Key) string {
	return keyToName[k]
}

// String renders a code as used in scripts and manifests ("space", "a", "f1")
func (c KeyCode) String() string {
	if c.Key == KeyRune {
		if c.Rune == ' ' {
			return "space"
		}
		return string(c.Rune)
	}
	if n := KeyName(c.Key); n != "" {
		return n
	}
	return "none"
}

// ParseKeyCode resolves a key name or single character
func ParseKeyCode(name string) (KeyCode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "space" {
		return RuneKey(' '), true
	}
	if k, ok := nameToKey[name]; ok {
		return NamedKey(k), true
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return RuneKey(r), true
	}
	return KeyCode{}, false
}
