package terminal

import (
	"sync"
	"time"
)

// heldKeys tracks keys the terminal reported recently
// Terminals deliver presses and autorepeats but never releases; a key counts
// as down until window elapses with no repeat
type heldKeys struct {
	mu     sync.Mutex
	window time.Duration
	last   map[KeyCode]heldKey
}

type heldKey struct {
	at        time.Time
	scancode  int
	modifiers Modifier
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{
		window: window,
		last:   make(map[KeyCode]heldKey),
	}
}

func (h *heldKeys) press(ev KeyEvent, now time.Time) {
	h.mu.Lock()
	h.last[ev.Code] = heldKey{at: now, scancode: ev.Scancode, modifiers: ev.Modifiers}
	h.mu.Unlock()
}

func (h *heldKeys) isDown(code KeyCode, now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	k, ok := h.last[code]
	return ok && now.Sub(k.at) < h.window
}

// expire removes lapsed keys and returns their synthesized releases
func (h *heldKeys) expire(now time.Time) []KeyEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	var released []KeyEvent
	for code, k := range h.last {
		if now.Sub(k.at) >= h.window {
			released = append(released, KeyEvent{Code: code, Scancode: k.scancode, Modifiers: k.modifiers})
			delete(h.last, code)
		}
	}
	return released
}
