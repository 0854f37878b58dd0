package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/event"
	"github.com/lixenwraith/stagecraft/parameter"
)

// TcellOptions configures the tcell window
type TcellOptions struct {
	Title         string
	Mouse         bool
	KeyHoldWindow time.Duration
	// Clock overrides time.Now for key hold bookkeeping
	Clock func() time.Time
}

// closeRequest is posted as an interrupt payload when the process is asked to stop
type closeRequest struct{}

// TcellWindow adapts a tcell screen to the Window contract
// A poll goroutine translates tcell events into the lock-free queue;
// the frame loop drains it once per frame
type TcellWindow struct {
	screen tcell.Screen
	opts   TcellOptions
	log    *zap.Logger

	queue *event.Queue[Event]
	held  *heldKeys

	mu       sync.Mutex
	buttons  tcell.ButtonMask
	mousePos core.Vec2
	size     core.Vec2u

	open          atomic.Bool
	done          chan struct{}
	sigCh         chan os.Signal
	reportedDrops uint64
}

// NewTcellWindow wraps screen; pass nil to create the terminal's default screen at Start
func NewTcellWindow(screen tcell.Screen, opts TcellOptions, log *zap.Logger) *TcellWindow {
	if opts.KeyHoldWindow <= 0 {
		opts.KeyHoldWindow = parameter.KeyHoldWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &TcellWindow{
		screen: screen,
		opts:   opts,
		log:    log,
		queue:  event.NewQueue[Event](),
		held:   newHeldKeys(opts.KeyHoldWindow),
		done:   make(chan struct{}),
		sigCh:  make(chan os.Signal, 1),
	}
}

// Start initializes the screen and launches the poll and signal goroutines
func (w *TcellWindow) Start() error {
	if w.open.Load() {
		return fmt.Errorf("window already started")
	}
	if w.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		w.screen = s
	}
	if err := w.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if w.opts.Mouse {
		w.screen.EnableMouse()
	}
	w.screen.EnableFocus()
	w.screen.HideCursor()
	if w.opts.Title != "" {
		w.screen.SetTitle(w.opts.Title)
	}

	cw, ch := w.screen.Size()
	w.mu.Lock()
	w.size = core.Vec2u{X: uint32(cw), Y: uint32(ch)}
	w.mu.Unlock()

	w.open.Store(true)
	core.SetCrashReset(w.screen.Fini)

	signal.Notify(w.sigCh, os.Interrupt, syscall.SIGTERM)
	core.Go(w.signalLoop)
	core.Go(w.pollLoop)

	w.log.Debug("tcell window started", zap.Uint32("width", uint32(cw)), zap.Uint32("height", uint32(ch)))
	return nil
}

// Screen exposes the underlying screen for the renderer
func (w *TcellWindow) Screen() tcell.Screen {
	return w.screen
}

func (w *TcellWindow) IsOpen() bool {
	return w.open.Load()
}

// Close finalizes the screen; safe to call repeatedly
func (w *TcellWindow) Close() {
	if !w.open.CompareAndSwap(true, false) {
		return
	}
	signal.Stop(w.sigCh)
	close(w.done)
	core.SetCrashReset(nil)
	w.screen.Fini()
	w.log.Debug("tcell window closed")
}

func (w *TcellWindow) Size() core.Vec2u {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *TcellWindow) MousePosition() core.Vec2 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mousePos
}

// PollEvents drains queued events and appends releases for keys whose hold window lapsed
func (w *TcellWindow) PollEvents() []Event {
	events := w.queue.Consume()
	for _, k := range w.held.expire(w.opts.Clock()) {
		events = append(events, Event{Type: EventKeyReleased, Key: k})
	}
	if d := w.queue.Dropped(); d != w.reportedDrops {
		w.log.Warn("window events dropped", zap.Uint64("total", d))
		w.reportedDrops = d
	}
	return events
}

func (w *TcellWindow) DroppedEvents() uint64 {
	return w.queue.Dropped()
}

func (w *TcellWindow) IsKeyDown(code KeyCode) bool {
	return w.held.isDown(code, w.opts.Clock())
}

func (w *TcellWindow) IsMouseButtonDown(button MouseButton) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range tcellButtons {
		if b.button == button {
			return w.buttons&b.mask != 0
		}
	}
	return false
}

// Terminals expose no joysticks
func (w *TcellWindow) IsJoystickConnected(uint) bool           { return false }
func (w *TcellWindow) IsJoystickButtonDown(uint, uint) bool    { return false }
func (w *TcellWindow) JoystickAxis(uint, JoystickAxis) float64 { return 0 }

func (w *TcellWindow) pollLoop() {
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			return // screen finalized
		}
		for _, out := range w.translate(ev) {
			w.queue.Push(out)
		}
	}
}

func (w *TcellWindow) signalLoop() {
	select {
	case sig := <-w.sigCh:
		w.log.Info("close requested by signal", zap.Stringer("signal", sig))
		_ = w.screen.PostEvent(tcell.NewEventInterrupt(closeRequest{}))
	case <-w.done:
	}
}

// translate maps one tcell event to zero or more window events
func (w *TcellWindow) translate(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cw, ch := ev.Size()
		size := core.Vec2u{X: uint32(cw), Y: uint32(ch)}
		w.mu.Lock()
		w.size = size
		w.mu.Unlock()
		w.screen.Sync()
		return []Event{{Type: EventResized, Size: size}}

	case *tcell.EventKey:
		k, ok := keyEventFromTcell(ev)
		if !ok {
			return nil
		}
		w.held.press(k, w.opts.Clock())
		return []Event{{Type: EventKeyPressed, Key: k}}

	case *tcell.EventMouse:
		return w.translateMouse(ev)

	case *tcell.EventFocus:
		if ev.Focused {
			return []Event{{Type: EventFocusGained}}
		}
		return []Event{{Type: EventFocusLost}}

	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(closeRequest); ok {
			return []Event{{Type: EventClosed}}
		}
	}
	return nil
}

// translateMouse diffs the button mask against the previous report
// tcell sends the full mask on every mouse event, never discrete press/release
func (w *TcellWindow) translateMouse(ev *tcell.EventMouse) []Event {
	x, y := ev.Position()
	pos := core.Vec2{X: float64(x), Y: float64(y)}
	mask := ev.Buttons()

	w.mu.Lock()
	prev := w.buttons
	prevPos := w.mousePos
	w.buttons = mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	w.mousePos = pos
	w.mu.Unlock()

	var out []Event
	if pos != prevPos {
		out = append(out, Event{Type: EventMouseMoved, Mouse: MouseEvent{Position: pos}})
	}
	for _, b := range tcellButtons {
		was, now := prev&b.mask != 0, mask&b.mask != 0
		switch {
		case now && !was:
			out = append(out, Event{Type: EventMousePressed, Mouse: MouseEvent{Button: b.button, Position: pos}})
		case was && !now:
			out = append(out, Event{Type: EventMouseReleased, Mouse: MouseEvent{Button: b.button, Position: pos}})
		}
	}
	for _, b := range tcellWheel {
		if mask&b.mask != 0 {
			me := MouseEvent{Button: b.button, Position: pos}
			out = append(out, Event{Type: EventMousePressed, Mouse: me}, Event{Type: EventMouseReleased, Mouse: me})
		}
	}
	return out
}
