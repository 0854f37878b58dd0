package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/event"
	"github.com/lixenwraith/stagecraft/status"
	"github.com/lixenwraith/stagecraft/terminal"
)

func TestResizeIntent(t *testing.T) {
	tests := []struct {
		name      string
		ref, size core.Vec2u
		scale     float64
		offset    core.Vec2
	}{
		{"wider window pillarboxes", core.Vec2u{X: 800, Y: 600}, core.Vec2u{X: 1600, Y: 900}, 1.5, core.Vec2{X: 200, Y: 0}},
		{"taller window letterboxes", core.Vec2u{X: 800, Y: 600}, core.Vec2u{X: 800, Y: 1000}, 1, core.Vec2{X: 0, Y: 200}},
		{"exact multiple", core.Vec2u{X: 80, Y: 24}, core.Vec2u{X: 160, Y: 48}, 2, core.Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeIntent(tt.ref, tt.size, tt.ref)
			if got.Scale != tt.scale {
				t.Errorf("scale = %v, want %v", got.Scale, tt.scale)
			}
			if !got.Offset.Equal(tt.offset, 1e-9) {
				t.Errorf("offset = %v, want %v", got.Offset, tt.offset)
			}
			if got.OldSize != tt.ref || got.NewSize != tt.size {
				t.Errorf("sizes = %v -> %v", got.OldSize, got.NewSize)
			}
		})
	}
}

func TestHandleResizeUpdatesSizeImmediately(t *testing.T) {
	ctx, win, _ := newTestContext(t)
	g := NewGame(ctx)
	ws := MustGetResource[component.WindowSizeResource](ctx.World)
	ws.Reference = core.Vec2u{X: 800, Y: 600}
	ws.Current = ws.Reference

	win.Push(terminal.Event{Type: terminal.EventResized, Size: core.Vec2u{X: 1600, Y: 900}})
	g.HandleEvents()

	if ws.Current != (core.Vec2u{X: 1600, Y: 900}) {
		t.Errorf("current size = %v", ws.Current)
	}
	intents := StoreOf[component.WindowResizeIntentComponent](ctx.World)
	e, intent, ok := intents.First()
	if !ok {
		t.Fatal("no resize intent")
	}
	if intent.Scale != 1.5 || intent.Offset != (core.Vec2{X: 200}) {
		t.Errorf("intent = %+v", intent)
	}
	if !StoreOf[component.OneFrameComponent](ctx.World).Has(e) {
		t.Error("intent not one-frame")
	}

	g.RunDeferredEvents()
	if ctx.World.Alive(e) {
		t.Error("intent survived the flush")
	}
}

func TestHandleEventsTranslatesPayloads(t *testing.T) {
	ctx, win, _ := newTestContext(t)
	g := NewGame(ctx)
	key := terminal.KeyEvent{Code: terminal.RuneKey('a'), Modifiers: terminal.ModCtrl}
	click := core.Vec2{X: 3, Y: 4}

	win.Push(
		terminal.Event{Type: terminal.EventKeyPressed, Key: key},
		terminal.Event{Type: terminal.EventMouseReleased, Mouse: terminal.MouseEvent{Button: terminal.MouseBtnLeft, Position: click}},
		terminal.Event{Type: terminal.EventFocusLost},
	)
	g.HandleEvents()

	_, kp, ok := StoreOf[component.KeyPressedComponent](ctx.World).First()
	if !ok || kp.Key != key {
		t.Errorf("key pressed = %v, %v", kp, ok)
	}
	_, mr, ok := StoreOf[component.MouseReleasedComponent](ctx.World).First()
	if !ok || mr.Position != click || mr.Button != terminal.MouseBtnLeft {
		t.Errorf("mouse released = %v, %v", mr, ok)
	}
	if _, _, ok := StoreOf[component.FocusLostComponent](ctx.World).First(); !ok {
		t.Error("focus lost not instantiated")
	}

	g.RunDeferredEvents()
	if _, _, ok := StoreOf[component.KeyPressedComponent](ctx.World).First(); ok {
		t.Error("key event survived the frame")
	}
	// templates survive
	if _, ok := ctx.World.Prefab(PrefabKeyPressed); !ok {
		t.Error("event prefab destroyed")
	}
}

func TestHandleCloseClosesWindow(t *testing.T) {
	ctx, win, _ := newTestContext(t)
	win.Push(terminal.Event{Type: terminal.EventClosed})
	NewGame(ctx).HandleEvents()
	if win.IsOpen() {
		t.Error("window still open")
	}
}

type lossyWindow struct {
	*terminal.MemoryWindow
	drops uint64
}

func (w *lossyWindow) DroppedEvents() uint64 { return w.drops }

func TestHandleEventsPublishesDrops(t *testing.T) {
	ctx, win, _ := newTestContext(t)
	ctx.Window = &lossyWindow{MemoryWindow: win, drops: 7}
	NewGame(ctx).HandleEvents()
	if got := ctx.Status.Ints.Get(status.KeyEventsDropped).Load(); got != 7 {
		t.Errorf("events.dropped = %d, want 7", got)
	}
}

type scoreEvent struct{ Points int }

// TestDeferredCommandsRunThenCarriersDie verifies collect, execute, destroy
func TestDeferredCommandsRunThenCarriersDie(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	g := NewGame(ctx)
	w := ctx.World

	parent := w.Create()
	child := w.CreateChild(parent)
	var got []int
	event.Subscribe(ctx.Bus, func(ev scoreEvent, _ any) { got = append(got, ev.Points) })

	var carriers []core.Entity
	mocks := StoreOf[MockComponent](w)
	e := w.Create()
	mocks.Set(e, MockComponent{})
	mocks.Each(func(core.Entity, *MockComponent) {
		// scheduled mid-iteration: destroys a subtree that is being iterated over elsewhere
		carriers = append(carriers,
			Schedule(w, DestroyEntity{Entity: parent}),
			Schedule(w, EmitEvent{Event: scoreEvent{Points: 5}}),
			Schedule(w, RequestExit{}),
		)
	})

	g.RunDeferredEvents()

	if w.Alive(parent) || w.Alive(child) {
		t.Error("DestroyEntity did not cascade")
	}
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("emitted = %v", got)
	}
	if !ctx.ExitRequested() {
		t.Error("exit not requested")
	}
	for _, c := range carriers {
		if w.Alive(c) {
			t.Errorf("carrier %s survived", c)
		}
	}
	if StoreOf[DeferredEvent](w).Len() != 0 {
		t.Error("deferred store not empty")
	}
}

func TestSceneCommandsRunOnce(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	g := NewGame(ctx)
	newScenes(ctx)
	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)

	ctx.Schedule(LoadSceneCommand{Name: "level", Mode: LoadSingle})
	g.RunDeferredEvents()
	g.RunDeferredEvents()

	if ctx.Scenes.IsLoaded("menu") {
		t.Error("single load left menu loaded")
	}
	if d, ok := ctx.Scenes.Depth("level"); !ok || d != 2 {
		t.Errorf("level depth = %d, %v; want 2 from a single load", d, ok)
	}

	ctx.Schedule(UnloadSceneCommand{Name: "level"})
	g.RunDeferredEvents()
	if len(ctx.Scenes.Loaded()) != 0 {
		t.Errorf("loaded = %d scenes after unload, want 0", len(ctx.Scenes.Loaded()))
	}
}

// rescheduler schedules a new command while being executed
type rescheduler struct{ StateBase }

func (s *rescheduler) Enter(ctx *GameContext) {
	s.StateBase.Enter(ctx)
	ctx.Schedule(PopState{})
}

func TestCommandsScheduledDuringFlushWaitOneFrame(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	g := NewGame(ctx)
	ctx.RegisterState("again", func() GameState { return &rescheduler{StateBase: NewStateBase("again")} })

	ctx.Schedule(PushState{Name: "again"})
	g.RunDeferredEvents()
	if ctx.States.Len() != 1 {
		t.Fatalf("states = %d, want 1 after first flush", ctx.States.Len())
	}
	if StoreOf[DeferredEvent](ctx.World).Len() != 1 {
		t.Fatal("command scheduled during flush was lost or run")
	}
	g.RunDeferredEvents()
	if ctx.States.Len() != 0 {
		t.Errorf("states = %d, want 0 after second flush", ctx.States.Len())
	}
}

func TestUnknownStateCommandIgnored(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ctx.Schedule(ChangeState{Name: "missing"})
	NewGame(ctx).RunDeferredEvents()
	if ctx.States.Len() != 0 {
		t.Error("unknown state pushed")
	}
}

func TestBusDrainedAfterCommands(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	g := NewGame(ctx)
	var got []int
	event.Subscribe(ctx.Bus, func(ev scoreEvent, _ any) { got = append(got, ev.Points) })

	ev := scoreEvent{Points: 1}
	event.EmitDeferred(ctx.Bus, ev, nil)
	ev.Points = 100
	g.RunDeferredEvents()
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("got %v, want captured [1]", got)
	}
}

type frameCounter struct {
	SystemBase
	frames int
	dts    []time.Duration
}

func (s *frameCounter) Update(_ *World, dt time.Duration) {
	s.frames++
	s.dts = append(s.dts, dt)
}

func TestRunStopsAtFrameLimit(t *testing.T) {
	ctx, win, rec := newTestContext(t)
	ctx.Config.Loop.TargetFPS = 0
	clock := NewManualClock(time.Unix(0, 0))
	clock.SetStep(10 * time.Millisecond)
	ctx.Time = clock

	counter := &frameCounter{SystemBase: NewSystemBase(StageUpdate, "counter")}
	ctx.Pipeline.Add(counter)

	g := NewGame(ctx)
	g.SetFrameLimit(3)
	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if counter.frames != 3 {
		t.Errorf("frames = %d, want 3", counter.frames)
	}
	for i, dt := range counter.dts {
		if dt != 10*time.Millisecond {
			t.Errorf("frame %d dt = %v, want 10ms", i, dt)
		}
	}
	if win.Polls() != 3 {
		t.Errorf("polls = %d, want one per frame", win.Polls())
	}
	if rec.Presents != 3 {
		t.Errorf("presents = %d, want 3", rec.Presents)
	}
	if got := ctx.Status.Ints.Get(status.KeyFrameCount).Load(); got != 3 {
		t.Errorf("frame.count = %d", got)
	}
	if win.IsOpen() {
		t.Error("window left open after shutdown")
	}
}

func TestRunSkipsBodyWhenWindowClosed(t *testing.T) {
	ctx, win, _ := newTestContext(t)
	win.Close()
	counter := &frameCounter{SystemBase: NewSystemBase(StageUpdate, "counter")}
	ctx.Pipeline.Add(counter)

	if err := NewGame(ctx).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if counter.frames != 0 {
		t.Errorf("frames = %d, want 0", counter.frames)
	}
}

func TestRunHonorsExitAndCancel(t *testing.T) {
	t.Run("exit request finishes the frame", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)
		ctx.Config.Loop.TargetFPS = 0
		counter := &frameCounter{SystemBase: NewSystemBase(StageUpdate, "counter")}
		ctx.Pipeline.Add(counter)
		ctx.Schedule(RequestExit{})

		if err := NewGame(ctx).Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		if counter.frames != 1 {
			t.Errorf("frames = %d, want 1", counter.frames)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)
		c, cancel := context.WithCancel(context.Background())
		cancel()
		if err := NewGame(ctx).Run(c); err != context.Canceled {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	})
}

func TestShutdownUnloadsEverything(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	ctx.Config.Loop.TargetFPS = 0
	m, _, _ := newScenes(ctx)
	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)
	ctx.States.Push(newTracked("play", new([]string)))

	g := NewGame(ctx)
	g.SetFrameLimit(1)
	if err := g.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ctx.States.Len() != 0 || len(ctx.Scenes.Loaded()) != 0 {
		t.Error("states or scenes left after shutdown")
	}
	if ctx.World.Alive(m.Root()) {
		t.Error("scene root survived")
	}
}
