package engine

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/asset"
	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/event"
	"github.com/lixenwraith/stagecraft/parameter"
	"github.com/lixenwraith/stagecraft/render"
	"github.com/lixenwraith/stagecraft/status"
	"github.com/lixenwraith/stagecraft/terminal"
)

// Prefab names of the entities raw window events are translated into
const (
	PrefabKeyPressed    = "KeyPressedEvent"
	PrefabKeyReleased   = "KeyReleasedEvent"
	PrefabMousePressed  = "MousePressedEvent"
	PrefabMouseReleased = "MouseReleasedEvent"
	PrefabFocusLost     = "FocusLostEvent"
	PrefabFocusGained   = "FocusGainedEvent"
)

// Audio is the music and sound capability deferred commands drive
type Audio interface {
	PlayMusic(name string) bool
	StopMusic()
	PlaySound(name string) bool
}

// Scripts calls global functions of the loaded scripts
type Scripts interface {
	Call(fn string) error
}

// StateFactory builds a fresh state for named state requests
type StateFactory func() GameState

// GameContext holds everything the frame loop and its collaborators share
// Built once at startup and passed explicitly
type GameContext struct {
	// ===== Immutable After Init =====

	World    *World
	Window   terminal.Window
	Renderer render.Renderer
	Bus      *event.Bus
	Scenes   *SceneRegistry
	States   *StateStack
	Pipeline *Pipeline
	Status   *status.Registry
	Log      *zap.Logger
	Config   *config.Config

	// ===== Optional Collaborators =====
	// Nil disables the matching deferred commands; each miss is logged

	Assets  *asset.Manager
	Audio   Audio
	Scripts Scripts
	Time    Clock

	// ===== Atomic (Self-Synchronized) =====

	exit atomic.Bool

	// ===== Main-Loop Exclusive =====

	stateFactories map[string]StateFactory
}

// NewGameContext creates the world, registries and core singletons
// cfg must already be validated
func NewGameContext(cfg *config.Config, window terminal.Window, renderer render.Renderer, log *zap.Logger) *GameContext {
	ctx := &GameContext{
		World:          NewWorld(log),
		Window:         window,
		Renderer:       renderer,
		Bus:            event.NewBus(log.Named("bus")),
		Status:         status.NewRegistry(),
		Log:            log,
		Config:         cfg,
		Time:           SystemClock{},
		stateFactories: make(map[string]StateFactory),
	}
	ctx.Scenes = NewSceneRegistry(ctx, log)
	ctx.States = NewStateStack(ctx, log)
	ctx.Pipeline = NewPipeline(ctx.Status, log)

	ref := core.Vec2u{X: cfg.Window.RefWidth, Y: cfg.Window.RefHeight}
	size := ref
	if window != nil {
		size = window.Size()
	}

	SetResource(ctx.World, &component.WindowSizeResource{Current: size, Reference: ref})
	SetResource(ctx.World, &component.MousePositionResource{})

	view := render.NewView(ref.ToVec2())
	view.Viewport = render.LetterboxViewport(size, ref)
	SetResource(ctx.World, &component.MainCameraResource{View: view})
	if renderer != nil {
		renderer.SetView(view)
	}

	SetResource(ctx.World, &component.GravitySettingsResource{
		PixelsPerCentimeter: parameter.PixelsPerCentimeter,
		Enabled:             true,
	})

	ctx.registerEventPrefabs()
	return ctx
}

func (ctx *GameContext) registerEventPrefabs() {
	w := ctx.World
	oneFrame := StoreOf[component.OneFrameComponent](w)

	p := w.NewPrefab(PrefabKeyPressed)
	StoreOf[component.KeyPressedComponent](w).Set(p, component.KeyPressedComponent{})
	oneFrame.Set(p, component.OneFrameComponent{})

	p = w.NewPrefab(PrefabKeyReleased)
	StoreOf[component.KeyReleasedComponent](w).Set(p, component.KeyReleasedComponent{})
	oneFrame.Set(p, component.OneFrameComponent{})

	p = w.NewPrefab(PrefabMousePressed)
	StoreOf[component.MousePressedComponent](w).Set(p, component.MousePressedComponent{})
	oneFrame.Set(p, component.OneFrameComponent{})

	p = w.NewPrefab(PrefabMouseReleased)
	StoreOf[component.MouseReleasedComponent](w).Set(p, component.MouseReleasedComponent{})
	oneFrame.Set(p, component.OneFrameComponent{})

	p = w.NewPrefab(PrefabFocusLost)
	StoreOf[component.FocusLostComponent](w).Set(p, component.FocusLostComponent{})
	oneFrame.Set(p, component.OneFrameComponent{})

	p = w.NewPrefab(PrefabFocusGained)
	StoreOf[component.FocusGainedComponent](w).Set(p, component.FocusGainedComponent{})
	oneFrame.Set(p, component.OneFrameComponent{})
}

// RequestExit stops the frame loop at its next check
func (ctx *GameContext) RequestExit() {
	ctx.exit.Store(true)
}

func (ctx *GameContext) ExitRequested() bool {
	return ctx.exit.Load()
}

// RegisterState makes a state constructible by name for deferred commands and scripts
func (ctx *GameContext) RegisterState(name string, factory StateFactory) {
	ctx.stateFactories[name] = factory
}

// NewState builds the state registered under name
func (ctx *GameContext) NewState(name string) (GameState, bool) {
	f, ok := ctx.stateFactories[name]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Schedule queues cmd for the end-of-frame flush
func (ctx *GameContext) Schedule(cmd Command) core.Entity {
	return Schedule(ctx.World, cmd)
}
