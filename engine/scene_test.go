package engine

import (
	"testing"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/input"
	"github.com/lixenwraith/stagecraft/terminal"
)

type menuScene struct {
	SceneBase
	inits int
}

func (s *menuScene) Initialize(ctx *GameContext) {
	s.SceneBase.Initialize(ctx)
	s.inits++
	s.Spawn()
}

type hudScene struct{ SceneBase }

type levelScene struct{ SceneBase }

func newScenes(ctx *GameContext) (*menuScene, *hudScene, *levelScene) {
	m := &menuScene{SceneBase: NewSceneBase("menu")}
	h := &hudScene{SceneBase: NewSceneBase("hud")}
	l := &levelScene{SceneBase: NewSceneBase("level")}
	AddScene(ctx.Scenes, m)
	AddScene(ctx.Scenes, h)
	AddScene(ctx.Scenes, l)
	return m, h, l
}

func TestAddSceneFirstRegistrationWins(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	first := &menuScene{SceneBase: NewSceneBase("menu")}
	AddScene(ctx.Scenes, first)
	AddScene(ctx.Scenes, &menuScene{SceneBase: NewSceneBase("other")})

	if got := MustGetScene[*menuScene](ctx.Scenes); got != first {
		t.Error("re-registration replaced the scene")
	}
	if _, ok := GetScene[*hudScene](ctx.Scenes); ok {
		t.Error("unregistered scene found")
	}
}

func TestLoadSceneAssignsIncreasingDepth(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	m, h, _ := newScenes(ctx)

	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)
	LoadScene[*hudScene](ctx.Scenes, LoadAdditive)
	// loading a loaded scene is a no-op
	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)
	if m.inits != 1 {
		t.Errorf("menu initialized %d times", m.inits)
	}

	depths := StoreOf[component.SceneDepthComponent](ctx.World)
	dm, _ := depths.Get(m.Root())
	dh, _ := depths.Get(h.Root())
	if dm == nil || dh == nil || dh.Depth <= dm.Depth {
		t.Fatalf("depths menu=%v hud=%v, want hud > menu", dm, dh)
	}
	hudDepth := dh.Depth

	// unload and reload takes a fresh, higher depth
	UnloadScene[*menuScene](ctx.Scenes)
	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)
	dm2, _ := ctx.Scenes.Depth("menu")
	if dm2 <= hudDepth {
		t.Errorf("reloaded depth %d not above %d", dm2, hudDepth)
	}
	if top, _ := ctx.Scenes.Top(); top.Name() != "menu" {
		t.Errorf("Top = %s, want menu", top.Name())
	}
}

func TestLoadSingleLeavesOneScene(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	m, h, l := newScenes(ctx)

	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)
	LoadScene[*hudScene](ctx.Scenes, LoadAdditive)
	oldMenuRoot, oldHudRoot := m.Root(), h.Root()
	maxDepth, _ := ctx.Scenes.Depth("hud")

	LoadScene[*levelScene](ctx.Scenes, LoadSingle)

	loaded := ctx.Scenes.Loaded()
	if len(loaded) != 1 || loaded[0] != Scene(l) {
		t.Fatalf("loaded = %v, want only level", loaded)
	}
	if d, _ := ctx.Scenes.Depth("level"); d <= maxDepth {
		t.Errorf("level depth %d not above %d", d, maxDepth)
	}
	if ctx.World.Alive(oldMenuRoot) || ctx.World.Alive(oldHudRoot) {
		t.Error("unloaded scene roots survived")
	}

	// single load of the already loaded scene reloads it with a new depth
	before, _ := ctx.Scenes.Depth("level")
	LoadScene[*levelScene](ctx.Scenes, LoadSingle)
	if after, _ := ctx.Scenes.Depth("level"); after <= before {
		t.Errorf("single reload depth %d not above %d", after, before)
	}
}

func TestSceneShutdownDestroysSubtree(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	m, _, _ := newScenes(ctx)
	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)

	root := m.Root()
	children := ctx.World.Children(root)
	if len(children) != 1 {
		t.Fatalf("menu children = %d, want 1", len(children))
	}
	UnloadScene[*menuScene](ctx.Scenes)
	if ctx.World.Alive(root) || ctx.World.Alive(children[0]) {
		t.Error("scene subtree survived unload")
	}
	if ctx.Scenes.IsLoaded("menu") {
		t.Error("menu still loaded")
	}
}

func TestSceneNamedAndRemove(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	newScenes(ctx)

	if !ctx.Scenes.LoadSceneNamed("hud", LoadAdditive) || !ctx.Scenes.IsLoaded("hud") {
		t.Fatal("LoadSceneNamed failed")
	}
	if ctx.Scenes.LoadSceneNamed("nope", LoadAdditive) {
		t.Error("unknown scene loaded")
	}
	RemoveScene[*hudScene](ctx.Scenes)
	if ctx.Scenes.IsLoaded("hud") || len(ctx.Scenes.Loaded()) != 0 {
		t.Error("removed scene still loaded")
	}
	if ctx.Scenes.UnloadSceneNamed("hud") {
		t.Error("removed scene still addressable")
	}
}

func TestScenePauseAndBindings(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	m, _, _ := newScenes(ctx)
	prefab := ctx.World.NewPrefab("Jump")
	m.Bind(input.Keyboard(terminal.RuneKey(' ')), prefab)
	LoadScene[*menuScene](ctx.Scenes, LoadAdditive)

	eb, ok := StoreOf[component.EventBindingsComponent](ctx.World).Get(m.Root())
	if !ok {
		t.Fatal("bindings not attached to root")
	}
	if p, ok := eb.Bindings.Lookup(input.Keyboard(terminal.RuneKey(' '))); !ok || p != prefab {
		t.Error("binding lookup failed")
	}

	m.Pause()
	if !m.Paused() {
		t.Error("scene not paused")
	}
	m.Resume()
	if m.Paused() {
		t.Error("scene still paused")
	}
}
