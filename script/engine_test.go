package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/render"
	"github.com/lixenwraith/stagecraft/terminal"
)

func newTestContext(t *testing.T) *engine.GameContext {
	t.Helper()
	cfg := config.Default()
	win := terminal.NewMemoryWindow(core.Vec2u{X: cfg.Window.RefWidth, Y: cfg.Window.RefHeight})
	rec := render.NewRecorder(render.NewView(core.Vec2{X: 1, Y: 1}))
	return engine.NewGameContext(cfg, win, rec, zap.NewNop())
}

// pending returns the commands currently waiting for the end-of-frame flush
func pending(ctx *engine.GameContext) []engine.Command {
	var out []engine.Command
	engine.StoreOf[engine.DeferredEvent](ctx.World).Each(func(_ core.Entity, d *engine.DeferredEvent) {
		out = append(out, d.Command)
	})
	return out
}

func TestScriptSchedulesCommands(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want engine.Command
	}{
		{"load additive", `load_scene("menu")`, engine.LoadSceneCommand{Name: "menu", Mode: engine.LoadAdditive}},
		{"load single", `load_scene("level", "single")`, engine.LoadSceneCommand{Name: "level", Mode: engine.LoadSingle}},
		{"unload", `unload_scene("menu")`, engine.UnloadSceneCommand{Name: "menu"}},
		{"push", `push_state("pause")`, engine.PushState{Name: "pause"}},
		{"pop", `pop_state()`, engine.PopState{}},
		{"change", `change_state("play")`, engine.ChangeState{Name: "play"}},
		{"music", `play_music("theme")`, engine.PlayMusic{Name: "theme"}},
		{"stop music", `stop_music()`, engine.StopMusic{}},
		{"exit", `request_exit()`, engine.RequestExit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext(t)
			e := NewEngine(zap.NewNop())
			defer e.Close()
			e.Attach(ctx)

			if err := e.RunString(tt.src); err != nil {
				t.Fatalf("RunString: %v", err)
			}
			got := pending(ctx)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("scheduled %v, want [%v]", got, tt.want)
			}
		})
	}
}

func TestScriptErrors(t *testing.T) {
	ctx := newTestContext(t)
	e := NewEngine(zap.NewNop())
	defer e.Close()

	if err := e.RunString(`request_exit()`); err == nil || !strings.Contains(err.Error(), "not attached") {
		t.Errorf("unattached call error = %v", err)
	}

	e.Attach(ctx)
	if err := e.RunString(`load_scene("menu", "sideways")`); err == nil {
		t.Error("bad load mode accepted")
	}
	if err := e.RunString(`load_scene()`); err == nil {
		t.Error("missing scene name accepted")
	}
	if err := e.Call("undefined_hook"); err == nil {
		t.Error("call of undefined function succeeded")
	}
	if n := len(pending(ctx)); n != 0 {
		t.Errorf("%d commands scheduled by failing calls", n)
	}
}

func TestRunScriptCommandCallsHook(t *testing.T) {
	ctx := newTestContext(t)
	e := NewEngine(zap.NewNop())
	defer e.Close()
	e.Attach(ctx)
	ctx.Scripts = e

	if err := e.RunString(`
calls = 0
function on_start()
  calls = calls + 1
  if API_VERSION == 1 and not scene_loaded("menu") then
    request_exit()
  end
end
`); err != nil {
		t.Fatal(err)
	}
	if !e.Has("on_start") || e.Has("calls") {
		t.Error("Has misreports globals")
	}

	ctx.Schedule(engine.RunScript{Func: "on_start"})
	game := engine.NewGame(ctx)
	game.RunDeferredEvents()
	if ctx.ExitRequested() {
		t.Fatal("command scheduled by the hook ran in the same flush")
	}
	game.RunDeferredEvents()
	if !ctx.ExitRequested() {
		t.Error("hook's exit request never executed")
	}
}

func TestServiceRunsEntryScript(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.lua"), []byte(`load_scene("menu", "single")`), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext(t)
	s := NewService(config.ScriptsConfig{Dir: dir, Entry: "main.lua"}, zap.NewNop())
	s.Attach(ctx)
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := pending(ctx); len(got) != 1 || got[0] != (engine.LoadSceneCommand{Name: "menu", Mode: engine.LoadSingle}) {
		t.Errorf("entry script scheduled %v", got)
	}

	var published []any
	s.Contribute(func(c any) { published = append(published, c) })
	if len(published) != 1 {
		t.Fatalf("published %d capabilities", len(published))
	}
	if _, ok := published[0].(engine.Scripts); !ok {
		t.Error("published value does not implement engine.Scripts")
	}

	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Error("second Stop failed")
	}

	missing := NewService(config.ScriptsConfig{Dir: dir, Entry: "absent.lua"}, zap.NewNop())
	missing.Init()
	if err := missing.Start(); err != nil {
		t.Errorf("missing entry script: %v", err)
	}
	missing.Stop()
}
