package system

import (
	"testing"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/render"
	"github.com/lixenwraith/stagecraft/terminal"
)

func newTestContext(t *testing.T) (*engine.GameContext, *terminal.MemoryWindow, *render.Recorder) {
	t.Helper()
	cfg := config.Default()
	win := terminal.NewMemoryWindow(core.Vec2u{X: cfg.Window.RefWidth, Y: cfg.Window.RefHeight})
	rec := render.NewRecorder(render.NewView(core.Vec2{X: 1, Y: 1}))
	return engine.NewGameContext(cfg, win, rec, zap.NewNop()), win, rec
}

// testScene is a bare scene with optional bindings
type testScene struct {
	engine.SceneBase
}

func newTestScene(name string) *testScene {
	return &testScene{SceneBase: engine.NewSceneBase(name)}
}

type otherScene struct {
	engine.SceneBase
}

type thirdScene struct {
	engine.SceneBase
}
