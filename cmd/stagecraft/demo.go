package main

import (
	"time"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/input"
	"github.com/lixenwraith/stagecraft/parameter"
	"github.com/lixenwraith/stagecraft/render"
	"github.com/lixenwraith/stagecraft/terminal"
)

// Scene, state and hook names shared with scripts
const (
	sceneMenu  = "menu"
	sceneLevel = "level"
	scenePause = "pause"

	statePlay   = "play"
	statePaused = "paused"

	scriptStartHook = "on_start"
	musicTheme      = "theme"
	soundPause      = "pause"
)

// Prefab names
const (
	prefabQuit  = "QuitRequest"
	prefabPlay  = "PlayRequest"
	prefabPop   = "PopRequest"
	prefabPause = "PauseRequest"
	prefabShake = "ShakeRequest"
	prefabMove  = "PlayerMove"
)

var (
	styleTitle  = render.Style{Fg: render.RGBFrost, NoBg: true}
	styleButton = render.Style{Fg: render.RGBSnow, Bg: render.RGBPolar}
	styleHint   = render.Style{Fg: render.RGBPurple, NoBg: true}
	stylePlayer = render.Style{Fg: render.RGBYellow, Rune: '@', NoBg: true}
	styleBall   = render.Style{Fg: render.RGBAurora, Rune: 'o', NoBg: true}
	styleSpark  = render.Style{Fg: render.RGBOrange, Rune: '*', NoBg: true}
	styleGround = render.Style{Bg: render.RGBGreen}
)

// registerDemo creates the demo prefabs, scenes and states
func registerDemo(ctx *engine.GameContext) {
	w := ctx.World
	carrier := func(name string, cmd engine.Command) core.Entity {
		p := w.NewPrefab(name)
		engine.StoreOf[engine.DeferredEvent](w).Set(p, engine.DeferredEvent{Command: cmd})
		return p
	}
	quit := carrier(prefabQuit, engine.RequestExit{})
	play := carrier(prefabPlay, engine.PushState{Name: statePlay})
	pop := carrier(prefabPop, engine.PopState{})
	pause := carrier(prefabPause, engine.PushState{Name: statePaused})

	shake := w.NewPrefab(prefabShake)
	engine.StoreOf[component.CameraShakeIntentComponent](w).Set(shake, component.CameraShakeIntentComponent{
		Intensity: 1,
		Duration:  300 * time.Millisecond,
	})
	w.NewPrefab(prefabMove)

	menu := &menuScene{SceneBase: engine.NewSceneBase(sceneMenu)}
	menu.Bind(input.Keyboard(terminal.NamedKey(terminal.KeyEnter)), play)
	menu.Bind(input.Keyboard(terminal.RuneKey('q')), quit)

	level := &levelScene{SceneBase: engine.NewSceneBase(sceneLevel)}
	level.Bind(input.Keyboard(terminal.NamedKey(terminal.KeyEscape)), pop)
	level.Bind(input.Keyboard(terminal.RuneKey('p')), pause)
	level.Bind(input.Keyboard(terminal.RuneKey(' ')), shake)

	paused := &pauseScene{SceneBase: engine.NewSceneBase(scenePause)}
	paused.Bind(input.Keyboard(terminal.RuneKey('p')), pop)
	paused.Bind(input.Keyboard(terminal.RuneKey('q')), quit)

	engine.AddScene(ctx.Scenes, menu)
	engine.AddScene(ctx.Scenes, level)
	engine.AddScene(ctx.Scenes, paused)

	ctx.RegisterState(statePlay, func() engine.GameState { return newPlayState() })
	ctx.RegisterState(statePaused, func() engine.GameState { return newPausedState() })
}

func refSize(ctx *engine.GameContext) core.Vec2 {
	return engine.MustGetResource[component.WindowSizeResource](ctx.World).Reference.ToVec2()
}

func spawnText(s *engine.SceneBase, w *engine.World, at core.Vec2, text string, style render.Style) core.Entity {
	e := s.Spawn()
	engine.StoreOf[component.TransformComponent](w).Set(e, component.TransformComponent{Position: at})
	engine.StoreOf[component.TextComponent](w).Set(e, component.TextComponent{Text: text, Style: style})
	engine.StoreOf[component.ZOrderComponent](w).Set(e, component.ZOrderComponent{Z: parameter.ZOrderUI + 1})
	return e
}

// spawnButton creates a clickable panel with a centered label
func spawnButton(s *engine.SceneBase, w *engine.World, at core.Vec2, label string, cmd engine.Command) core.Entity {
	e := s.Spawn()
	size := core.Vec2{X: float64(len(label) + 4), Y: 3}
	engine.StoreOf[component.TransformComponent](w).Set(e, component.TransformComponent{Position: at})
	engine.StoreOf[component.SizeComponent](w).Set(e, component.SizeComponent{Size: size})
	engine.StoreOf[component.RectangleComponent](w).Set(e, component.RectangleComponent{Style: styleButton})
	engine.StoreOf[component.ZOrderComponent](w).Set(e, component.ZOrderComponent{Z: parameter.ZOrderUI})
	engine.StoreOf[component.ClickableComponent](w).Set(e, component.ClickableComponent{OnClick: cmd})

	l := w.CreateChild(e)
	engine.StoreOf[component.TransformComponent](w).Set(l, component.TransformComponent{Position: at.Add(core.Vec2{X: 2, Y: 1})})
	engine.StoreOf[component.TextComponent](w).Set(l, component.TextComponent{Text: label, Style: styleButton})
	engine.StoreOf[component.ZOrderComponent](w).Set(l, component.ZOrderComponent{Z: parameter.ZOrderUI + 1})
	return e
}

type menuScene struct {
	engine.SceneBase
}

func (s *menuScene) Initialize(ctx *engine.GameContext) {
	s.SceneBase.Initialize(ctx)
	w := ctx.World
	ref := refSize(ctx)
	cx := ref.X / 2

	spawnText(&s.SceneBase, w, core.Vec2{X: cx - 5, Y: 3}, "STAGECRAFT", styleTitle)
	spawnButton(&s.SceneBase, w, core.Vec2{X: cx - 5, Y: 8}, "Play", engine.PushState{Name: statePlay})
	spawnButton(&s.SceneBase, w, core.Vec2{X: cx - 5, Y: 12}, "Quit", engine.RequestExit{})
	spawnText(&s.SceneBase, w, core.Vec2{X: cx - 14, Y: ref.Y - 2}, "enter: play  q: quit  click works", styleHint)

	ctx.Schedule(engine.PlayMusic{Name: musicTheme})
}

// levelScene is the playground: a possessed player, bouncing balls and a spark emitter
type levelScene struct {
	engine.SceneBase
	moveKeys []input.Key
}

var moveDirections = map[terminal.Key]core.Vec2{
	terminal.KeyUp:    {Y: -1},
	terminal.KeyDown:  {Y: 1},
	terminal.KeyLeft:  {X: -1},
	terminal.KeyRight: {X: 1},
}

func (s *levelScene) Initialize(ctx *engine.GameContext) {
	s.SceneBase.Initialize(ctx)
	w := ctx.World
	ref := refSize(ctx)

	player := s.Spawn()
	engine.StoreOf[component.TransformComponent](w).Set(player, component.TransformComponent{Position: ref.Scale(0.5)})
	engine.StoreOf[component.VelocityComponent](w).Set(player, component.VelocityComponent{})
	engine.StoreOf[component.AccelerationComponent](w).Set(player, component.AccelerationComponent{})
	engine.StoreOf[component.FrictionComponent](w).Set(player, component.FrictionComponent{Friction: 3})
	engine.StoreOf[component.RadiusComponent](w).Set(player, component.RadiusComponent{Radius: 1})
	engine.StoreOf[component.ColliderComponent](w).Set(player, component.ColliderComponent{Shape: component.ColliderCircle})
	engine.StoreOf[component.CircleComponent](w).Set(player, component.CircleComponent{Style: stylePlayer})
	engine.StoreOf[component.ZOrderComponent](w).Set(player, component.ZOrderComponent{Z: parameter.ZOrderDefault + 1})
	engine.StoreOf[component.PossessedByPlayerComponent](w).Set(player, component.PossessedByPlayerComponent{PlayerID: 1})

	ground := s.Spawn()
	engine.StoreOf[component.TransformComponent](w).Set(ground, component.TransformComponent{Position: core.Vec2{Y: ref.Y - 1}})
	engine.StoreOf[component.SizeComponent](w).Set(ground, component.SizeComponent{Size: core.Vec2{X: ref.X, Y: 1}})
	engine.StoreOf[component.RectangleComponent](w).Set(ground, component.RectangleComponent{Style: styleGround})
	engine.StoreOf[component.ZOrderComponent](w).Set(ground, component.ZOrderComponent{Z: parameter.ZOrderBackground})

	for i, v := range []core.Vec2{{X: 12, Y: 5}, {X: -9, Y: 7}, {X: 6, Y: -10}} {
		ball := s.Spawn()
		engine.StoreOf[component.TransformComponent](w).Set(ball, component.TransformComponent{
			Position: core.Vec2{X: ref.X * float64(i+1) / 4, Y: ref.Y / 3},
		})
		engine.StoreOf[component.VelocityComponent](w).Set(ball, component.VelocityComponent{Velocity: v})
		engine.StoreOf[component.GravityComponent](w).Set(ball, component.GravityComponent{Gravity: core.Vec2{Y: 4}})
		engine.StoreOf[component.RadiusComponent](w).Set(ball, component.RadiusComponent{Radius: 1})
		engine.StoreOf[component.ColliderComponent](w).Set(ball, component.ColliderComponent{Shape: component.ColliderCircle})
		engine.StoreOf[component.CircleComponent](w).Set(ball, component.CircleComponent{Style: styleBall})
		engine.StoreOf[component.ZOrderComponent](w).Set(ball, component.ZOrderComponent{Z: parameter.ZOrderDefault})
	}

	emitter := s.Spawn()
	engine.StoreOf[component.TransformComponent](w).Set(emitter, component.TransformComponent{Position: core.Vec2{X: ref.X / 2, Y: ref.Y - 3}})
	engine.StoreOf[component.ParticleEmitterComponent](w).Set(emitter, component.ParticleEmitterComponent{
		RatePerSecond: parameter.ParticleRatePerSecond,
		MaxParticles:  parameter.ParticleMaxCount,
		MinLifetime:   time.Duration(parameter.ParticleMinLifetime * float64(time.Second)),
		MaxLifetime:   time.Duration(parameter.ParticleMaxLifetime * float64(time.Second)),
		MinVelocity:   parameter.ParticleMinVelocity,
		MaxVelocity:   parameter.ParticleMaxVelocity,
		Style:         styleSpark,
		Enabled:       true,
	})

	spawnText(&s.SceneBase, w, core.Vec2{X: 1, Y: 0}, "arrows: move  space: shake  p: pause  esc: menu", styleHint)

	// Held arrows feed the possession path; discrete keys go through the scene bindings
	bindings := engine.MustGetResource[component.InputBindingsResource](w).Bindings
	move := w.MustPrefab(prefabMove)
	s.moveKeys = s.moveKeys[:0]
	for k := range moveDirections {
		key := input.Keyboard(terminal.NamedKey(k))
		bindings.Bind(key, move)
		s.moveKeys = append(s.moveKeys, key)
	}
}

func (s *levelScene) Shutdown(ctx *engine.GameContext) {
	bindings := engine.MustGetResource[component.InputBindingsResource](ctx.World).Bindings
	for _, k := range s.moveKeys {
		bindings.Unbind(k)
	}
	s.SceneBase.Shutdown(ctx)
}

type pauseScene struct {
	engine.SceneBase
}

func (s *pauseScene) Initialize(ctx *engine.GameContext) {
	s.SceneBase.Initialize(ctx)
	ref := refSize(ctx)
	spawnText(&s.SceneBase, ctx.World, core.Vec2{X: ref.X/2 - 3, Y: ref.Y / 2}, "PAUSED", styleTitle)
	spawnText(&s.SceneBase, ctx.World, core.Vec2{X: ref.X/2 - 9, Y: ref.Y/2 + 2}, "p: resume  q: quit", styleHint)
}

// playState owns the level for as long as it is on the stack
type playState struct {
	engine.StateBase
}

func newPlayState() *playState {
	return &playState{StateBase: engine.NewStateBase(statePlay)}
}

func (s *playState) Enter(ctx *engine.GameContext) {
	s.StateBase.Enter(ctx)
	ctx.Scenes.LoadSceneNamed(sceneLevel, engine.LoadSingle)
}

func (s *playState) Exit(ctx *engine.GameContext) {
	ctx.Scenes.LoadSceneNamed(sceneMenu, engine.LoadSingle)
	s.StateBase.Exit(ctx)
}

// pausedState overlays the pause scene and stops level input
type pausedState struct {
	engine.StateBase
}

func newPausedState() *pausedState {
	return &pausedState{StateBase: engine.NewStateBase(statePaused)}
}

func (s *pausedState) Enter(ctx *engine.GameContext) {
	s.StateBase.Enter(ctx)
	if level, ok := engine.GetScene[*levelScene](ctx.Scenes); ok {
		level.Pause()
	}
	ctx.Scenes.LoadSceneNamed(scenePause, engine.LoadAdditive)
	if ctx.Audio != nil {
		ctx.Audio.PlaySound(soundPause)
	}
}

func (s *pausedState) Exit(ctx *engine.GameContext) {
	ctx.Scenes.UnloadSceneNamed(scenePause)
	if level, ok := engine.GetScene[*levelScene](ctx.Scenes); ok {
		level.Resume()
	}
	s.StateBase.Exit(ctx)
}
