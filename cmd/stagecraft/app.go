package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/asset"
	"github.com/lixenwraith/stagecraft/audio"
	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/engine"
	"github.com/lixenwraith/stagecraft/input"
	"github.com/lixenwraith/stagecraft/render"
	"github.com/lixenwraith/stagecraft/script"
	"github.com/lixenwraith/stagecraft/service"
	"github.com/lixenwraith/stagecraft/system"
	"github.com/lixenwraith/stagecraft/terminal"
)

type options struct {
	headless bool
	frames   int64
	// device overrides the audio output; nil selects the speaker, or silence when headless
	device audio.Device
}

// app is the wired engine: services, context and game
type app struct {
	hub     *service.Hub
	window  *terminal.WindowService
	scripts *script.Service
	ctx     *engine.GameContext
	game    *engine.Game
	log     *zap.Logger
}

// newApp registers and initializes every service, then builds the game context around them
func newApp(cfg *config.Config, opts options, log *zap.Logger) (*app, error) {
	a := &app{hub: service.NewHub(log), log: log}

	ref := core.Vec2u{X: cfg.Window.RefWidth, Y: cfg.Window.RefHeight}
	a.window = terminal.NewWindowService(terminal.TcellOptions{
		Title:         cfg.Window.Title,
		Mouse:         cfg.Window.Mouse,
		KeyHoldWindow: cfg.Input.KeyHoldWindow,
	}, ref, log)
	assets := asset.NewService(cfg.Assets.Manifest, log)

	device := opts.device
	if device == nil && opts.headless {
		device = &audio.NullDevice{}
	}
	sound := audio.NewService(assets.Manager(), cfg.Audio, device, log)
	a.scripts = script.NewService(cfg.Scripts, log)

	for _, svc := range []service.Service{a.window, assets, sound, a.scripts} {
		if err := a.hub.Register(svc); err != nil {
			return nil, err
		}
	}
	if err := a.hub.InitAll(terminal.Headless(opts.headless)); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	var renderer render.Renderer
	if screen := a.window.Screen(); screen != nil {
		renderer = render.NewTcellRenderer(screen, render.NewView(ref.ToVec2()))
	} else {
		renderer = render.NewRecorder(render.NewView(ref.ToVec2()))
	}

	a.ctx = engine.NewGameContext(cfg, a.window.Window(), renderer, log)
	a.hub.Contribute(a.publish)
	a.scripts.Attach(a.ctx)

	a.addSystems(cfg)
	a.game = engine.NewGame(a.ctx)
	a.game.SetFrameLimit(opts.frames)
	return a, nil
}

// publish routes service capabilities into the game context
func (a *app) publish(capability any) {
	switch c := capability.(type) {
	case *asset.Manager:
		a.ctx.Assets = c
	case engine.Audio:
		a.ctx.Audio = c
	case engine.Scripts:
		a.ctx.Scripts = c
	case terminal.Window:
		// already the context window
	default:
		a.log.Warn("unrouted service capability", zap.String("type", fmt.Sprintf("%T", c)))
	}
}

func (a *app) addSystems(cfg *config.Config) {
	ctx := a.ctx
	bindings := input.NewBindings()
	bindings.DeadZone = cfg.Input.JoystickDeadZone
	engine.SetResource(ctx.World, &component.InputBindingsResource{Bindings: bindings})

	ctx.Pipeline.Add(
		system.NewEventDispatchSystem(a.log),
		system.NewInputIntentSystem(ctx.Window),
		system.NewMousePositionSystem(ctx.Window),
		system.NewCameraViewportSystem(),
		system.NewUIHitTestSystem(a.log),

		newPlayerControlSystem(),
		system.NewLifetimeSystem(),
		system.NewCameraShakeIntentSystem(),
		system.NewPhysicsSystem(),
		system.NewParticleEmitterSystem(nil),

		system.NewLifetimeCullSystem(),
		&boundsSystem{},

		system.NewCameraShakeSystem(nil),
		system.NewApplyCameraSystem(ctx.Renderer),

		system.NewRenderSystem(ctx.Renderer),
	)
}

// start launches the services, registers demo content and queues the first scene
func (a *app) start() error {
	if err := a.hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	registerDemo(a.ctx)
	a.ctx.Schedule(engine.LoadSceneCommand{Name: sceneMenu, Mode: engine.LoadSingle})
	if e := a.scripts.Engine(); e != nil && e.Has(scriptStartHook) {
		a.ctx.Schedule(engine.RunScript{Func: scriptStartHook})
	}
	return nil
}

// run starts the app, drives the frame loop and always stops the services
func run(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger) (err error) {
	a, err := newApp(cfg, opts, log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, a.hub.StopAll())
	}()
	if err := a.start(); err != nil {
		return err
	}

	err = a.game.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("stopped by signal")
		return nil
	}
	return err
}
