package engine

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/status"
)

// Game drives the frame loop over a GameContext
type Game struct {
	ctx        *GameContext
	meter      *status.FrameMeter
	activeName *status.AtomicString
	topScene   *status.AtomicString
	dropped    *atomic.Int64
	frameLimit int64
	log        *zap.Logger
}

func NewGame(ctx *GameContext) *Game {
	return &Game{
		ctx:        ctx,
		meter:      status.NewFrameMeter(ctx.Status),
		activeName: ctx.Status.Strings.Get(status.KeyActiveState),
		topScene:   ctx.Status.Strings.Get(status.KeyTopScene),
		dropped:    ctx.Status.Ints.Get(status.KeyEventsDropped),
		log:        ctx.Log.Named("game"),
	}
}

// SetFrameLimit stops Run after n frames; 0 runs until exit
func (g *Game) SetFrameLimit(n int64) {
	g.frameLimit = n
}

func (g *Game) Context() *GameContext {
	return g.ctx
}

// Run loops until the window closes, exit is requested or ctx is cancelled
// Each condition is checked between frames; a frame always runs to completion
func (g *Game) Run(ctx context.Context) error {
	defer g.shutdown()

	var ticker *time.Ticker
	if interval := g.ctx.Config.FrameInterval(); interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	last := g.ctx.Time.Now()
	for g.running(ctx) {
		now := g.ctx.Time.Now()
		dt := now.Sub(last)
		last = now

		frames := g.Frame(dt)
		if g.frameLimit > 0 && frames >= g.frameLimit {
			g.log.Debug("frame limit reached", zap.Int64("frames", frames))
			break
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}
	return ctx.Err()
}

func (g *Game) running(ctx context.Context) bool {
	if ctx.Err() != nil || g.ctx.ExitRequested() {
		return false
	}
	return g.ctx.Window != nil && g.ctx.Window.IsOpen()
}

// Frame runs one iteration: events, stages, present, deferred flush, frame mark
// Returns the number of completed frames
func (g *Game) Frame(dt time.Duration) int64 {
	g.HandleEvents()

	r := g.ctx.Renderer
	if r != nil {
		r.Clear()
	}
	g.ctx.Pipeline.Progress(g.ctx.World, dt)
	if r != nil {
		r.Present()
	}

	g.RunDeferredEvents()

	if top, ok := g.ctx.States.Top(); ok {
		g.activeName.Store(top.Name())
	} else {
		g.activeName.Store("")
	}
	if top, ok := g.ctx.Scenes.Top(); ok {
		g.topScene.Store(top.Name())
	} else {
		g.topScene.Store("")
	}
	return g.meter.Mark(dt, g.ctx.World.Len())
}

// RunDeferredEvents executes every scheduled command, then destroys the carriers and
// every one-frame entity alive at flush start in a single staged transaction
// Commands scheduled while executing wait for the next frame
func (g *Game) RunDeferredEvents() {
	w := g.ctx.World
	carriers := StoreOf[DeferredEvent](w)
	oneFrame := StoreOf[component.OneFrameComponent](w)

	var doomed []core.Entity
	var cmds []Command
	for _, e := range carriers.Entities() {
		if w.IsPrefab(e) {
			continue
		}
		de, _ := carriers.Get(e)
		doomed = append(doomed, e)
		cmds = append(cmds, de.Command)
	}
	for _, e := range oneFrame.Entities() {
		if !w.IsPrefab(e) {
			doomed = append(doomed, e)
		}
	}

	for _, cmd := range cmds {
		g.execute(cmd)
	}

	w.Defer(func() {
		for _, e := range doomed {
			w.Destroy(e)
		}
	})

	g.ctx.Bus.ProcessDeferredEvents()
}

func (g *Game) execute(cmd Command) {
	ctx := g.ctx
	switch c := cmd.(type) {
	case DestroyEntity:
		ctx.World.Destroy(c.Entity)
	case PushState:
		if s, ok := g.resolveState(c.State, c.Name); ok {
			ctx.States.Push(s)
		}
	case PopState:
		ctx.States.Pop()
	case ChangeState:
		if s, ok := g.resolveState(c.State, c.Name); ok {
			ctx.States.ChangeState(s)
		}
	case LoadSceneCommand:
		ctx.Scenes.LoadSceneNamed(c.Name, c.Mode)
	case UnloadSceneCommand:
		ctx.Scenes.UnloadSceneNamed(c.Name)
	case PlayMusic:
		if ctx.Audio == nil {
			g.log.Warn("play music without audio", zap.String("name", c.Name))
			return
		}
		ctx.Audio.PlayMusic(c.Name)
	case StopMusic:
		if ctx.Audio != nil {
			ctx.Audio.StopMusic()
		}
	case RunScript:
		if ctx.Scripts == nil {
			g.log.Warn("script call without scripting", zap.String("func", c.Func))
			return
		}
		if err := ctx.Scripts.Call(c.Func); err != nil {
			g.log.Error("script call failed", zap.String("func", c.Func), zap.Error(err))
		}
	case RequestExit:
		ctx.RequestExit()
	case EmitEvent:
		ctx.Bus.EmitValue(c.Event, cmd)
	case nil:
		g.log.Warn("deferred event without command")
	default:
		g.log.Warn("unknown deferred command", zap.Any("command", c))
	}
}

func (g *Game) resolveState(s GameState, name string) (GameState, bool) {
	if s != nil {
		return s, true
	}
	s, ok := g.ctx.NewState(name)
	if !ok {
		g.log.Warn("unknown state", zap.String("name", name))
	}
	return s, ok
}

func (g *Game) shutdown() {
	g.ctx.States.Clear()
	g.ctx.Scenes.UnloadAll()
	if w := g.ctx.Window; w != nil && w.IsOpen() {
		w.Close()
	}
	g.log.Info("game stopped", zap.Any("status", g.ctx.Status.Snapshot()))
}
