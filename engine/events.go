// Package engine runs the frame loop of a stagecraft game.
//
// # Frame Structure
//
// Every frame the Game drains the window once, translating raw events into
// entities, then runs the pipeline stages in fixed order:
//
//	input -> update -> post_update -> pre_store -> store
//
// Each stage runs inside one staging scope of the World: structural changes
// requested while iterating are queued and merged when the stage ends, so a
// later stage always sees what an earlier stage created or destroyed.
//
// # Deferred Commands
//
// Systems that need a structural change with wider effect (destroying a
// subtree, switching states, loading scenes) do not perform it while iterating.
// They Schedule a Command instead. After the store stage the Game collects every
// DeferredEvent, executes the commands in collection order, then destroys the
// carriers together with every one-frame entity in one staged transaction.
// The event bus backlog is drained last.
//
// # Scenes and States
//
// Scenes are registered by type and loaded additively or singly; each load
// takes the next depth and the highest depth wins input dispatch. Game states
// form a stack where only the top is active.
package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/terminal"
)

// ResizeIntent scales ref uniformly into newSize and centers it
func ResizeIntent(oldSize, newSize, ref core.Vec2u) component.WindowResizeIntentComponent {
	intent := component.WindowResizeIntentComponent{OldSize: oldSize, NewSize: newSize}
	if ref.X == 0 || ref.Y == 0 {
		return intent
	}
	intent.Scale = min(float64(newSize.X)/float64(ref.X), float64(newSize.Y)/float64(ref.Y))
	intent.Offset = core.Vec2{
		X: (float64(newSize.X) - float64(ref.X)*intent.Scale) / 2,
		Y: (float64(newSize.Y) - float64(ref.Y)*intent.Scale) / 2,
	}
	return intent
}

// HandleEvents drains the window once and translates every event
func (g *Game) HandleEvents() {
	win := g.ctx.Window
	if win == nil {
		return
	}
	for _, ev := range win.PollEvents() {
		g.handleEvent(ev)
	}
	if dc, ok := win.(terminal.DropCounter); ok {
		g.dropped.Store(int64(dc.DroppedEvents()))
	}
}

func (g *Game) handleEvent(ev terminal.Event) {
	w := g.ctx.World
	switch ev.Type {
	case terminal.EventClosed:
		g.log.Debug("window closed")
		g.ctx.Window.Close()

	case terminal.EventResized:
		size := MustGetResource[component.WindowSizeResource](w)
		intent := ResizeIntent(size.Current, ev.Size, size.Reference)
		e := w.Create()
		StoreOf[component.WindowResizeIntentComponent](w).Set(e, intent)
		w.OneFrame(e)
		// later systems of this frame read the new size
		size.Current = ev.Size
		g.log.Debug("window resized",
			zap.Uint32("width", ev.Size.X),
			zap.Uint32("height", ev.Size.Y),
			zap.Float64("scale", intent.Scale))

	case terminal.EventFocusLost:
		w.InstantiateNamed(PrefabFocusLost)

	case terminal.EventFocusGained:
		w.InstantiateNamed(PrefabFocusGained)

	case terminal.EventKeyPressed:
		if e, ok := w.InstantiateNamed(PrefabKeyPressed); ok {
			StoreOf[component.KeyPressedComponent](w).Set(e, component.KeyPressedComponent{Key: ev.Key})
		}

	case terminal.EventKeyReleased:
		if e, ok := w.InstantiateNamed(PrefabKeyReleased); ok {
			StoreOf[component.KeyReleasedComponent](w).Set(e, component.KeyReleasedComponent{Key: ev.Key})
		}

	case terminal.EventMousePressed:
		if e, ok := w.InstantiateNamed(PrefabMousePressed); ok {
			StoreOf[component.MousePressedComponent](w).Set(e, component.MousePressedComponent{
				Button:   ev.Mouse.Button,
				Position: ev.Mouse.Position,
			})
		}

	case terminal.EventMouseReleased:
		if e, ok := w.InstantiateNamed(PrefabMouseReleased); ok {
			StoreOf[component.MouseReleasedComponent](w).Set(e, component.MouseReleasedComponent{
				Button:   ev.Mouse.Button,
				Position: ev.Mouse.Position,
			})
		}

	case terminal.EventMouseMoved:
		// the pointer position is polled from the window during the input stage

	default:
		g.log.Debug("unhandled window event", zap.Stringer("type", ev.Type))
	}
}
