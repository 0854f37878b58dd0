package engine

import (
	"github.com/lixenwraith/stagecraft/core"
)

// Command is a structural request executed by the frame loop after all stages ran
// The set of variants is closed; RunDeferredEvents dispatches on the concrete type
type Command interface {
	command()
}

// DestroyEntity destroys an entity and its descendants
type DestroyEntity struct {
	Entity core.Entity
}

// PushState pushes State, or the state built by the factory registered under Name
type PushState struct {
	State GameState
	Name  string
}

type PopState struct{}

// ChangeState replaces the top state; State wins over Name when both are set
type ChangeState struct {
	State GameState
	Name  string
}

type LoadSceneCommand struct {
	Name string
	Mode LoadMode
}

type UnloadSceneCommand struct {
	Name string
}

type PlayMusic struct {
	Name string
}

type StopMusic struct{}

// RunScript calls a global function of the loaded scripts
type RunScript struct {
	Func string
}

type RequestExit struct{}

// EmitEvent publishes Event on the bus by its dynamic type
type EmitEvent struct {
	Event any
}

func (DestroyEntity) command()      {}
func (PushState) command()          {}
func (PopState) command()           {}
func (ChangeState) command()        {}
func (LoadSceneCommand) command()   {}
func (UnloadSceneCommand) command() {}
func (PlayMusic) command()          {}
func (StopMusic) command()          {}
func (RunScript) command()          {}
func (RequestExit) command()        {}
func (EmitEvent) command()          {}

// DeferredEvent carries a command on its own entity until the end-of-frame flush
type DeferredEvent struct {
	Command Command
}

// Schedule creates a carrier entity for cmd
// Safe inside iteration: the component write is staged like any other
func Schedule(w *World, cmd Command) core.Entity {
	e := w.Create()
	StoreOf[DeferredEvent](w).Set(e, DeferredEvent{Command: cmd})
	return e
}
