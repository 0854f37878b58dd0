package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
)

// GameState is one entry of the state stack
// Pause and Resume are hooks; the stack never changes structure through them
type GameState interface {
	Name() string
	Enter(ctx *GameContext)
	Exit(ctx *GameContext)
	Pause(ctx *GameContext)
	Resume(ctx *GameContext)
	Root() core.Entity
}

// StateBase implements GameState; embed it and call through when overriding
type StateBase struct {
	name   string
	root   core.Entity
	paused bool
}

func NewStateBase(name string) StateBase {
	return StateBase{name: name}
}

func (s *StateBase) Name() string      { return s.name }
func (s *StateBase) Root() core.Entity { return s.root }
func (s *StateBase) Paused() bool      { return s.paused }

func (s *StateBase) Enter(ctx *GameContext) {
	s.root = ctx.World.Create()
	StoreOf[component.StateRootComponent](ctx.World).Set(s.root, component.StateRootComponent{Name: s.name})
	s.paused = false
}

// Exit deletes the subtree then the root in one staged transaction
func (s *StateBase) Exit(ctx *GameContext) {
	w, root := ctx.World, s.root
	s.root = core.NoEntity
	if root.IsZero() || !w.Alive(root) {
		return
	}
	w.Defer(func() {
		w.DeleteChildren(root)
		w.Destroy(root)
	})
}

func (s *StateBase) Pause(*GameContext)  { s.paused = true }
func (s *StateBase) Resume(*GameContext) { s.paused = false }

// Spawn creates an entity owned by the state root
func (s *StateBase) Spawn(ctx *GameContext) core.Entity {
	return ctx.World.CreateChild(s.root)
}

// StateStack is a LIFO of game states; only the top is active
type StateStack struct {
	ctx    *GameContext
	states []GameState
	log    *zap.Logger
}

func NewStateStack(ctx *GameContext, log *zap.Logger) *StateStack {
	return &StateStack{ctx: ctx, log: log.Named("state")}
}

// Push pauses the current top, then enters state as the new top
func (s *StateStack) Push(state GameState) {
	if top, ok := s.Top(); ok {
		top.Pause(s.ctx)
	}
	s.states = append(s.states, state)
	state.Enter(s.ctx)
	s.log.Debug("state pushed", zap.String("name", state.Name()), zap.Int("depth", len(s.states)))
}

// Pop exits the top and resumes the one below; no-op when empty
func (s *StateStack) Pop() {
	top, ok := s.Top()
	if !ok {
		return
	}
	top.Exit(s.ctx)
	s.states[len(s.states)-1] = nil
	s.states = s.states[:len(s.states)-1]
	s.log.Debug("state popped", zap.String("name", top.Name()), zap.Int("depth", len(s.states)))
	if next, ok := s.Top(); ok {
		next.Resume(s.ctx)
	}
}

// ChangeState exits the top without resuming anything below, then enters state
func (s *StateStack) ChangeState(state GameState) {
	if top, ok := s.Top(); ok {
		top.Exit(s.ctx)
		s.states[len(s.states)-1] = nil
		s.states = s.states[:len(s.states)-1]
		s.log.Debug("state exited", zap.String("name", top.Name()))
	}
	s.states = append(s.states, state)
	state.Enter(s.ctx)
	s.log.Debug("state changed", zap.String("name", state.Name()), zap.Int("depth", len(s.states)))
}

func (s *StateStack) Top() (GameState, bool) {
	if len(s.states) == 0 {
		return nil, false
	}
	return s.states[len(s.states)-1], true
}

func (s *StateStack) Len() int {
	return len(s.states)
}

// Clear pops every state, top first
func (s *StateStack) Clear() {
	for len(s.states) > 0 {
		s.Pop()
	}
}
