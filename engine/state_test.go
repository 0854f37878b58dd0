package engine

import (
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/config"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/render"
	"github.com/lixenwraith/stagecraft/terminal"
)

func newTestContext(t *testing.T) (*GameContext, *terminal.MemoryWindow, *render.Recorder) {
	t.Helper()
	cfg := config.Default()
	win := terminal.NewMemoryWindow(core.Vec2u{X: cfg.Window.RefWidth, Y: cfg.Window.RefHeight})
	rec := render.NewRecorder(render.NewView(core.Vec2{X: 1, Y: 1}))
	return NewGameContext(cfg, win, rec, zap.NewNop()), win, rec
}

// trackedState records hook calls into a shared journal
type trackedState struct {
	StateBase
	journal *[]string
}

func newTracked(name string, journal *[]string) *trackedState {
	return &trackedState{StateBase: NewStateBase(name), journal: journal}
}

func (s *trackedState) Enter(ctx *GameContext) {
	s.StateBase.Enter(ctx)
	*s.journal = append(*s.journal, "enter "+s.Name())
}

func (s *trackedState) Exit(ctx *GameContext) {
	*s.journal = append(*s.journal, "exit "+s.Name())
	s.StateBase.Exit(ctx)
}

func (s *trackedState) Pause(ctx *GameContext) {
	s.StateBase.Pause(ctx)
	*s.journal = append(*s.journal, "pause "+s.Name())
}

func (s *trackedState) Resume(ctx *GameContext) {
	s.StateBase.Resume(ctx)
	*s.journal = append(*s.journal, "resume "+s.Name())
}

// TestStateStackMatchesPlainStack replays operation sequences and checks hooks and top
func TestStateStackMatchesPlainStack(t *testing.T) {
	tests := []struct {
		name    string
		ops     []string // "push X", "pop", "change X"
		top     string
		length  int
		journal []string
	}{
		{
			name:    "push pauses previous",
			ops:     []string{"push a", "push b"},
			top:     "b",
			length:  2,
			journal: []string{"enter a", "pause a", "enter b"},
		},
		{
			name:    "pop resumes below",
			ops:     []string{"push a", "push b", "pop"},
			top:     "a",
			length:  1,
			journal: []string{"enter a", "pause a", "enter b", "exit b", "resume a"},
		},
		{
			name:    "change does not resume",
			ops:     []string{"push a", "push b", "change c"},
			top:     "c",
			length:  2,
			journal: []string{"enter a", "pause a", "enter b", "exit b", "enter c"},
		},
		{
			name:    "pop on empty is a no-op",
			ops:     []string{"pop", "change a"},
			top:     "a",
			length:  1,
			journal: []string{"enter a"},
		},
		{
			name:    "pop to empty",
			ops:     []string{"push a", "pop", "pop"},
			top:     "",
			length:  0,
			journal: []string{"enter a", "exit a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _ := newTestContext(t)
			var journal []string
			for _, op := range tt.ops {
				switch {
				case op == "pop":
					ctx.States.Pop()
				case op[:4] == "push":
					ctx.States.Push(newTracked(op[5:], &journal))
				default:
					ctx.States.ChangeState(newTracked(op[7:], &journal))
				}
			}

			if ctx.States.Len() != tt.length {
				t.Errorf("Len = %d, want %d", ctx.States.Len(), tt.length)
			}
			top, ok := ctx.States.Top()
			if tt.top == "" {
				if ok {
					t.Errorf("Top = %s, want empty", top.Name())
				}
			} else if !ok || top.Name() != tt.top {
				t.Errorf("Top = %v, want %s", top, tt.top)
			}
			if !slices.Equal(journal, tt.journal) {
				t.Errorf("journal = %v\nwant      %v", journal, tt.journal)
			}
		})
	}
}

func TestStateExitDestroysSubtree(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	w := ctx.World
	s := newTracked("play", new([]string))
	ctx.States.Push(s)

	root := s.Root()
	if !StoreOf[component.StateRootComponent](w).Has(root) {
		t.Fatal("state root not tagged")
	}
	child := s.Spawn(ctx)
	grandchild := w.CreateChild(child)

	// Exit inside an iteration scope stays staged until the scope ends
	w.BeginStaging()
	ctx.States.Pop()
	if !w.Alive(root) {
		t.Error("root destroyed while staging")
	}
	w.EndStaging()

	for _, e := range []core.Entity{root, child, grandchild} {
		if w.Alive(e) {
			t.Errorf("%s survived state exit", e)
		}
	}
}

func TestStatePausedFlag(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	a, b := newTracked("a", new([]string)), newTracked("b", new([]string))
	ctx.States.Push(a)
	ctx.States.Push(b)
	if !a.Paused() || b.Paused() {
		t.Errorf("paused a=%v b=%v, want true false", a.Paused(), b.Paused())
	}
	ctx.States.Clear()
	if ctx.States.Len() != 0 {
		t.Error("Clear left states")
	}
}
