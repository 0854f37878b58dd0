// Package script embeds a Lua VM whose functions request engine work through deferred commands
//
// Scripts never touch the world directly. Every exposed function schedules a command that
// the frame loop executes at the end-of-frame flush, so script calls are safe from any stage.
package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/engine"
)

// APIVersion is exposed to scripts as the API_VERSION global
const APIVersion = 1

// Engine wraps a single gopher-lua VM
// Single-goroutine access only (game loop)
type Engine struct {
	vm  *lua.LState
	ctx *engine.GameContext
	log *zap.Logger
}

// NewEngine creates the VM and registers the engine API
// Functions scheduling commands fail until Attach provides a context
func NewEngine(log *zap.Logger) *Engine {
	e := &Engine{
		vm:  lua.NewState(),
		log: log.Named("script"),
	}
	e.vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	e.register()
	return e
}

// Attach binds the game context commands are scheduled on
func (e *Engine) Attach(ctx *engine.GameContext) {
	e.ctx = ctx
}

// RunFile executes a script file in the shared VM
func (e *Engine) RunFile(path string) error {
	if err := e.vm.DoFile(path); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	e.log.Debug("lua script loaded", zap.String("file", path))
	return nil
}

// RunString executes a chunk of Lua source
func (e *Engine) RunString(src string) error {
	if err := e.vm.DoString(src); err != nil {
		return fmt.Errorf("run chunk: %w", err)
	}
	return nil
}

// Call invokes a global Lua function with no arguments
func (e *Engine) Call(fn string) error {
	f := e.vm.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return fmt.Errorf("lua function %s not defined", fn)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    0,
		Protect: true,
	}); err != nil {
		return fmt.Errorf("lua %s: %w", fn, err)
	}
	return nil
}

// Has reports whether fn is a defined global function
func (e *Engine) Has(fn string) bool {
	return e.vm.GetGlobal(fn).Type() == lua.LTFunction
}

func (e *Engine) Close() {
	e.vm.Close()
}
