package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/stagecraft/engine"
)

func (e *Engine) register() {
	for name, fn := range map[string]lua.LGFunction{
		"load_scene":   e.loadScene,
		"unload_scene": e.unloadScene,
		"push_state":   e.pushState,
		"pop_state":    e.popState,
		"change_state": e.changeState,
		"play_music":   e.playMusic,
		"stop_music":   e.stopMusic,
		"request_exit": e.requestExit,
		"scene_loaded": e.sceneLoaded,
		"log":          e.logMessage,
	} {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// schedule raises a Lua error when no context is attached
func (e *Engine) schedule(L *lua.LState, cmd engine.Command) int {
	if e.ctx == nil {
		L.RaiseError("engine context not attached")
		return 0
	}
	e.ctx.Schedule(cmd)
	return 0
}

// load_scene(name [, "single"|"additive"])
func (e *Engine) loadScene(L *lua.LState) int {
	name := L.CheckString(1)
	mode := engine.LoadAdditive
	switch m := L.OptString(2, "additive"); m {
	case "additive":
	case "single":
		mode = engine.LoadSingle
	default:
		L.ArgError(2, "mode must be \"single\" or \"additive\", got "+m)
		return 0
	}
	return e.schedule(L, engine.LoadSceneCommand{Name: name, Mode: mode})
}

func (e *Engine) unloadScene(L *lua.LState) int {
	return e.schedule(L, engine.UnloadSceneCommand{Name: L.CheckString(1)})
}

// push_state(name) with a name registered through GameContext.RegisterState
func (e *Engine) pushState(L *lua.LState) int {
	return e.schedule(L, engine.PushState{Name: L.CheckString(1)})
}

func (e *Engine) popState(L *lua.LState) int {
	return e.schedule(L, engine.PopState{})
}

func (e *Engine) changeState(L *lua.LState) int {
	return e.schedule(L, engine.ChangeState{Name: L.CheckString(1)})
}

func (e *Engine) playMusic(L *lua.LState) int {
	return e.schedule(L, engine.PlayMusic{Name: L.CheckString(1)})
}

func (e *Engine) stopMusic(L *lua.LState) int {
	return e.schedule(L, engine.StopMusic{})
}

func (e *Engine) requestExit(L *lua.LState) int {
	return e.schedule(L, engine.RequestExit{})
}

// scene_loaded(name) reads the registry directly; loads scheduled this frame are not visible yet
func (e *Engine) sceneLoaded(L *lua.LState) int {
	if e.ctx == nil {
		L.RaiseError("engine context not attached")
		return 0
	}
	L.Push(lua.LBool(e.ctx.Scenes.IsLoaded(L.CheckString(1))))
	return 1
}

// log(msg [, level]) writes to the engine log; level defaults to info
func (e *Engine) logMessage(L *lua.LState) int {
	msg := L.CheckString(1)
	switch L.OptString(2, "info") {
	case "debug":
		e.log.Debug(msg)
	case "warn":
		e.log.Warn(msg)
	case "error":
		e.log.Error(msg)
	default:
		e.log.Info(msg)
	}
	return 0
}
