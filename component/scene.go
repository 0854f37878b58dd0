package component

import "github.com/lixenwraith/stagecraft/input"

// SceneRootComponent tags the root entity of a loaded scene
type SceneRootComponent struct {
	Name string
}

// ScenePausedComponent excludes a scene root from dispatch
type ScenePausedComponent struct{}

// SceneDepthComponent orders scenes; higher depth was loaded later and wins
type SceneDepthComponent struct {
	Depth uint64
}

// EventBindingsComponent holds the key bindings a scene root listens to
type EventBindingsComponent struct {
	Bindings *input.Bindings
}

// StateRootComponent tags the root entity of a game state
type StateRootComponent struct {
	Name string
}

// PrefabComponent marks a template entity; systems skip prefabs
type PrefabComponent struct {
	Name string
}
