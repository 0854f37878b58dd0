package engine

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/input"
)

// Scene owns a root entity; everything the scene spawns lives under it
type Scene interface {
	Name() string
	// Initialize creates the root entity and the scene content
	Initialize(ctx *GameContext)
	// Shutdown destroys the root and its subtree
	Shutdown(ctx *GameContext)
	Root() core.Entity
}

// LoadMode selects whether loading a scene unloads the others first
type LoadMode int

const (
	LoadAdditive LoadMode = iota
	LoadSingle
)

func (m LoadMode) String() string {
	if m == LoadSingle {
		return "single"
	}
	return "additive"
}

type sceneEntry struct {
	scene  Scene
	typ    reflect.Type
	loaded bool
	depth  uint64
}

// SceneRegistry keeps scenes keyed by type in registration order
// Every load assigns the next depth; depths are never reused
type SceneRegistry struct {
	ctx       *GameContext
	entries   []*sceneEntry
	byType    map[reflect.Type]*sceneEntry
	byName    map[string]*sceneEntry
	nextDepth uint64
	log       *zap.Logger
}

func NewSceneRegistry(ctx *GameContext, log *zap.Logger) *SceneRegistry {
	return &SceneRegistry{
		ctx:       ctx,
		byType:    make(map[reflect.Type]*sceneEntry),
		byName:    make(map[string]*sceneEntry),
		nextDepth: 1,
		log:       log.Named("scene"),
	}
}

// AddScene registers scene under its type; re-registering a type is a no-op
func AddScene[T Scene](r *SceneRegistry, scene T) {
	t := reflect.TypeFor[T]()
	if _, ok := r.byType[t]; ok {
		return
	}
	e := &sceneEntry{scene: scene, typ: t}
	r.entries = append(r.entries, e)
	r.byType[t] = e
	if _, ok := r.byName[scene.Name()]; !ok {
		r.byName[scene.Name()] = e
	}
	r.log.Debug("scene registered", zap.String("name", scene.Name()), zap.Stringer("type", t))
}

// LoadScene loads the scene registered for T; unknown types are ignored
func LoadScene[T Scene](r *SceneRegistry, mode LoadMode) {
	e, ok := r.byType[reflect.TypeFor[T]()]
	if !ok {
		r.log.Warn("load of unregistered scene", zap.Stringer("type", reflect.TypeFor[T]()))
		if mode == LoadSingle {
			r.UnloadAll()
		}
		return
	}
	r.load(e, mode)
}

func UnloadScene[T Scene](r *SceneRegistry) {
	if e, ok := r.byType[reflect.TypeFor[T]()]; ok {
		r.unload(e)
	}
}

func GetScene[T Scene](r *SceneRegistry) (T, bool) {
	e, ok := r.byType[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return e.scene.(T), true
}

// MustGetScene panics when T was never registered
func MustGetScene[T Scene](r *SceneRegistry) T {
	s, ok := GetScene[T](r)
	if !ok {
		panic(fmt.Sprintf("scene %s not registered", reflect.TypeFor[T]()))
	}
	return s
}

// RemoveScene unloads the scene if needed and forgets its registration
func RemoveScene[T Scene](r *SceneRegistry) {
	t := reflect.TypeFor[T]()
	e, ok := r.byType[t]
	if !ok {
		return
	}
	r.unload(e)
	delete(r.byType, t)
	if r.byName[e.scene.Name()] == e {
		delete(r.byName, e.scene.Name())
	}
	for i, x := range r.entries {
		if x == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
}

// LoadSceneNamed loads by scene name; reports false for unknown names
func (r *SceneRegistry) LoadSceneNamed(name string, mode LoadMode) bool {
	e, ok := r.byName[name]
	if !ok {
		r.log.Warn("load of unknown scene", zap.String("name", name))
		return false
	}
	r.load(e, mode)
	return true
}

func (r *SceneRegistry) UnloadSceneNamed(name string) bool {
	e, ok := r.byName[name]
	if !ok {
		r.log.Warn("unload of unknown scene", zap.String("name", name))
		return false
	}
	r.unload(e)
	return true
}

// UnloadAll shuts down every loaded scene in registration order
func (r *SceneRegistry) UnloadAll() {
	for _, e := range r.entries {
		r.unload(e)
	}
}

// Loaded lists loaded scenes in registration order
func (r *SceneRegistry) Loaded() []Scene {
	var out []Scene
	for _, e := range r.entries {
		if e.loaded {
			out = append(out, e.scene)
		}
	}
	return out
}

// IsLoaded reports whether the scene called name is loaded
func (r *SceneRegistry) IsLoaded(name string) bool {
	e, ok := r.byName[name]
	return ok && e.loaded
}

// Depth returns the depth assigned at the scene's most recent load
func (r *SceneRegistry) Depth(name string) (uint64, bool) {
	e, ok := r.byName[name]
	if !ok || !e.loaded {
		return 0, false
	}
	return e.depth, true
}

// Top returns the loaded scene with the highest depth
func (r *SceneRegistry) Top() (Scene, bool) {
	var top *sceneEntry
	for _, e := range r.entries {
		if e.loaded && (top == nil || e.depth > top.depth) {
			top = e
		}
	}
	if top == nil {
		return nil, false
	}
	return top.scene, true
}

// Single mode unloads every scene, the target included, so a reload gets a fresh depth
func (r *SceneRegistry) load(e *sceneEntry, mode LoadMode) {
	if mode == LoadSingle {
		r.UnloadAll()
	}
	if e.loaded {
		return
	}
	e.loaded = true
	e.scene.Initialize(r.ctx)
	e.depth = r.nextDepth
	r.nextDepth++
	if root := e.scene.Root(); r.ctx.World.Alive(root) {
		StoreOf[component.SceneDepthComponent](r.ctx.World).Set(root, component.SceneDepthComponent{Depth: e.depth})
	}
	r.log.Debug("scene loaded",
		zap.String("name", e.scene.Name()),
		zap.Uint64("depth", e.depth),
		zap.Stringer("mode", mode))
}

func (r *SceneRegistry) unload(e *sceneEntry) {
	if !e.loaded {
		return
	}
	e.loaded = false
	e.scene.Shutdown(r.ctx)
	r.log.Debug("scene unloaded", zap.String("name", e.scene.Name()))
}

// SceneBase implements Scene; embed it and call its Initialize first when overriding
type SceneBase struct {
	name     string
	root     core.Entity
	bindings *input.Bindings
	world    *World
}

func NewSceneBase(name string) SceneBase {
	return SceneBase{name: name}
}

func (s *SceneBase) Name() string      { return s.name }
func (s *SceneBase) Root() core.Entity { return s.root }

// Initialize creates the root tagged as a scene root, with the bind table when one was declared
func (s *SceneBase) Initialize(ctx *GameContext) {
	s.world = ctx.World
	s.root = s.world.Create()
	StoreOf[component.SceneRootComponent](s.world).Set(s.root, component.SceneRootComponent{Name: s.name})
	if s.bindings != nil {
		StoreOf[component.EventBindingsComponent](s.world).Set(s.root, component.EventBindingsComponent{Bindings: s.bindings})
	}
}

// Shutdown deletes the subtree then the root in one staged transaction
func (s *SceneBase) Shutdown(ctx *GameContext) {
	w, root := ctx.World, s.root
	w.Defer(func() {
		w.DeleteChildren(root)
		w.Destroy(root)
	})
	s.root = core.NoEntity
}

// Bind maps key to prefab in this scene's event bindings
func (s *SceneBase) Bind(key input.Key, prefab core.Entity) {
	if s.bindings == nil {
		s.bindings = input.NewBindings()
		if s.world != nil && s.world.Alive(s.root) {
			StoreOf[component.EventBindingsComponent](s.world).Set(s.root, component.EventBindingsComponent{Bindings: s.bindings})
		}
	}
	s.bindings.Bind(key, prefab)
}

func (s *SceneBase) Bindings() *input.Bindings {
	return s.bindings
}

// Spawn creates an entity owned by the scene root
func (s *SceneBase) Spawn() core.Entity {
	return s.world.CreateChild(s.root)
}

// Pause excludes the scene from event dispatch until Resume
func (s *SceneBase) Pause() {
	if s.world != nil && s.world.Alive(s.root) {
		StoreOf[component.ScenePausedComponent](s.world).Set(s.root, component.ScenePausedComponent{})
	}
}

func (s *SceneBase) Resume() {
	if s.world != nil && s.world.Alive(s.root) {
		StoreOf[component.ScenePausedComponent](s.world).Remove(s.root)
	}
}

func (s *SceneBase) Paused() bool {
	return s.world != nil && StoreOf[component.ScenePausedComponent](s.world).Has(s.root)
}
