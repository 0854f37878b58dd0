package engine

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/component"
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/parameter"
)

// World owns every entity, its components, the parent/child index and singleton resources
//
// Structural changes (component set/remove, entity destruction) made while the world
// is staging are queued and applied in request order when the outermost staging scope ends.
// The world is driven from the frame loop goroutine only and is not safe for concurrent use
type World struct {
	pool       *entityPool
	stores     map[reflect.Type]anyStore
	storeOrder []anyStore

	parent   map[core.Entity]core.Entity
	children map[core.Entity][]core.Entity

	prefabs     map[core.Entity]string
	prefabNames map[string]core.Entity

	resources map[reflect.Type]any

	stagingDepth int
	queue        []func()
	merging      bool

	log *zap.Logger
}

func NewWorld(log *zap.Logger) *World {
	return &World{
		pool:        newEntityPool(parameter.EntityPoolCapacity),
		stores:      make(map[reflect.Type]anyStore),
		parent:      make(map[core.Entity]core.Entity),
		children:    make(map[core.Entity][]core.Entity),
		prefabs:     make(map[core.Entity]string),
		prefabNames: make(map[string]core.Entity),
		resources:   make(map[reflect.Type]any),
		log:         log.Named("world"),
	}
}

// Create reserves a new entity; it is alive immediately even while staging
func (w *World) Create() core.Entity {
	return w.pool.create()
}

// CreateChild creates an entity owned by parent
func (w *World) CreateChild(parent core.Entity) core.Entity {
	e := w.Create()
	w.SetParent(e, parent)
	return e
}

func (w *World) Alive(e core.Entity) bool {
	return w.pool.isAlive(e)
}

// Len is the number of live entities, prefabs included
func (w *World) Len() int {
	return w.pool.alive
}

// Destroy removes e and all of its descendants, children first
// Destroying a dead entity is a no-op
func (w *World) Destroy(e core.Entity) {
	if w.Staging() {
		w.enqueue(func() { w.destroy(e) })
		return
	}
	w.destroy(e)
}

func (w *World) destroy(e core.Entity) {
	if !w.pool.isAlive(e) {
		return
	}
	for _, c := range w.Children(e) {
		w.destroy(c)
	}
	for _, s := range w.storeOrder {
		s.remove(e)
	}
	w.detach(e)
	delete(w.children, e)
	if name, ok := w.prefabs[e]; ok {
		delete(w.prefabs, e)
		if name != "" {
			delete(w.prefabNames, name)
		}
	}
	w.pool.destroy(e)
}

// Clear drops every entity, component and queued operation; resources are kept
func (w *World) Clear() {
	for _, s := range w.storeOrder {
		s.clear()
	}
	clear(w.parent)
	clear(w.children)
	clear(w.prefabs)
	clear(w.prefabNames)
	w.queue = nil
	w.pool.reset()
}

// BeginStaging opens a staging scope; scopes nest
func (w *World) BeginStaging() {
	w.stagingDepth++
}

// EndStaging closes a scope and merges queued operations when the outermost one ends
func (w *World) EndStaging() {
	if w.stagingDepth == 0 {
		panic("EndStaging without matching BeginStaging")
	}
	w.stagingDepth--
	if w.stagingDepth == 0 {
		w.Merge()
	}
}

func (w *World) Staging() bool {
	return w.stagingDepth > 0 && !w.merging
}

// Merge applies queued operations now, regardless of scope depth
func (w *World) Merge() {
	if w.merging {
		return
	}
	w.merging = true
	defer func() { w.merging = false }()

	for len(w.queue) > 0 {
		q := w.queue
		w.queue = nil
		for _, op := range q {
			op()
		}
	}
}

// Pending is the number of queued structural operations
func (w *World) Pending() int {
	return len(w.queue)
}

// Defer runs fn inside a staging scope
func (w *World) Defer(fn func()) {
	w.BeginStaging()
	defer w.EndStaging()
	fn()
}

func (w *World) enqueue(op func()) {
	w.queue = append(w.queue, op)
}

// Components lists the component type names held by e, for debugging
func (w *World) Components(e core.Entity) []string {
	var out []string
	for _, s := range w.storeOrder {
		if s.has(e) {
			out = append(out, s.typeName())
		}
	}
	return out
}

func (w *World) mustBeAlive(e core.Entity, op string) {
	if !w.pool.isAlive(e) {
		panic(fmt.Sprintf("%s: dead entity %s", op, e))
	}
}

// OneFrame tags e for destruction at the end of the current frame
func (w *World) OneFrame(e core.Entity) {
	StoreOf[component.OneFrameComponent](w).Set(e, component.OneFrameComponent{})
}
