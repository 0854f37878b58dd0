package event

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Listener receives an event together with whoever emitted it
type Listener[T any] func(ev T, sender any)

type listener struct {
	id uint64
	fn func(ev any, sender any)
}

type pending struct {
	typ    reflect.Type
	ev     any
	sender any
}

// Bus is a typed publish/subscribe hub keyed by event type
// Events are values: Emit and EmitDeferred receive copies
type Bus struct {
	mu        sync.Mutex
	listeners map[reflect.Type][]listener
	deferred  []pending
	nextID    uint64
	log       *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[reflect.Type][]listener),
		log:       log,
	}
}

// Subscription identifies one listener for Unsubscribe
type Subscription struct {
	typ reflect.Type
	id  uint64
}

// Subscribe registers fn for events of type T; listeners run in subscription order
func Subscribe[T any](b *Bus, fn Listener[T]) Subscription {
	t := reflect.TypeFor[T]()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.listeners[t] = append(b.listeners[t], listener{
		id: b.nextID,
		fn: func(ev any, sender any) { fn(ev.(T), sender) },
	})
	return Subscription{typ: t, id: b.nextID}
}

// Unsubscribe removes a listener; unknown subscriptions are ignored
func (b *Bus) Unsubscribe(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ls := b.listeners[s.typ]
	for i, l := range ls {
		if l.id == s.id {
			b.listeners[s.typ] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit invokes every listener for T synchronously
func Emit[T any](b *Bus, ev T, sender any) {
	b.dispatch(reflect.TypeFor[T](), ev, sender)
}

// EmitDeferred captures a copy of ev for the next ProcessDeferredEvents call
// The copy is shallow: slice, map and pointer fields still share the caller's data
func EmitDeferred[T any](b *Bus, ev T, sender any) {
	b.mu.Lock()
	b.deferred = append(b.deferred, pending{typ: reflect.TypeFor[T](), ev: ev, sender: sender})
	b.mu.Unlock()
}

// EmitValue dispatches an event whose static type is unknown to the caller
// Listeners subscribed to the dynamic type of ev receive it
func (b *Bus) EmitValue(ev any, sender any) {
	if ev == nil {
		return
	}
	b.dispatch(reflect.TypeOf(ev), ev, sender)
}

// ProcessDeferredEvents drains the backlog captured at call start, in arrival order
// Events deferred while draining wait for the next call
func (b *Bus) ProcessDeferredEvents() int {
	b.mu.Lock()
	batch := b.deferred
	b.deferred = nil
	b.mu.Unlock()

	for _, p := range batch {
		b.dispatch(p.typ, p.ev, p.sender)
	}
	return len(batch)
}

// Pending returns the number of deferred events awaiting a drain
func (b *Bus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.deferred)
}

func (b *Bus) dispatch(t reflect.Type, ev any, sender any) {
	b.mu.Lock()
	ls := b.listeners[t]
	// Snapshot so listeners may subscribe or unsubscribe while being called
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	b.mu.Unlock()

	if len(snapshot) == 0 && b.log != nil {
		b.log.Debug("event without listeners", zap.Stringer("type", t))
	}
	for _, l := range snapshot {
		l.fn(ev, sender)
	}
}
