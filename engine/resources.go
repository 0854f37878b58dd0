package engine

import (
	"reflect"
)

// SetResource registers or replaces the singleton of type T
// Resources are stored by pointer so systems mutate them in place
func SetResource[T any](w *World, resource *T) {
	w.resources[reflect.TypeFor[T]()] = resource
}

// GetResource retrieves the singleton of type T
// Returns nil and false if not registered
func GetResource[T any](w *World) (*T, bool) {
	val, ok := w.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return val.(*T), true
}

// MustGetResource retrieves a resource or panics if missing
// Used for core singletons (window size, main camera) that must exist
func MustGetResource[T any](w *World) *T {
	res, ok := GetResource[T](w)
	if !ok {
		panic("Required resource not found: " + reflect.TypeFor[T]().String())
	}
	return res
}

// RemoveResource drops the singleton of type T
func RemoveResource[T any](w *World) {
	delete(w.resources, reflect.TypeFor[T]())
}
