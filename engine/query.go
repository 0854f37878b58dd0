package engine

import "github.com/lixenwraith/stagecraft/core"

// Each2 visits entities holding both A and B, iterating the smaller store
// Runs inside a staging scope like Store.Each
func Each2[A, B any](w *World, fn func(e core.Entity, a *A, b *B)) {
	sa, sb := StoreOf[A](w), StoreOf[B](w)
	w.BeginStaging()
	defer w.EndStaging()

	var candidates []core.Entity
	if sa.Len() <= sb.Len() {
		candidates = sa.Entities()
	} else {
		candidates = sb.Entities()
	}
	for _, e := range candidates {
		if w.IsPrefab(e) {
			continue
		}
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// Each3 visits entities holding A, B and C, iterating the smallest store
func Each3[A, B, C any](w *World, fn func(e core.Entity, a *A, b *B, c *C)) {
	sa, sb, sc := StoreOf[A](w), StoreOf[B](w), StoreOf[C](w)
	w.BeginStaging()
	defer w.EndStaging()

	candidates := sa.entities
	if sb.Len() < len(candidates) {
		candidates = sb.entities
	}
	if sc.Len() < len(candidates) {
		candidates = sc.entities
	}
	for _, e := range append([]core.Entity(nil), candidates...) {
		if w.IsPrefab(e) {
			continue
		}
		a, ok := sa.Get(e)
		if !ok {
			continue
		}
		b, ok := sb.Get(e)
		if !ok {
			continue
		}
		c, ok := sc.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
