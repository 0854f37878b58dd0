package core

import "fmt"

// Entity encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generation bumps on destroy so stale handles stop resolving
type Entity uint64

// NoEntity is never handed out: generations start at 1
const NoEntity Entity = 0

func NewEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

func (e Entity) Index() uint32      { return uint32(e) }
func (e Entity) Generation() uint32 { return uint32(e >> 32) }
func (e Entity) IsZero() bool       { return e == NoEntity }

func (e Entity) String() string {
	if e == NoEntity {
		return "entity(none)"
	}
	return fmt.Sprintf("entity(%d#%d)", e.Index(), e.Generation())
}
