package engine

import "github.com/lixenwraith/stagecraft/core"

// entityPool hands out generational entity handles and recycles destroyed slots
// Generations start at 1 so the zero handle is never alive
type entityPool struct {
	generations []uint32
	live        []bool
	freeList    []uint32
	alive       int
}

func newEntityPool(capacity int) *entityPool {
	return &entityPool{
		generations: make([]uint32, 0, capacity),
		live:        make([]bool, 0, capacity),
		freeList:    make([]uint32, 0, capacity/4),
	}
}

func (p *entityPool) create() core.Entity {
	p.alive++
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		p.live[idx] = true
		return core.NewEntity(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	p.live = append(p.live, true)
	return core.NewEntity(idx, 1)
}

func (p *entityPool) isAlive(e core.Entity) bool {
	idx := e.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return p.live[idx] && p.generations[idx] == e.Generation()
}

// destroy bumps the slot generation so stale handles stop resolving
func (p *entityPool) destroy(e core.Entity) bool {
	if !p.isAlive(e) {
		return false
	}
	idx := e.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.live[idx] = false
	p.freeList = append(p.freeList, idx)
	p.alive--
	return true
}

func (p *entityPool) reset() {
	p.generations = p.generations[:0]
	p.live = p.live[:0]
	p.freeList = p.freeList[:0]
	p.alive = 0
}
