package engine

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/stagecraft/status"
)

// Stage is a fixed phase of per-frame processing
type Stage int

const (
	StageInput Stage = iota
	StageUpdate
	StagePostUpdate
	StagePreStore
	StageStore

	stageCount
)

var stageNames = [stageCount]string{"input", "update", "post_update", "pre_store", "store"}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return "unknown"
	}
	return stageNames[s]
}

// System is one unit of per-frame work bound to a stage
type System interface {
	Stage() Stage
	Name() string
	Update(w *World, dt time.Duration)
}

// ImmediateSystem is implemented by systems whose structural changes must be
// visible to later systems of the same stage as soon as their own iteration ends
type ImmediateSystem interface {
	Immediate() bool
}

func isImmediate(s System) bool {
	im, ok := s.(ImmediateSystem)
	return ok && im.Immediate()
}

// Pipeline runs registered systems in stage order, registration order within a stage
type Pipeline struct {
	systems []System
	timings map[string]*status.AtomicFloat
	reg     *status.Registry
	log     *zap.Logger
}

func NewPipeline(reg *status.Registry, log *zap.Logger) *Pipeline {
	return &Pipeline{
		timings: make(map[string]*status.AtomicFloat),
		reg:     reg,
		log:     log.Named("pipeline"),
	}
}

// Add registers systems; stable sort keeps registration order within a stage
func (p *Pipeline) Add(systems ...System) {
	for _, s := range systems {
		if s.Stage() < 0 || s.Stage() >= stageCount {
			panic("system " + s.Name() + " has invalid stage")
		}
		p.systems = append(p.systems, s)
		if p.reg != nil {
			p.timings[s.Name()] = p.reg.Floats.Get("system." + s.Name() + ".ms")
		}
		p.log.Debug("system added", zap.String("name", s.Name()), zap.Stringer("stage", s.Stage()))
	}
	slices.SortStableFunc(p.systems, func(a, b System) int {
		return int(a.Stage()) - int(b.Stage())
	})
}

// Systems returns the systems in execution order
func (p *Pipeline) Systems() []System {
	return slices.Clone(p.systems)
}

// Progress runs every stage once
// Each stage runs in a single staging scope merged at the stage boundary
func (p *Pipeline) Progress(w *World, dt time.Duration) {
	i := 0
	for stage := StageInput; stage < stageCount; stage++ {
		w.BeginStaging()
		for ; i < len(p.systems) && p.systems[i].Stage() == stage; i++ {
			s := p.systems[i]
			if isImmediate(s) {
				// close the stage scope so pending ops merge and the system's own changes apply directly
				w.EndStaging()
				p.run(s, w, dt)
				w.BeginStaging()
				continue
			}
			p.run(s, w, dt)
		}
		w.EndStaging()
	}
}

func (p *Pipeline) run(s System, w *World, dt time.Duration) {
	start := time.Now()
	s.Update(w, dt)
	if t, ok := p.timings[s.Name()]; ok {
		t.Set(float64(time.Since(start)) / float64(time.Millisecond))
	}
}
