package engine

// SystemBase provides the stage and name every system reports
// Embed in system struct to eliminate boilerplate
type SystemBase struct {
	stage Stage
	name  string
}

// NewSystemBase initializes the base for a system running in stage
// Call once in system constructor
func NewSystemBase(stage Stage, name string) SystemBase {
	return SystemBase{stage: stage, name: name}
}

func (b SystemBase) Stage() Stage { return b.stage }
func (b SystemBase) Name() string { return b.name }
