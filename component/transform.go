package component

import "github.com/lixenwraith/stagecraft/core"

// TransformComponent positions an entity in world units, top-left anchored
type TransformComponent struct {
	Position core.Vec2
	Scale    core.Vec2 // zero means 1,1
	Rotation float64   // degrees, ignored by cell renderers
}

type SizeComponent struct {
	Size core.Vec2
}

// ZOrderComponent sorts drawing within a scene, lower first
type ZOrderComponent struct {
	Z float64
}
