package component

import "github.com/lixenwraith/stagecraft/core"

type VelocityComponent struct {
	Velocity core.Vec2
}

// AccelerationComponent is consumed and zeroed every frame
type AccelerationComponent struct {
	Acceleration core.Vec2
}

type GravityComponent struct {
	Gravity core.Vec2
}

// FrictionComponent damps velocity by Friction per second
type FrictionComponent struct {
	Friction float64
}

type RadiusComponent struct {
	Radius float64
}

type ColliderShape uint8

const (
	ColliderRectangle ColliderShape = iota
	ColliderCircle
)

type ColliderComponent struct {
	Shape ColliderShape
}

// GravitySettingsResource scales and gates every GravityComponent
type GravitySettingsResource struct {
	PixelsPerCentimeter float64
	Enabled             bool
}
