package component

import "time"

// LifetimeComponent destroys its entity once Remaining reaches zero
type LifetimeComponent struct {
	Remaining time.Duration
}

// OneFrameComponent marks an entity destroyed at the end of the frame it was created in
type OneFrameComponent struct{}
