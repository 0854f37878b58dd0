package parameter

// Render layers
const (
	ZOrderBackground = -100
	ZOrderDefault    = 0
	ZOrderUI         = 500
)
