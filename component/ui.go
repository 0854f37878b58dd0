package component

// ClickableComponent fires OnClick when a left click is released inside the entity's bounds
// OnClick holds an engine.Command
type ClickableComponent struct {
	OnClick any
}
