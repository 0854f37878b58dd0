package component

import (
	"github.com/lixenwraith/stagecraft/core"
	"github.com/lixenwraith/stagecraft/input"
)

// CommandComponent tags a one-frame entity as a player command
// Action names the binding that produced it; the prefab carries any payload
type CommandComponent struct {
	Action string
}

// CommandTargetComponent is the entity a command acts on
type CommandTargetComponent struct {
	Target core.Entity
}

// PossessedByPlayerComponent marks an entity controlled by player input
type PossessedByPlayerComponent struct {
	PlayerID int
}

// InputBindingsResource maps continuously held keys to command prefabs for possessed entities
type InputBindingsResource struct {
	Bindings *input.Bindings
}
