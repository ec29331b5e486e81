package memory

import "github.com/Aleph-Alpha/sim-exporter/pkg/simulation"

// Mob is a non-player entity.
//
// A mob with a registered Type classifies as that type. A hostile mob
// without a registered name falls back to its implementation Class.
// Anything else is unclassified.
type Mob struct {
	Type    simulation.EntityType
	Class   string
	Hostile bool
}

func (m Mob) IsPlayer() bool { return false }

func (m Mob) Classify() (simulation.EntityType, bool) {
	switch {
	case m.Type.Name != "":
		return m.Type, true
	case m.Hostile && m.Class != "":
		return simulation.EntityType{ID: m.Type.ID, Name: m.Class}, true
	default:
		return simulation.EntityType{}, false
	}
}

// PlayerBody is the in-world entity of a connected player.
type PlayerBody struct {
	ID string
}

func (PlayerBody) IsPlayer() bool { return true }

func (PlayerBody) Classify() (simulation.EntityType, bool) {
	return simulation.EntityType{}, false
}

// Block is a tile entity. It is unclassified when Name is empty.
type Block struct {
	Class string
	Name  string
}

func (b Block) Classify() (simulation.TileEntityType, bool) {
	if b.Name == "" {
		return simulation.TileEntityType{}, false
	}
	return simulation.TileEntityType{Class: b.Class, Name: b.Name}, true
}
