package world

import "time"

// NpcTemplate is the static definition of an NPC, shared read-only by any
// number of live instances. Treated as immutable once constructed.
type NpcTemplate struct {
	// ExternalID is the template's id in the upstream content pack,
	// e.g. "npc1". Instances are discoverable by this id.
	ExternalID string
	ID         string
	Name       string

	Personality      string
	Greeting         string
	AggressionRadius float64
	Hostile          bool
	Disposition      string

	// Extra carries template fields the adapter passes through untouched.
	Extra map[string]string
	Flags []string
}

// NpcInstance is a live spawned NPC bound to a template, an identity, and a
// position. Instances are exclusively owned by the NPC registry.
type NpcInstance struct {
	// EntityID is the instance's unique identity, generated at spawn and
	// never reused.
	EntityID string

	Template *NpcTemplate

	// CurrentLocation tracks the instance's position; successful moves
	// update it. SpawnLocation never changes after spawn.
	CurrentLocation Location
	SpawnLocation   Location

	SpawnedAt time.Time
}

// WorldState holds the ambient world properties. Mutable through the world
// state store only; no persistence across restarts.
type WorldState struct {
	TimeOfDay string
	Weather   string
	WorldName string
}
