package world

import (
	entities "github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/npcs"
	"github.com/KirkDiggler/npc-world-api/internal/simulator"
)

// Player operations

// GetPlayerInput defines the request for looking up a player by id
type GetPlayerInput struct {
	PlayerID string
}

// GetPlayerOutput defines the response for a player lookup
type GetPlayerOutput struct {
	Player *entities.Player
}

// GetPlayerByNameInput defines the request for looking up a player by name
type GetPlayerByNameInput struct {
	Name string
}

// GetPlayerByNameOutput defines the response for a name lookup
type GetPlayerByNameOutput struct {
	Player *entities.Player
}

// ListOnlinePlayersInput defines the request for listing online players
type ListOnlinePlayersInput struct{}

// ListOnlinePlayersOutput defines the response snapshot of online players
type ListOnlinePlayersOutput struct {
	Players []*entities.Player
}

// GetNearbyPlayersInput defines the request for a proximity query
type GetNearbyPlayersInput struct {
	Location entities.Location
	Radius   float64
}

// GetNearbyPlayersOutput defines the response for a proximity query
type GetNearbyPlayersOutput struct {
	Players []*entities.Player
}

// AddPlayerInput defines the administrative request to register a player
type AddPlayerInput struct {
	Player *entities.Player
}

// AddPlayerOutput defines the response for registering a player
type AddPlayerOutput struct {
	Player *entities.Player
}

// RemovePlayerInput defines the administrative request to remove a player
type RemovePlayerInput struct {
	PlayerID string
}

// RemovePlayerOutput defines the response for removing a player
type RemovePlayerOutput struct {
	Player *entities.Player
}

// SendPlayerMessageInput defines the request to message a player
type SendPlayerMessageInput struct {
	PlayerID string
	Message  string
}

// SendPlayerMessageOutput defines the response for messaging a player
type SendPlayerMessageOutput struct {
	Delivered bool
}

// BroadcastMessageInput defines the request for an operator broadcast.
// An empty SenderPlayerID means the server itself is broadcasting.
type BroadcastMessageInput struct {
	SenderPlayerID string
	Message        string
}

// BroadcastMessageOutput defines the response for a broadcast
type BroadcastMessageOutput struct {
	Delivered bool
}

// NPC operations

// SpawnNpcInput defines the request to spawn an NPC instance
type SpawnNpcInput struct {
	TemplateExternalID string
	Name               string
	Location           entities.Location
}

// SpawnNpcOutput defines the response for a spawn
type SpawnNpcOutput struct {
	Instance *entities.NpcInstance
}

// RemoveNpcInput defines the request to remove an NPC instance
type RemoveNpcInput struct {
	EntityID string
}

// RemoveNpcOutput reports whether an instance was removed
type RemoveNpcOutput struct {
	Removed bool
}

// GetNpcInput defines the request to retrieve an NPC instance
type GetNpcInput struct {
	EntityID string
}

// GetNpcOutput defines the response for an instance lookup
type GetNpcOutput struct {
	Instance *entities.NpcInstance
}

// ListNpcsInput defines the request to list NPC instances
type ListNpcsInput struct{}

// ListNpcsOutput defines the response snapshot of tracked instances
type ListNpcsOutput struct {
	Instances []*entities.NpcInstance
}

// IsValidNpcInput defines the request for an existence check
type IsValidNpcInput struct {
	EntityID string
}

// IsValidNpcOutput reports whether the instance is tracked
type IsValidNpcOutput struct {
	Valid bool
}

// DiscoverNpcsInput defines the request to find instances by template
type DiscoverNpcsInput struct {
	TemplateExternalID string
}

// DiscoverNpcsOutput contains the matching entity ids, in unspecified order
type DiscoverNpcsOutput struct {
	EntityIDs []string
}

// MoveNpcToInput defines the request to move an NPC
type MoveNpcToInput struct {
	EntityID string
	Location entities.Location
}

// MoveNpcToOutput carries the asynchronous movement result
type MoveNpcToOutput struct {
	Result *npcs.MoveResult
}

// GetNpcLocationInput defines the request for an NPC's current location
type GetNpcLocationInput struct {
	EntityID string
}

// GetNpcLocationOutput defines the response with the stored current location
type GetNpcLocationOutput struct {
	Location entities.Location
}

// RotateNpcTowardInput defines the request to face an NPC toward a target.
// A nil Target makes the operation a no-op.
type RotateNpcTowardInput struct {
	EntityID string
	Target   *entities.Location
}

// RotateNpcTowardOutput reports whether a facing update was performed
type RotateNpcTowardOutput struct {
	Rotated bool
}

// NpcSayInput defines the request for NPC speech
type NpcSayInput struct {
	EntityID string
	Message  string
}

// NpcSayOutput defines the response for NPC speech
type NpcSayOutput struct {
	Delivered bool
}

// PlayNpcAnimationInput defines the request to play an animation
type PlayNpcAnimationInput struct {
	EntityID  string
	Animation string
}

// PlayNpcAnimationOutput defines the response for an animation request
type PlayNpcAnimationOutput struct {
	Played bool
}

// Action operations

// EquipItemInput defines the request to equip an item
type EquipItemInput struct {
	EntityID string
	ItemID   string

	// Slot may be "auto"; the result always carries a concrete slot
	Slot string
}

// EquipItemOutput defines the response for an equip
type EquipItemOutput struct {
	Result *simulator.EquipResult
}

// UnequipItemInput defines the request to unequip a slot
type UnequipItemInput struct {
	EntityID string
	Slot     string
	Destroy  bool
}

// UnequipItemOutput defines the response for an unequip
type UnequipItemOutput struct {
	Result *simulator.UnequipResult
}

// BreakBlockInput defines the request to break a block
type BreakBlockInput struct {
	EntityID    string
	Target      entities.Location
	ToolItemID  string
	MaxAttempts int
}

// BreakBlockOutput defines the response for a block break
type BreakBlockOutput struct {
	Result *simulator.BreakResult
}

// PickupItemsInput defines the request to collect nearby items
type PickupItemsInput struct {
	EntityID     string
	Radius       float64
	ItemIDFilter string
	MaxItems     int
}

// PickupItemsOutput defines the response for an item pickup
type PickupItemsOutput struct {
	Result *simulator.PickupResult
}

// UseHeldItemInput defines the request to use the held item
type UseHeldItemInput struct {
	EntityID   string
	Target     *entities.Location
	UseCount   int
	IntervalMs int
	TargetType string
}

// UseHeldItemOutput defines the response for using the held item
type UseHeldItemOutput struct {
	Result *simulator.UseResult
}

// DropItemInput defines the request to drop items
type DropItemInput struct {
	EntityID   string
	ItemID     string
	Quantity   int
	ThrowSpeed float64
}

// DropItemOutput defines the response for a drop
type DropItemOutput struct {
	Result *simulator.DropResult
}

// GetInventoryInput defines the request for an inventory snapshot
type GetInventoryInput struct {
	EntityID     string
	IncludeEmpty bool
}

// GetInventoryOutput defines the response with the inventory snapshot
type GetInventoryOutput struct {
	Snapshot *simulator.InventorySnapshot
}

// ExpandInventoryInput defines the request to expand inventory capacity
type ExpandInventoryInput struct {
	EntityID string
	Slots    int
}

// ExpandInventoryOutput defines the response for a capacity expansion
type ExpandInventoryOutput struct {
	Result *simulator.ExpandResult
}

// World operations

// GetWorldStateInput defines the request for the world state
type GetWorldStateInput struct{}

// GetWorldStateOutput defines the response with the world state snapshot
type GetWorldStateOutput struct {
	State entities.WorldState
}

// SetTimeOfDayInput defines the administrative request to set time of day
type SetTimeOfDayInput struct {
	Value string
}

// SetTimeOfDayOutput defines the response for setting time of day
type SetTimeOfDayOutput struct{}

// SetWeatherInput defines the administrative request to set weather
type SetWeatherInput struct {
	Value string
}

// SetWeatherOutput defines the response for setting weather
type SetWeatherOutput struct{}

// Unsupported capabilities

// ScanEntitiesInput defines the request for a world entity scan
type ScanEntitiesInput struct {
	Center entities.Location
	Radius float64
}

// ScanEntitiesOutput defines the response for an entity scan
type ScanEntitiesOutput struct{}

// FindBlocksInput defines the request for a block search
type FindBlocksInput struct {
	Center  entities.Location
	BlockID string
	Radius  float64
}

// FindBlocksOutput defines the response for a block search
type FindBlocksOutput struct{}
