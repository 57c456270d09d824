// Package world implements the adapter facade the agent-control layer
// consumes.
//
// The facade composes the registries, the action simulator, the world state
// store, and the content catalog behind a single interaction contract, and is
// the only place that talks to the notification sink. Not-found conditions
// from the registries surface as typed NotFound errors; capabilities the mock
// does not simulate fail loudly with Unimplemented so missing functionality
// is never mistaken for an empty result.
package world

//go:generate mockgen -destination=mock/mock_service.go -package=worldmock github.com/KirkDiggler/npc-world-api/internal/orchestrators/world Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/npc-world-api/internal/catalog"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/messaging"
	"github.com/KirkDiggler/npc-world-api/internal/permissions"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/npcs"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/players"
	"github.com/KirkDiggler/npc-world-api/internal/simulator"
	"github.com/KirkDiggler/npc-world-api/internal/worldstate"
)

// Service defines the world adapter contract
type Service interface {
	// Player queries and administration
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error)
	GetPlayerByName(ctx context.Context, input *GetPlayerByNameInput) (*GetPlayerByNameOutput, error)
	ListOnlinePlayers(ctx context.Context, input *ListOnlinePlayersInput) (*ListOnlinePlayersOutput, error)
	GetNearbyPlayers(ctx context.Context, input *GetNearbyPlayersInput) (*GetNearbyPlayersOutput, error)
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)
	SendPlayerMessage(ctx context.Context, input *SendPlayerMessageInput) (*SendPlayerMessageOutput, error)
	BroadcastMessage(ctx context.Context, input *BroadcastMessageInput) (*BroadcastMessageOutput, error)

	// NPC lifecycle and control
	SpawnNpc(ctx context.Context, input *SpawnNpcInput) (*SpawnNpcOutput, error)
	RemoveNpc(ctx context.Context, input *RemoveNpcInput) (*RemoveNpcOutput, error)
	GetNpc(ctx context.Context, input *GetNpcInput) (*GetNpcOutput, error)
	ListNpcs(ctx context.Context, input *ListNpcsInput) (*ListNpcsOutput, error)
	IsValidNpc(ctx context.Context, input *IsValidNpcInput) (*IsValidNpcOutput, error)
	DiscoverNpcs(ctx context.Context, input *DiscoverNpcsInput) (*DiscoverNpcsOutput, error)
	MoveNpcTo(ctx context.Context, input *MoveNpcToInput) (*MoveNpcToOutput, error)
	GetNpcLocation(ctx context.Context, input *GetNpcLocationInput) (*GetNpcLocationOutput, error)
	RotateNpcToward(ctx context.Context, input *RotateNpcTowardInput) (*RotateNpcTowardOutput, error)
	NpcSay(ctx context.Context, input *NpcSayInput) (*NpcSayOutput, error)
	PlayNpcAnimation(ctx context.Context, input *PlayNpcAnimationInput) (*PlayNpcAnimationOutput, error)

	// Simulated world interactions
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)
	BreakBlock(ctx context.Context, input *BreakBlockInput) (*BreakBlockOutput, error)
	PickupItems(ctx context.Context, input *PickupItemsInput) (*PickupItemsOutput, error)
	UseHeldItem(ctx context.Context, input *UseHeldItemInput) (*UseHeldItemOutput, error)
	DropItem(ctx context.Context, input *DropItemInput) (*DropItemOutput, error)
	GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error)
	ExpandInventory(ctx context.Context, input *ExpandInventoryInput) (*ExpandInventoryOutput, error)

	// World state
	GetWorldState(ctx context.Context, input *GetWorldStateInput) (*GetWorldStateOutput, error)
	SetTimeOfDay(ctx context.Context, input *SetTimeOfDayInput) (*SetTimeOfDayOutput, error)
	SetWeather(ctx context.Context, input *SetWeatherInput) (*SetWeatherOutput, error)

	// Capabilities the mock intentionally does not simulate; these fail
	// with Unimplemented, never with an empty result
	ScanEntities(ctx context.Context, input *ScanEntitiesInput) (*ScanEntitiesOutput, error)
	FindBlocks(ctx context.Context, input *FindBlocksInput) (*FindBlocksOutput, error)
}

// Config holds the dependencies for the world facade
type Config struct {
	PlayerRepo  players.Repository
	NpcRepo     npcs.Repository
	Simulator   *simulator.Simulator
	WorldState  *worldstate.Store
	Catalog     *catalog.Catalog
	Notifier    messaging.Notifier
	Permissions permissions.Oracle
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.PlayerRepo == nil {
		vb.RequiredField("PlayerRepo")
	}
	if c.NpcRepo == nil {
		vb.RequiredField("NpcRepo")
	}
	if c.Simulator == nil {
		vb.RequiredField("Simulator")
	}
	if c.WorldState == nil {
		vb.RequiredField("WorldState")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.Permissions == nil {
		vb.RequiredField("Permissions")
	}
	return vb.Build()
}

type orchestrator struct {
	playerRepo  players.Repository
	npcRepo     npcs.Repository
	sim         *simulator.Simulator
	worldState  *worldstate.Store
	catalog     *catalog.Catalog
	notifier    messaging.Notifier
	permissions permissions.Oracle
}

// NewOrchestrator creates the world facade with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		playerRepo:  cfg.PlayerRepo,
		npcRepo:     cfg.NpcRepo,
		sim:         cfg.Simulator,
		worldState:  cfg.WorldState,
		catalog:     cfg.Catalog,
		notifier:    cfg.Notifier,
		permissions: cfg.Permissions,
	}, nil
}

// requireInstance fails with NotFound unless the entity id references a
// tracked NPC instance
func (o *orchestrator) requireInstance(ctx context.Context, entityID string) error {
	if entityID == "" {
		return errors.InvalidArgument("entity ID is required")
	}

	output, err := o.npcRepo.IsValid(ctx, npcs.IsValidInput{EntityID: entityID})
	if err != nil {
		return errors.Wrap(err, "failed to check npc instance")
	}
	if !output.Valid {
		return errors.NotFoundf("npc instance %q is not tracked", entityID).
			WithMeta("entity_id", entityID)
	}
	return nil
}

// Player operations

// GetPlayer looks up an online player by id
func (o *orchestrator) GetPlayer(ctx context.Context, input *GetPlayerInput) (*GetPlayerOutput, error) {
	output, err := o.playerRepo.Get(ctx, players.GetInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}
	return &GetPlayerOutput{Player: output.Player}, nil
}

// GetPlayerByName looks up an online player by case-insensitive name
func (o *orchestrator) GetPlayerByName(ctx context.Context, input *GetPlayerByNameInput) (*GetPlayerByNameOutput, error) {
	output, err := o.playerRepo.GetByName(ctx, players.GetByNameInput{Name: input.Name})
	if err != nil {
		return nil, err
	}
	return &GetPlayerByNameOutput{Player: output.Player}, nil
}

// ListOnlinePlayers returns a snapshot of the online players
func (o *orchestrator) ListOnlinePlayers(ctx context.Context, _ *ListOnlinePlayersInput) (*ListOnlinePlayersOutput, error) {
	output, err := o.playerRepo.List(ctx, players.ListInput{})
	if err != nil {
		return nil, err
	}
	return &ListOnlinePlayersOutput{Players: output.Players}, nil
}

// GetNearbyPlayers returns the players with a known location within the radius
func (o *orchestrator) GetNearbyPlayers(ctx context.Context, input *GetNearbyPlayersInput) (*GetNearbyPlayersOutput, error) {
	output, err := o.playerRepo.Nearby(ctx, players.NearbyInput{
		Location: input.Location,
		Radius:   input.Radius,
	})
	if err != nil {
		return nil, err
	}
	return &GetNearbyPlayersOutput{Players: output.Players}, nil
}

// AddPlayer registers a player as online. Administrative; used by test
// harnesses rather than gameplay flow.
func (o *orchestrator) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	output, err := o.playerRepo.Add(ctx, players.AddInput{Player: input.Player})
	if err != nil {
		return nil, err
	}

	slog.Info("Player registered",
		"player_id", output.Player.ID,
		"name", output.Player.Name,
	)

	return &AddPlayerOutput{Player: output.Player}, nil
}

// RemovePlayer unregisters a player. Administrative.
func (o *orchestrator) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	output, err := o.playerRepo.Remove(ctx, players.RemoveInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, err
	}

	slog.Info("Player unregistered", "player_id", input.PlayerID)

	return &RemovePlayerOutput{Player: output.Player}, nil
}

// SendPlayerMessage delivers a message to one player's channel
func (o *orchestrator) SendPlayerMessage(ctx context.Context, input *SendPlayerMessageInput) (*SendPlayerMessageOutput, error) {
	if input.Message == "" {
		return nil, errors.InvalidArgument("message is required")
	}

	// Confirm the player is online before claiming delivery.
	if _, err := o.playerRepo.Get(ctx, players.GetInput{PlayerID: input.PlayerID}); err != nil {
		return nil, err
	}

	o.notifier.Notify(ctx, messaging.PlayerChannel(input.PlayerID), map[string]any{
		"message": input.Message,
	})

	return &SendPlayerMessageOutput{Delivered: true}, nil
}

// BroadcastMessage delivers a message to the broadcast channel. A non-empty
// sender must hold operator permissions.
func (o *orchestrator) BroadcastMessage(ctx context.Context, input *BroadcastMessageInput) (*BroadcastMessageOutput, error) {
	if input.Message == "" {
		return nil, errors.InvalidArgument("message is required")
	}
	if input.SenderPlayerID != "" && !o.permissions.IsOperator(input.SenderPlayerID) {
		return nil, errors.PermissionDeniedf("player %q is not an operator", input.SenderPlayerID)
	}

	o.notifier.Notify(ctx, messaging.ChannelBroadcast, map[string]any{
		"sender":  input.SenderPlayerID,
		"message": input.Message,
	})

	return &BroadcastMessageOutput{Delivered: true}, nil
}

// NPC operations

// SpawnNpc creates a new NPC instance and announces it
func (o *orchestrator) SpawnNpc(ctx context.Context, input *SpawnNpcInput) (*SpawnNpcOutput, error) {
	output, err := o.npcRepo.Spawn(ctx, npcs.SpawnInput{
		TemplateExternalID: input.TemplateExternalID,
		Name:               input.Name,
		Location:           input.Location,
	})
	if err != nil {
		return nil, err
	}

	instance := output.Instance
	slog.Info("Npc spawned",
		"entity_id", instance.EntityID,
		"template", input.TemplateExternalID,
		"location", instance.SpawnLocation.String(),
	)

	o.notifier.Notify(ctx, messaging.ChannelNpcEvents, map[string]any{
		"event":     "spawn",
		"entity_id": instance.EntityID,
		"template":  input.TemplateExternalID,
		"location":  instance.SpawnLocation.String(),
	})

	return &SpawnNpcOutput{Instance: instance}, nil
}

// RemoveNpc destroys an NPC instance. Removed is false when nothing was
// tracked under the id; that is not an error.
func (o *orchestrator) RemoveNpc(ctx context.Context, input *RemoveNpcInput) (*RemoveNpcOutput, error) {
	output, err := o.npcRepo.Remove(ctx, npcs.RemoveInput{EntityID: input.EntityID})
	if err != nil {
		return nil, err
	}

	if output.Removed {
		slog.Info("Npc removed", "entity_id", input.EntityID)
		o.notifier.Notify(ctx, messaging.ChannelNpcEvents, map[string]any{
			"event":     "remove",
			"entity_id": input.EntityID,
		})
	}

	return &RemoveNpcOutput{Removed: output.Removed}, nil
}

// GetNpc retrieves an NPC instance
func (o *orchestrator) GetNpc(ctx context.Context, input *GetNpcInput) (*GetNpcOutput, error) {
	output, err := o.npcRepo.Get(ctx, npcs.GetInput{EntityID: input.EntityID})
	if err != nil {
		return nil, err
	}
	return &GetNpcOutput{Instance: output.Instance}, nil
}

// ListNpcs returns a snapshot of all tracked NPC instances
func (o *orchestrator) ListNpcs(ctx context.Context, _ *ListNpcsInput) (*ListNpcsOutput, error) {
	output, err := o.npcRepo.List(ctx, npcs.ListInput{})
	if err != nil {
		return nil, err
	}
	return &ListNpcsOutput{Instances: output.Instances}, nil
}

// IsValidNpc reports whether the entity id references a tracked instance
func (o *orchestrator) IsValidNpc(ctx context.Context, input *IsValidNpcInput) (*IsValidNpcOutput, error) {
	output, err := o.npcRepo.IsValid(ctx, npcs.IsValidInput{EntityID: input.EntityID})
	if err != nil {
		return nil, err
	}
	return &IsValidNpcOutput{Valid: output.Valid}, nil
}

// DiscoverNpcs returns the ids of all instances of a template
func (o *orchestrator) DiscoverNpcs(ctx context.Context, input *DiscoverNpcsInput) (*DiscoverNpcsOutput, error) {
	output, err := o.npcRepo.DiscoverByTemplate(ctx, npcs.DiscoverInput{
		TemplateExternalID: input.TemplateExternalID,
	})
	if err != nil {
		return nil, err
	}
	return &DiscoverNpcsOutput{EntityIDs: output.EntityIDs}, nil
}

// MoveNpcTo requests NPC movement and returns the asynchronous result. The
// new location is persisted, so a later GetNpcLocation reflects the move.
func (o *orchestrator) MoveNpcTo(ctx context.Context, input *MoveNpcToInput) (*MoveNpcToOutput, error) {
	output, err := o.npcRepo.MoveTo(ctx, npcs.MoveToInput{
		EntityID: input.EntityID,
		Location: input.Location,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Npc move requested",
		"entity_id", input.EntityID,
		"target", input.Location.String(),
	)

	return &MoveNpcToOutput{Result: output.Result}, nil
}

// GetNpcLocation returns the instance's stored current location
func (o *orchestrator) GetNpcLocation(ctx context.Context, input *GetNpcLocationInput) (*GetNpcLocationOutput, error) {
	output, err := o.npcRepo.Get(ctx, npcs.GetInput{EntityID: input.EntityID})
	if err != nil {
		return nil, err
	}
	return &GetNpcLocationOutput{Location: output.Instance.CurrentLocation}, nil
}

// RotateNpcToward faces the NPC toward the target. A nil target is a no-op.
// The facing update has no stored state; it is observable only through the
// notification sink.
func (o *orchestrator) RotateNpcToward(ctx context.Context, input *RotateNpcTowardInput) (*RotateNpcTowardOutput, error) {
	if input.Target == nil {
		return &RotateNpcTowardOutput{Rotated: false}, nil
	}

	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	o.notifier.Notify(ctx, messaging.ChannelNpcEvents, map[string]any{
		"event":     "rotate",
		"entity_id": input.EntityID,
		"target":    input.Target.String(),
	})

	return &RotateNpcTowardOutput{Rotated: true}, nil
}

// NpcSay publishes NPC speech
func (o *orchestrator) NpcSay(ctx context.Context, input *NpcSayInput) (*NpcSayOutput, error) {
	if input.Message == "" {
		return nil, errors.InvalidArgument("message is required")
	}
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	o.notifier.Notify(ctx, messaging.ChannelNpcSpeech, map[string]any{
		"entity_id": input.EntityID,
		"message":   input.Message,
	})

	return &NpcSayOutput{Delivered: true}, nil
}

// PlayNpcAnimation publishes an animation request after validating the
// animation against the content catalog
func (o *orchestrator) PlayNpcAnimation(ctx context.Context, input *PlayNpcAnimationInput) (*PlayNpcAnimationOutput, error) {
	if input.Animation == "" {
		return nil, errors.InvalidArgument("animation is required")
	}
	if !o.catalog.IsKnownAnimation(input.Animation) {
		return nil, errors.InvalidArgumentf("unknown animation %q", input.Animation)
	}
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	o.notifier.Notify(ctx, messaging.ChannelNpcEvents, map[string]any{
		"event":     "animation",
		"entity_id": input.EntityID,
		"animation": input.Animation,
	})

	return &PlayNpcAnimationOutput{Played: true}, nil
}

// Simulated world interactions

// EquipItem simulates equipping an item
func (o *orchestrator) EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.Equip(input.ItemID, input.Slot)
	if err != nil {
		return nil, err
	}

	return &EquipItemOutput{Result: result}, nil
}

// UnequipItem simulates removing the item in a slot
func (o *orchestrator) UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.Unequip(input.Slot, input.Destroy)
	if err != nil {
		return nil, err
	}

	return &UnequipItemOutput{Result: result}, nil
}

// BreakBlock simulates breaking the block at the target location
func (o *orchestrator) BreakBlock(ctx context.Context, input *BreakBlockInput) (*BreakBlockOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.BreakBlock(input.Target, input.ToolItemID, input.MaxAttempts)
	if err != nil {
		return nil, err
	}

	return &BreakBlockOutput{Result: result}, nil
}

// PickupItems simulates collecting nearby ground items
func (o *orchestrator) PickupItems(ctx context.Context, input *PickupItemsInput) (*PickupItemsOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.PickupItems(input.Radius, input.ItemIDFilter, input.MaxItems)
	if err != nil {
		return nil, err
	}

	return &PickupItemsOutput{Result: result}, nil
}

// UseHeldItem simulates using the held item
func (o *orchestrator) UseHeldItem(ctx context.Context, input *UseHeldItemInput) (*UseHeldItemOutput, error) {
	if input.IntervalMs < 0 {
		return nil, errors.InvalidArgumentf("interval must not be negative, got %d", input.IntervalMs)
	}
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.UseHeldItem(input.UseCount)
	if err != nil {
		return nil, err
	}

	return &UseHeldItemOutput{Result: result}, nil
}

// DropItem simulates dropping items from the inventory
func (o *orchestrator) DropItem(ctx context.Context, input *DropItemInput) (*DropItemOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.DropItem(input.ItemID, input.Quantity, input.ThrowSpeed)
	if err != nil {
		return nil, err
	}

	return &DropItemOutput{Result: result}, nil
}

// GetInventory returns the canned inventory snapshot
func (o *orchestrator) GetInventory(ctx context.Context, input *GetInventoryInput) (*GetInventoryOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	return &GetInventoryOutput{Snapshot: o.sim.Inventory(input.IncludeEmpty)}, nil
}

// ExpandInventory simulates an inventory capacity expansion
func (o *orchestrator) ExpandInventory(ctx context.Context, input *ExpandInventoryInput) (*ExpandInventoryOutput, error) {
	if err := o.requireInstance(ctx, input.EntityID); err != nil {
		return nil, err
	}

	result, err := o.sim.ExpandInventory(input.Slots)
	if err != nil {
		return nil, err
	}

	return &ExpandInventoryOutput{Result: result}, nil
}

// World state operations

// GetWorldState returns a snapshot of the ambient world properties
func (o *orchestrator) GetWorldState(_ context.Context, _ *GetWorldStateInput) (*GetWorldStateOutput, error) {
	return &GetWorldStateOutput{State: o.worldState.Snapshot()}, nil
}

// SetTimeOfDay sets the time of day. Administrative; values are not
// validated in the mock.
func (o *orchestrator) SetTimeOfDay(_ context.Context, input *SetTimeOfDayInput) (*SetTimeOfDayOutput, error) {
	o.worldState.SetTimeOfDay(input.Value)
	slog.Info("World time of day set", "value", input.Value)
	return &SetTimeOfDayOutput{}, nil
}

// SetWeather sets the weather. Administrative; values are not validated in
// the mock.
func (o *orchestrator) SetWeather(_ context.Context, input *SetWeatherInput) (*SetWeatherOutput, error) {
	o.worldState.SetWeather(input.Value)
	slog.Info("World weather set", "value", input.Value)
	return &SetWeatherOutput{}, nil
}

// Unsupported capabilities

// ScanEntities is not simulated by the mock
func (o *orchestrator) ScanEntities(_ context.Context, _ *ScanEntitiesInput) (*ScanEntitiesOutput, error) {
	return nil, errors.Unimplemented("entity scanning is not simulated by the mock adapter")
}

// FindBlocks is not simulated by the mock
func (o *orchestrator) FindBlocks(_ context.Context, _ *FindBlocksInput) (*FindBlocksOutput, error) {
	return nil, errors.Unimplemented("block search is not simulated by the mock adapter")
}

var _ Service = (*orchestrator)(nil)
