package world_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/npc-world-api/internal/catalog"
	entities "github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/messaging"
	messagingmock "github.com/KirkDiggler/npc-world-api/internal/messaging/mock"
	"github.com/KirkDiggler/npc-world-api/internal/orchestrators/world"
	"github.com/KirkDiggler/npc-world-api/internal/permissions"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/idgen"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/npcs"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/players"
	"github.com/KirkDiggler/npc-world-api/internal/simulator"
	"github.com/KirkDiggler/npc-world-api/internal/worldstate"
)

type OrchestratorTestSuite struct {
	suite.Suite

	ctrl     *gomock.Controller
	notifier *messagingmock.MockNotifier
	service  world.Service

	ctx context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notifier = messagingmock.NewMockNotifier(s.ctrl)
	s.ctx = context.Background()

	fixed := clock.NewFixed(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	npcRepo, err := npcs.NewInMemory(&npcs.InMemoryConfig{
		IDGenerator: idgen.NewSequential("npc"),
		Clock:       fixed,
	})
	s.Require().NoError(err)

	cat := catalog.New()

	sim, err := simulator.New(&simulator.Config{Catalog: cat})
	s.Require().NoError(err)

	store, err := worldstate.New(&worldstate.Config{Clock: fixed})
	s.Require().NoError(err)

	s.service, err = world.NewOrchestrator(&world.Config{
		PlayerRepo:  players.NewInMemory(),
		NpcRepo:     npcRepo,
		Simulator:   sim,
		WorldState:  store,
		Catalog:     cat,
		Notifier:    s.notifier,
		Permissions: permissions.NewStatic([]string{"player_op"}),
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// spawnVillager creates one instance and absorbs its spawn event
func (s *OrchestratorTestSuite) spawnVillager() *entities.NpcInstance {
	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelNpcEvents, gomock.Any())

	output, err := s.service.SpawnNpc(s.ctx, &world.SpawnNpcInput{
		TemplateExternalID: "villager",
		Name:               "Bram",
		Location:           entities.NewLocation(10, 64, -5),
	})
	s.Require().NoError(err)
	return output.Instance
}

func (s *OrchestratorTestSuite) addPlayer(id, name string, loc *entities.Location) {
	_, err := s.service.AddPlayer(s.ctx, &world.AddPlayerInput{
		Player: &entities.Player{ID: id, Name: name, Location: loc},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := world.NewOrchestrator(&world.Config{})
	s.Error(err)

	_, err = world.NewOrchestrator(nil)
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestNpcLifecycle() {
	instance := s.spawnVillager()
	s.Equal("npc_1", instance.EntityID)
	s.Equal("Bram", instance.Template.Name)

	valid, err := s.service.IsValidNpc(s.ctx, &world.IsValidNpcInput{EntityID: instance.EntityID})
	s.Require().NoError(err)
	s.True(valid.Valid)

	target := entities.NewLocation(20, 64, -5)
	moveOutput, err := s.service.MoveNpcTo(s.ctx, &world.MoveNpcToInput{
		EntityID: instance.EntityID,
		Location: target,
	})
	s.Require().NoError(err)

	arrived, err := moveOutput.Result.Wait(s.ctx)
	s.Require().NoError(err)
	s.Equal(target, arrived)

	locOutput, err := s.service.GetNpcLocation(s.ctx, &world.GetNpcLocationInput{EntityID: instance.EntityID})
	s.Require().NoError(err)
	s.Equal(target, locOutput.Location)

	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelNpcEvents, gomock.Any())
	removed, err := s.service.RemoveNpc(s.ctx, &world.RemoveNpcInput{EntityID: instance.EntityID})
	s.Require().NoError(err)
	s.True(removed.Removed)

	valid, err = s.service.IsValidNpc(s.ctx, &world.IsValidNpcInput{EntityID: instance.EntityID})
	s.Require().NoError(err)
	s.False(valid.Valid)

	// Removing again is not an error and emits no event
	removed, err = s.service.RemoveNpc(s.ctx, &world.RemoveNpcInput{EntityID: instance.EntityID})
	s.Require().NoError(err)
	s.False(removed.Removed)
}

func (s *OrchestratorTestSuite) TestDiscoverNpcs() {
	first := s.spawnVillager()
	second := s.spawnVillager()

	output, err := s.service.DiscoverNpcs(s.ctx, &world.DiscoverNpcsInput{TemplateExternalID: "villager"})
	s.Require().NoError(err)
	s.ElementsMatch([]string{first.EntityID, second.EntityID}, output.EntityIDs)

	output, err = s.service.DiscoverNpcs(s.ctx, &world.DiscoverNpcsInput{TemplateExternalID: "dragon"})
	s.Require().NoError(err)
	s.Empty(output.EntityIDs)
}

func (s *OrchestratorTestSuite) TestGetNpcNotFound() {
	_, err := s.service.GetNpc(s.ctx, &world.GetNpcInput{EntityID: "npc_missing"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetNearbyPlayers() {
	near := entities.NewLocation(0, 64, 0)
	far := entities.NewLocation(500, 64, 500)
	s.addPlayer("player_1", "Ann", &near)
	s.addPlayer("player_2", "Ben", &far)
	s.addPlayer("player_3", "Cal", nil)

	output, err := s.service.GetNearbyPlayers(s.ctx, &world.GetNearbyPlayersInput{
		Location: entities.NewLocation(3, 64, 4),
		Radius:   10,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Players, 1)
	s.Equal("player_1", output.Players[0].ID)
}

func (s *OrchestratorTestSuite) TestGetPlayerByName() {
	s.addPlayer("player_1", "Ann", nil)

	output, err := s.service.GetPlayerByName(s.ctx, &world.GetPlayerByNameInput{Name: "aNN"})
	s.Require().NoError(err)
	s.Equal("player_1", output.Player.ID)

	_, err = s.service.GetPlayerByName(s.ctx, &world.GetPlayerByNameInput{Name: "Zed"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSendPlayerMessage() {
	s.addPlayer("player_1", "Ann", nil)

	s.notifier.EXPECT().Notify(gomock.Any(), messaging.PlayerChannel("player_1"), gomock.Any())
	output, err := s.service.SendPlayerMessage(s.ctx, &world.SendPlayerMessageInput{
		PlayerID: "player_1",
		Message:  "hello",
	})
	s.Require().NoError(err)
	s.True(output.Delivered)

	// Offline player: no delivery, no notification
	_, err = s.service.SendPlayerMessage(s.ctx, &world.SendPlayerMessageInput{
		PlayerID: "player_2",
		Message:  "hello",
	})
	s.True(errors.IsNotFound(err))

	_, err = s.service.SendPlayerMessage(s.ctx, &world.SendPlayerMessageInput{PlayerID: "player_1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestBroadcastMessage() {
	// Server broadcast needs no permission
	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelBroadcast, gomock.Any())
	output, err := s.service.BroadcastMessage(s.ctx, &world.BroadcastMessageInput{Message: "restarting soon"})
	s.Require().NoError(err)
	s.True(output.Delivered)

	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelBroadcast, gomock.Any())
	_, err = s.service.BroadcastMessage(s.ctx, &world.BroadcastMessageInput{
		SenderPlayerID: "player_op",
		Message:        "hello all",
	})
	s.Require().NoError(err)

	_, err = s.service.BroadcastMessage(s.ctx, &world.BroadcastMessageInput{
		SenderPlayerID: "player_1",
		Message:        "hello all",
	})
	s.True(errors.IsPermissionDenied(err))

	_, err = s.service.BroadcastMessage(s.ctx, &world.BroadcastMessageInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestNpcSay() {
	instance := s.spawnVillager()

	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelNpcSpeech, gomock.Any())
	output, err := s.service.NpcSay(s.ctx, &world.NpcSayInput{
		EntityID: instance.EntityID,
		Message:  "Good morning!",
	})
	s.Require().NoError(err)
	s.True(output.Delivered)

	_, err = s.service.NpcSay(s.ctx, &world.NpcSayInput{EntityID: "npc_missing", Message: "hi"})
	s.True(errors.IsNotFound(err))

	_, err = s.service.NpcSay(s.ctx, &world.NpcSayInput{EntityID: instance.EntityID})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestPlayNpcAnimation() {
	instance := s.spawnVillager()

	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelNpcEvents, gomock.Any())
	output, err := s.service.PlayNpcAnimation(s.ctx, &world.PlayNpcAnimationInput{
		EntityID:  instance.EntityID,
		Animation: "wave",
	})
	s.Require().NoError(err)
	s.True(output.Played)

	_, err = s.service.PlayNpcAnimation(s.ctx, &world.PlayNpcAnimationInput{
		EntityID:  instance.EntityID,
		Animation: "moonwalk",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestRotateNpcToward() {
	instance := s.spawnVillager()

	// Nil target is a no-op regardless of entity
	output, err := s.service.RotateNpcToward(s.ctx, &world.RotateNpcTowardInput{EntityID: "npc_missing"})
	s.Require().NoError(err)
	s.False(output.Rotated)

	target := entities.NewLocation(0, 64, 0)
	_, err = s.service.RotateNpcToward(s.ctx, &world.RotateNpcTowardInput{
		EntityID: "npc_missing",
		Target:   &target,
	})
	s.True(errors.IsNotFound(err))

	s.notifier.EXPECT().Notify(gomock.Any(), messaging.ChannelNpcEvents, gomock.Any())
	output, err = s.service.RotateNpcToward(s.ctx, &world.RotateNpcTowardInput{
		EntityID: instance.EntityID,
		Target:   &target,
	})
	s.Require().NoError(err)
	s.True(output.Rotated)
}

func (s *OrchestratorTestSuite) TestEquipItemResolvesAutoSlot() {
	instance := s.spawnVillager()

	output, err := s.service.EquipItem(s.ctx, &world.EquipItemInput{
		EntityID: instance.EntityID,
		ItemID:   "Sword_Iron",
		Slot:     simulator.SlotAuto,
	})
	s.Require().NoError(err)
	s.Equal(simulator.SlotPrimaryHotbar, output.Result.ResolvedSlot)
	s.Equal("Sword_Iron", output.Result.ItemID)

	_, err = s.service.EquipItem(s.ctx, &world.EquipItemInput{
		EntityID: "npc_missing",
		ItemID:   "Sword_Iron",
		Slot:     simulator.SlotAuto,
	})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestBreakBlockDropsAtTarget() {
	instance := s.spawnVillager()

	target := entities.NewLocation(12, 63, -4)
	output, err := s.service.BreakBlock(s.ctx, &world.BreakBlockInput{
		EntityID: instance.EntityID,
		Target:   target,
	})
	s.Require().NoError(err)
	s.Equal(target, output.Result.DropLocation)
	s.Equal(100, output.Result.ProgressPercent)
	s.NotEmpty(output.Result.Drops)
}

func (s *OrchestratorTestSuite) TestPickupItems() {
	instance := s.spawnVillager()

	output, err := s.service.PickupItems(s.ctx, &world.PickupItemsInput{
		EntityID: instance.EntityID,
		Radius:   5,
		MaxItems: 10,
	})
	s.Require().NoError(err)

	total := 0
	for _, stack := range output.Result.Items {
		total += stack.Quantity
	}
	s.Equal(total, output.Result.CountPicked)
}

func (s *OrchestratorTestSuite) TestUseHeldItemValidation() {
	instance := s.spawnVillager()

	_, err := s.service.UseHeldItem(s.ctx, &world.UseHeldItemInput{
		EntityID:   instance.EntityID,
		UseCount:   1,
		IntervalMs: -100,
	})
	s.True(errors.IsInvalidArgument(err))

	output, err := s.service.UseHeldItem(s.ctx, &world.UseHeldItemInput{
		EntityID: instance.EntityID,
		UseCount: 3,
	})
	s.Require().NoError(err)
	s.Equal(3, output.Result.UsesPerformed)
}

func (s *OrchestratorTestSuite) TestUnequipItem() {
	instance := s.spawnVillager()

	output, err := s.service.UnequipItem(s.ctx, &world.UnequipItemInput{
		EntityID: instance.EntityID,
		Slot:     simulator.SlotMainHand,
	})
	s.Require().NoError(err)
	s.True(output.Result.ReturnedToInventory)
	s.False(output.Result.Destroyed)

	output, err = s.service.UnequipItem(s.ctx, &world.UnequipItemInput{
		EntityID: instance.EntityID,
		Slot:     simulator.SlotMainHand,
		Destroy:  true,
	})
	s.Require().NoError(err)
	s.False(output.Result.ReturnedToInventory)
	s.True(output.Result.Destroyed)
}

func (s *OrchestratorTestSuite) TestGetInventory() {
	instance := s.spawnVillager()

	// Default view omits empty slots; only the occupied hotbar entries appear
	output, err := s.service.GetInventory(s.ctx, &world.GetInventoryInput{EntityID: instance.EntityID})
	s.Require().NoError(err)

	snapshot := output.Snapshot
	s.Len(snapshot.Hotbar, 3)
	s.True(snapshot.Hotbar[0].Active)
	s.Empty(snapshot.Storage)
	s.NotNil(snapshot.HeldItem)

	output, err = s.service.GetInventory(s.ctx, &world.GetInventoryInput{
		EntityID:     instance.EntityID,
		IncludeEmpty: true,
	})
	s.Require().NoError(err)

	snapshot = output.Snapshot
	s.Len(snapshot.Hotbar, simulator.HotbarSize)
	s.True(snapshot.Hotbar[0].Active)
	s.NotEmpty(snapshot.Storage)
}

func (s *OrchestratorTestSuite) TestWorldState() {
	output, err := s.service.GetWorldState(s.ctx, &world.GetWorldStateInput{})
	s.Require().NoError(err)
	s.Equal("day", output.State.TimeOfDay)
	s.Equal("clear", output.State.Weather)

	_, err = s.service.SetTimeOfDay(s.ctx, &world.SetTimeOfDayInput{Value: "dusk"})
	s.Require().NoError(err)
	_, err = s.service.SetWeather(s.ctx, &world.SetWeatherInput{Value: "rain"})
	s.Require().NoError(err)

	output, err = s.service.GetWorldState(s.ctx, &world.GetWorldStateInput{})
	s.Require().NoError(err)
	s.Equal("dusk", output.State.TimeOfDay)
	s.Equal("rain", output.State.Weather)
}

func (s *OrchestratorTestSuite) TestUnsupportedCapabilities() {
	_, err := s.service.ScanEntities(s.ctx, &world.ScanEntitiesInput{Radius: 30})
	s.True(errors.IsUnimplemented(err))

	_, err = s.service.FindBlocks(s.ctx, &world.FindBlocksInput{BlockID: "block_wood", Radius: 30})
	s.True(errors.IsUnimplemented(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
