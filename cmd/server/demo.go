package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/npc-world-api/internal/catalog"
	entities "github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/messaging"
	"github.com/KirkDiggler/npc-world-api/internal/orchestrators/world"
	"github.com/KirkDiggler/npc-world-api/internal/permissions"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/idgen"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/npcs"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/players"
	"github.com/KirkDiggler/npc-world-api/internal/simulator"
	"github.com/KirkDiggler/npc-world-api/internal/worldstate"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted walkthrough of the adapter",
	Long:  `Run an NPC through a spawn, movement, and interaction sequence against the in-memory backends and print each outcome.`,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	clk := clock.New()

	npcRepo, err := npcs.NewInMemory(&npcs.InMemoryConfig{
		IDGenerator: idgen.NewSequential("npc"),
		Clock:       clk,
	})
	if err != nil {
		return err
	}

	cat := catalog.New()

	sim, err := simulator.New(&simulator.Config{Catalog: cat})
	if err != nil {
		return err
	}

	store, err := worldstate.New(&worldstate.Config{Clock: clk})
	if err != nil {
		return err
	}

	service, err := world.NewOrchestrator(&world.Config{
		PlayerRepo:  players.NewInMemory(),
		NpcRepo:     npcRepo,
		Simulator:   sim,
		WorldState:  store,
		Catalog:     cat,
		Notifier:    messaging.Noop{},
		Permissions: permissions.NewStatic(nil),
	})
	if err != nil {
		return err
	}

	loc := entities.NewLocation(0, 64, 0)
	playerLoc := entities.NewLocation(3, 64, 4)
	if _, err := service.AddPlayer(ctx, &world.AddPlayerInput{
		Player: &entities.Player{ID: "player_demo", Name: "Demo", Location: &playerLoc},
	}); err != nil {
		return err
	}

	spawned, err := service.SpawnNpc(ctx, &world.SpawnNpcInput{
		TemplateExternalID: "villager",
		Name:               "Bram",
		Location:           loc,
	})
	if err != nil {
		return err
	}
	npcID := spawned.Instance.EntityID
	fmt.Printf("spawned %s at %s\n", npcID, spawned.Instance.SpawnLocation.String())

	nearby, err := service.GetNearbyPlayers(ctx, &world.GetNearbyPlayersInput{Location: loc, Radius: 10})
	if err != nil {
		return err
	}
	for _, p := range nearby.Players {
		fmt.Printf("nearby player: %s (%s)\n", p.Name, p.ID)
	}

	if _, err := service.NpcSay(ctx, &world.NpcSayInput{EntityID: npcID, Message: "Good day!"}); err != nil {
		return err
	}
	fmt.Println("npc spoke")

	target := entities.NewLocation(15, 64, -8)
	move, err := service.MoveNpcTo(ctx, &world.MoveNpcToInput{EntityID: npcID, Location: target})
	if err != nil {
		return err
	}
	arrived, err := move.Result.Wait(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("moved to %s\n", arrived.String())

	equip, err := service.EquipItem(ctx, &world.EquipItemInput{
		EntityID: npcID,
		ItemID:   "Axe_Iron",
		Slot:     simulator.SlotAuto,
	})
	if err != nil {
		return err
	}
	fmt.Printf("equipped %s in %s\n", equip.Result.ItemID, equip.Result.ResolvedSlot)

	broken, err := service.BreakBlock(ctx, &world.BreakBlockInput{EntityID: npcID, Target: target})
	if err != nil {
		return err
	}
	fmt.Printf("broke %s, drops at %s\n", broken.Result.BlockType, broken.Result.DropLocation.String())

	picked, err := service.PickupItems(ctx, &world.PickupItemsInput{EntityID: npcID, Radius: 5, MaxItems: 10})
	if err != nil {
		return err
	}
	fmt.Printf("picked up %d items\n", picked.Result.CountPicked)

	inv, err := service.GetInventory(ctx, &world.GetInventoryInput{EntityID: npcID})
	if err != nil {
		return err
	}
	fmt.Printf("holding %s, %d total slots\n", inv.Snapshot.HeldItem.ItemID, inv.Snapshot.TotalSlots)

	removed, err := service.RemoveNpc(ctx, &world.RemoveNpcInput{EntityID: npcID})
	if err != nil {
		return err
	}
	fmt.Printf("removed: %v\n", removed.Removed)

	return nil
}
