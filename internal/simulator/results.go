// Package simulator synthesizes deterministic outcomes for simulated world
// interactions.
//
// Each action kind has its own result struct so required fields are enforced
// at construction instead of being assembled into loose payload maps. All
// outcomes are canned but internally consistent: the values relate to each
// other the way a real server's physics and game rules would relate them.
package simulator

import (
	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
)

// Slot identifiers
const (
	// SlotAuto asks the simulator to pick a slot; results never carry it
	SlotAuto = "auto"

	// SlotPrimaryHotbar is the concrete slot "auto" resolves to
	SlotPrimaryHotbar = "hotbar_0"

	SlotMainHand = "main_hand"
	SlotOffHand  = "off_hand"

	SlotHead  = "head"
	SlotChest = "chest"
	SlotLegs  = "legs"
	SlotFeet  = "feet"
)

// HotbarSize is the number of hotbar slots
const HotbarSize = 9

// ItemStack is a quantity of a single item type
type ItemStack struct {
	ItemID   string
	Quantity int
}

// EquipResult reports a successful equip. ResolvedSlot is always a concrete
// slot identifier, never "auto".
type EquipResult struct {
	ItemID       string
	ResolvedSlot string
}

// BreakResult reports a successful block break. DropLocation always equals
// the coordinates of the broken block.
type BreakResult struct {
	BlockType       string
	DurationTicks   int
	Drops           []ItemStack
	DropLocation    world.Location
	ProgressPercent int
}

// PickupResult reports items collected from the ground. CountPicked always
// equals the summed quantity of Items.
type PickupResult struct {
	CountPicked     int
	Items           []ItemStack
	RemainingNearby int
}

// UseResult reports uses of the held item
type UseResult struct {
	UsesPerformed     int
	Depleted          bool
	ReplacementItemID string
	Interrupted       bool
}

// DropResult reports items dropped from the inventory. RemainingInSlot is
// never negative.
type DropResult struct {
	ItemID          string
	Quantity        int
	RemainingInSlot int
}

// SlotEntry is one inventory slot. Item is nil for an empty slot.
type SlotEntry struct {
	Slot   string
	Item   *ItemStack
	Active bool
}

// InventorySnapshot is a full inventory view. Hotbar entries are ordered by
// slot index and at most one is active.
type InventorySnapshot struct {
	ArmorSlots map[string]*ItemStack
	Hotbar     []SlotEntry
	Storage    []SlotEntry
	HeldItem   *ItemStack
	TotalSlots int
}

// UnequipResult reports a successful unequip. Exactly one of
// ReturnedToInventory and Destroyed is set.
type UnequipResult struct {
	Slot                string
	RemovedItem         ItemStack
	ReturnedToInventory bool
	Destroyed           bool
}

// ExpandResult reports an inventory capacity expansion
type ExpandResult struct {
	SlotsAdded int
	TotalSlots int
}
