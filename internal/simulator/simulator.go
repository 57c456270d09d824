package simulator

import (
	"github.com/KirkDiggler/npc-world-api/internal/catalog"
	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
)

const (
	// cannedBlockID selects the generic break outcome
	cannedBlockID = "block_wood"

	// defaultPickupItemID is used when no item filter is given
	defaultPickupItemID = "item_wood"

	// defaultPickupStack caps the synthesized pickup stack
	defaultPickupStack = 4

	// cannedHeldItemID is the item held in every canned inventory
	cannedHeldItemID = "Sword_Iron"

	// baseInventorySlots is the canned total slot count (hotbar + storage + armor)
	baseInventorySlots = 40

	storageSize = 27
)

// knownSlots are the slot identifiers equip/unequip accept ("auto" only on equip)
var knownSlots = buildKnownSlots()

func buildKnownSlots() map[string]struct{} {
	slots := map[string]struct{}{
		SlotMainHand: {},
		SlotOffHand:  {},
		SlotHead:     {},
		SlotChest:    {},
		SlotLegs:     {},
		SlotFeet:     {},
	}
	for i := 0; i < HotbarSize; i++ {
		slots[hotbarSlot(i)] = struct{}{}
	}
	return slots
}

func hotbarSlot(i int) string {
	return "hotbar_" + string(rune('0'+i))
}

// Config holds the dependencies for the simulator
type Config struct {
	Catalog *catalog.Catalog
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Catalog == nil {
		return errors.InvalidArgument("catalog is required")
	}
	return nil
}

// Simulator validates action inputs and builds deterministic outcomes.
// It holds no mutable state; instance existence is the caller's concern.
type Simulator struct {
	catalog *catalog.Catalog
}

// New creates a simulator backed by the given content catalog
func New(cfg *Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Simulator{catalog: cfg.Catalog}, nil
}

// Equip resolves the requested slot and reports the item equipped there.
// A slot of "auto" resolves to the primary hotbar slot.
func (s *Simulator) Equip(itemID, slot string) (*EquipResult, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ItemID", itemID, vb)
	errors.ValidateRequired("Slot", slot, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	resolved := slot
	if slot == SlotAuto {
		resolved = SlotPrimaryHotbar
	} else if _, ok := knownSlots[slot]; !ok {
		return nil, errors.InvalidArgumentf("unknown equipment slot %q", slot)
	}

	return &EquipResult{
		ItemID:       itemID,
		ResolvedSlot: resolved,
	}, nil
}

// BreakBlock produces the canned generic-wood break outcome at the target.
// The tool and attempt count do not influence the outcome in the mock.
func (s *Simulator) BreakBlock(target world.Location, toolItemID string, maxAttempts int) (*BreakResult, error) {
	if maxAttempts < 0 {
		return nil, errors.InvalidArgumentf("max attempts must not be negative, got %d", maxAttempts)
	}
	_ = toolItemID

	def, ok := s.catalog.Block(cannedBlockID)
	if !ok {
		return nil, errors.Internalf("canned block %q missing from catalog", cannedBlockID)
	}

	return &BreakResult{
		BlockType:     def.ID,
		DurationTicks: def.BreakTicks,
		Drops: []ItemStack{
			{ItemID: def.DropsItem, Quantity: def.DropCount},
		},
		DropLocation:    target,
		ProgressPercent: 100,
	}, nil
}

// PickupItems synthesizes at most one stack of collected items. When a
// filter is given the stack carries that item id.
func (s *Simulator) PickupItems(radius float64, itemIDFilter string, maxItems int) (*PickupResult, error) {
	vb := errors.NewValidationBuilder()
	if radius < 0 {
		vb.Fieldf("Radius", "must not be negative, got %f", radius)
	}
	errors.ValidatePositive("MaxItems", maxItems, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	itemID := itemIDFilter
	if itemID == "" {
		itemID = defaultPickupItemID
	}

	quantity := maxItems
	if quantity > defaultPickupStack {
		quantity = defaultPickupStack
	}

	return &PickupResult{
		CountPicked:     quantity,
		Items:           []ItemStack{{ItemID: itemID, Quantity: quantity}},
		RemainingNearby: 0,
	}, nil
}

// UseHeldItem reports the requested number of uses. The mock never depletes
// or interrupts.
func (s *Simulator) UseHeldItem(useCount int) (*UseResult, error) {
	if useCount <= 0 {
		return nil, errors.InvalidArgumentf("use count must be positive, got %d", useCount)
	}

	return &UseResult{
		UsesPerformed: useCount,
		Depleted:      false,
		Interrupted:   false,
	}, nil
}

// DropItem echoes the dropped stack and reports an emptied slot
func (s *Simulator) DropItem(itemID string, quantity int, throwSpeed float64) (*DropResult, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ItemID", itemID, vb)
	errors.ValidatePositive("Quantity", quantity, vb)
	if throwSpeed < 0 {
		vb.Fieldf("ThrowSpeed", "must not be negative, got %f", throwSpeed)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	return &DropResult{
		ItemID:          itemID,
		Quantity:        quantity,
		RemainingInSlot: 0,
	}, nil
}

// Inventory returns the canned snapshot demonstrating the full shape: armor,
// a hotbar with exactly one active slot, empty storage, and a held item.
// includeEmpty toggles whether empty hotbar/storage slots appear.
func (s *Simulator) Inventory(includeEmpty bool) *InventorySnapshot {
	held := &ItemStack{ItemID: cannedHeldItemID, Quantity: 1}

	armor := map[string]*ItemStack{
		SlotHead:  nil,
		SlotChest: {ItemID: "Chestplate_Iron", Quantity: 1},
		SlotLegs:  nil,
		SlotFeet:  {ItemID: "Boots_Leather", Quantity: 1},
	}

	hotbarItems := map[int]*ItemStack{
		0: {ItemID: cannedHeldItemID, Quantity: 1},
		1: {ItemID: "item_wood", Quantity: 12},
		2: {ItemID: "item_bread", Quantity: 3},
	}

	var hotbar []SlotEntry
	for i := 0; i < HotbarSize; i++ {
		item := hotbarItems[i]
		if item == nil && !includeEmpty {
			continue
		}
		hotbar = append(hotbar, SlotEntry{
			Slot:   hotbarSlot(i),
			Item:   item,
			Active: i == 0,
		})
	}

	var storage []SlotEntry
	if includeEmpty {
		storage = make([]SlotEntry, 0, storageSize)
		for i := 0; i < storageSize; i++ {
			storage = append(storage, SlotEntry{Slot: storageSlot(i)})
		}
	}

	return &InventorySnapshot{
		ArmorSlots: armor,
		Hotbar:     hotbar,
		Storage:    storage,
		HeldItem:   held,
		TotalSlots: baseInventorySlots,
	}
}

func storageSlot(i int) string {
	// storage_0 .. storage_26
	if i < 10 {
		return "storage_" + string(rune('0'+i))
	}
	return "storage_" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}

// Unequip removes the item in the slot. The destroyed and
// returned-to-inventory variants are mutually exclusive.
func (s *Simulator) Unequip(slot string, destroy bool) (*UnequipResult, error) {
	if slot == "" {
		return nil, errors.InvalidArgument("slot is required")
	}
	if _, ok := knownSlots[slot]; !ok {
		return nil, errors.InvalidArgumentf("unknown equipment slot %q", slot)
	}

	removed := ItemStack{ItemID: cannedHeldItemID, Quantity: 1}

	if destroy {
		return &UnequipResult{
			Slot:        slot,
			RemovedItem: removed,
			Destroyed:   true,
		}, nil
	}

	return &UnequipResult{
		Slot:                slot,
		RemovedItem:         removed,
		ReturnedToInventory: true,
	}, nil
}

// ExpandInventory reports a successful capacity expansion. The mock keeps no
// per-instance capacity state.
func (s *Simulator) ExpandInventory(slots int) (*ExpandResult, error) {
	if slots <= 0 {
		return nil, errors.InvalidArgumentf("slots must be positive, got %d", slots)
	}

	return &ExpandResult{
		SlotsAdded: slots,
		TotalSlots: baseInventorySlots + slots,
	}, nil
}
