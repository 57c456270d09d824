// Package catalog provides the static block and animation lookup tables.
//
// The tables stand in for the game server's content pack. The adapter treats
// them as an immutable external lookup, not owned data: construct once, read
// from anywhere.
package catalog

// BlockDef describes a known block type
type BlockDef struct {
	ID          string
	DisplayName string
	Category    string
	Breakable   bool

	// DropsItem / DropCount describe the canonical drop for breaking the
	// block, BreakTicks the canonical break duration.
	DropsItem  string
	DropCount  int
	BreakTicks int
}

// Catalog is the immutable content lookup the adapter reads from
type Catalog struct {
	blocks     map[string]BlockDef
	animations map[string]struct{}
}

// New builds the fixed content catalog
func New() *Catalog {
	c := &Catalog{
		blocks:     make(map[string]BlockDef),
		animations: make(map[string]struct{}),
	}

	for _, def := range defaultBlocks {
		c.blocks[def.ID] = def
	}
	for _, name := range defaultAnimations {
		c.animations[name] = struct{}{}
	}

	return c
}

// Block returns the definition for a block id
func (c *Catalog) Block(id string) (BlockDef, bool) {
	def, ok := c.blocks[id]
	return def, ok
}

// BlockIDs returns the ids of all known block types
func (c *Catalog) BlockIDs() []string {
	ids := make([]string, 0, len(c.blocks))
	for id := range c.blocks {
		ids = append(ids, id)
	}
	return ids
}

// IsKnownAnimation reports whether name is a known animation
func (c *Catalog) IsKnownAnimation(name string) bool {
	_, ok := c.animations[name]
	return ok
}

// Animations returns the names of all known animations
func (c *Catalog) Animations() []string {
	names := make([]string, 0, len(c.animations))
	for name := range c.animations {
		names = append(names, name)
	}
	return names
}

var defaultBlocks = []BlockDef{
	{ID: "block_wood", DisplayName: "Wood", Category: "natural", Breakable: true, DropsItem: "item_wood", DropCount: 3, BreakTicks: 60},
	{ID: "block_stone", DisplayName: "Stone", Category: "natural", Breakable: true, DropsItem: "item_cobblestone", DropCount: 1, BreakTicks: 150},
	{ID: "block_dirt", DisplayName: "Dirt", Category: "natural", Breakable: true, DropsItem: "item_dirt", DropCount: 1, BreakTicks: 20},
	{ID: "block_sand", DisplayName: "Sand", Category: "natural", Breakable: true, DropsItem: "item_sand", DropCount: 1, BreakTicks: 20},
	{ID: "block_iron_ore", DisplayName: "Iron Ore", Category: "ore", Breakable: true, DropsItem: "item_raw_iron", DropCount: 1, BreakTicks: 230},
	{ID: "block_bedrock", DisplayName: "Bedrock", Category: "structural", Breakable: false},
	{ID: "block_water", DisplayName: "Water", Category: "fluid", Breakable: false},
}

var defaultAnimations = []string{
	"wave",
	"bow",
	"nod",
	"shake_head",
	"point",
	"cheer",
	"sit",
	"sleep",
	"attack_swing",
}
