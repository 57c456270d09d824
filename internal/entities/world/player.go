package world

// Player represents an online player as the adapter tracks it.
// NOTE: This is a data-only struct; the registry owns lifecycle and lookup.
type Player struct {
	ID   string
	Name string

	// Location is nil when the player has no known position. Proximity
	// queries skip positionless players.
	Location *Location
}
