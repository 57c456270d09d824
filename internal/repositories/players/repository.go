// Package players provides the registry of online players
package players

import (
	"context"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=playersmock github.com/KirkDiggler/npc-world-api/internal/repositories/players Repository

// GetInput contains parameters for looking up a player by id
type GetInput struct {
	PlayerID string
}

// GetOutput contains the result of a player lookup
type GetOutput struct {
	Player *world.Player
}

// GetByNameInput contains parameters for looking up a player by name
type GetByNameInput struct {
	Name string
}

// GetByNameOutput contains the result of a name lookup
type GetByNameOutput struct {
	Player *world.Player
}

// ListInput contains parameters for listing online players
type ListInput struct{}

// ListOutput contains a snapshot of the online players
type ListOutput struct {
	Players []*world.Player
}

// NearbyInput contains parameters for a proximity query
type NearbyInput struct {
	Location world.Location
	Radius   float64
}

// NearbyOutput contains the players within the queried radius
type NearbyOutput struct {
	Players []*world.Player
}

// AddInput contains parameters for registering a player as online
type AddInput struct {
	Player *world.Player
}

// AddOutput contains the result of registering a player
type AddOutput struct {
	Player *world.Player
}

// RemoveInput contains parameters for removing a player
type RemoveInput struct {
	PlayerID string
}

// RemoveOutput contains the result of removing a player
type RemoveOutput struct {
	Player *world.Player
}

// Repository defines the interface for the online-player registry.
// All operations are safe for concurrent use; list and proximity reads
// return point-in-time snapshots.
type Repository interface {
	// Get retrieves a player by id; returns NotFound when offline
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByName retrieves a player by case-insensitive name. When several
	// players share a name the match follows map iteration order and is
	// not deterministic.
	GetByName(ctx context.Context, input GetByNameInput) (*GetByNameOutput, error)

	// List returns a snapshot of all online players
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Nearby returns the players with a known location within the radius.
	// Players without a location are never returned.
	Nearby(ctx context.Context, input NearbyInput) (*NearbyOutput, error)

	// Add registers a player as online. Administrative; replaces any
	// previous entry with the same id.
	Add(ctx context.Context, input AddInput) (*AddOutput, error)

	// Remove unregisters a player. Administrative; returns NotFound when
	// the player was not online.
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)
}
