// Package npcs provides the registry of spawned NPC instances.
//
// The registry owns instance lifecycle and identity generation. Templates are
// fabricated at spawn time with mock defaults when the real content pack is
// not supplying them.
package npcs

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=npcsmock github.com/KirkDiggler/npc-world-api/internal/repositories/npcs Repository

// SpawnInput contains parameters for spawning an NPC instance
type SpawnInput struct {
	// TemplateExternalID identifies the template in the content pack,
	// e.g. "npc1". Instances are discoverable by it later.
	TemplateExternalID string
	Name               string
	Location           world.Location
}

// SpawnOutput contains the newly spawned instance
type SpawnOutput struct {
	Instance *world.NpcInstance
}

// RemoveInput contains parameters for removing an instance
type RemoveInput struct {
	EntityID string
}

// RemoveOutput reports whether an instance was removed. Removed is false when
// no instance with the id was tracked; that is not an error.
type RemoveOutput struct {
	Removed bool
}

// GetInput contains parameters for retrieving an instance
type GetInput struct {
	EntityID string
}

// GetOutput contains the retrieved instance
type GetOutput struct {
	Instance *world.NpcInstance
}

// ListInput contains parameters for listing instances
type ListInput struct{}

// ListOutput contains a snapshot of all tracked instances
type ListOutput struct {
	Instances []*world.NpcInstance
}

// IsValidInput contains parameters for an existence check
type IsValidInput struct {
	EntityID string
}

// IsValidOutput reports whether the instance is currently tracked
type IsValidOutput struct {
	Valid bool
}

// DiscoverInput contains parameters for finding instances by template
type DiscoverInput struct {
	TemplateExternalID string
}

// DiscoverOutput contains the matching entity ids, in unspecified order
type DiscoverOutput struct {
	EntityIDs []string
}

// UpdateLocationInput contains parameters for persisting a new location
type UpdateLocationInput struct {
	EntityID string
	Location world.Location
}

// UpdateLocationOutput contains the instance after the update
type UpdateLocationOutput struct {
	Instance *world.NpcInstance
}

// MoveToInput contains parameters for a movement request
type MoveToInput struct {
	EntityID string
	Location world.Location
}

// MoveToOutput carries the asynchronous movement result
type MoveToOutput struct {
	Result *MoveResult
}

// Repository defines the interface for the NPC instance registry.
// All operations are safe for concurrent use; List returns a point-in-time
// snapshot. Two concurrent Spawn calls never produce the same entity id.
type Repository interface {
	// Spawn creates and stores a new instance; it always succeeds. The
	// location becomes both current and spawn location.
	Spawn(ctx context.Context, input SpawnInput) (*SpawnOutput, error)

	// Remove destroys an instance. A false Removed signals "nothing to
	// remove", not a failure.
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)

	// Get retrieves an instance; returns NotFound when untracked
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns a snapshot of all tracked instances
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// IsValid reports whether the id references a tracked instance
	IsValid(ctx context.Context, input IsValidInput) (*IsValidOutput, error)

	// DiscoverByTemplate returns the ids of all tracked instances whose
	// template external id matches
	DiscoverByTemplate(ctx context.Context, input DiscoverInput) (*DiscoverOutput, error)

	// UpdateLocation persists a new current location for the instance
	UpdateLocation(ctx context.Context, input UpdateLocationInput) (*UpdateLocationOutput, error)

	// MoveTo requests movement and returns a future. The mock persists the
	// target location and resolves immediately; a real adapter would
	// resolve when movement completes, or fail the future on timeout.
	MoveTo(ctx context.Context, input MoveToInput) (*MoveToOutput, error)
}

// fabricateTemplate builds a mock template for a spawn request. A real
// adapter would resolve the template from the content pack instead.
func fabricateTemplate(externalID, name string) *world.NpcTemplate {
	return &world.NpcTemplate{
		ExternalID:  externalID,
		ID:          fmt.Sprintf("template_%s", externalID),
		Name:        name,
		Personality: "neutral and observant",
		Greeting:    fmt.Sprintf("Hello, I am %s.", name),
		Disposition: "neutral",
	}
}

// copyInstance returns a deep copy so no reader observes later mutations.
// The template is shared by reference; it is immutable once constructed.
func copyInstance(in *world.NpcInstance) *world.NpcInstance {
	cp := *in
	return &cp
}
