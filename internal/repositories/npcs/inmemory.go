package npcs

import (
	"context"
	"sync"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/idgen"
)

// InMemoryConfig holds the dependencies for the in-memory registry
type InMemoryConfig struct {
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *InMemoryConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	idGen idgen.Generator
	clock clock.Clock

	mu    sync.RWMutex
	store map[string]*world.NpcInstance
}

// NewInMemory creates a new in-memory NPC instance registry
func NewInMemory(cfg *InMemoryConfig) (*InMemoryRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &InMemoryRepository{
		idGen: cfg.IDGenerator,
		clock: cfg.Clock,
		store: make(map[string]*world.NpcInstance),
	}, nil
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Spawn creates and stores a new instance
func (r *InMemoryRepository) Spawn(_ context.Context, input SpawnInput) (*SpawnOutput, error) {
	if input.TemplateExternalID == "" {
		return nil, errors.InvalidArgument("template external ID is required")
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	instance := &world.NpcInstance{
		EntityID:        r.idGen.Generate(),
		Template:        fabricateTemplate(input.TemplateExternalID, input.Name),
		CurrentLocation: input.Location,
		SpawnLocation:   input.Location,
		SpawnedAt:       r.clock.Now(),
	}

	r.mu.Lock()
	r.store[instance.EntityID] = instance
	r.mu.Unlock()

	return &SpawnOutput{Instance: copyInstance(instance)}, nil
}

// Remove destroys an instance
func (r *InMemoryRepository) Remove(_ context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.EntityID]; !exists {
		return &RemoveOutput{Removed: false}, nil
	}

	delete(r.store, input.EntityID)

	return &RemoveOutput{Removed: true}, nil
}

// Get retrieves an instance
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, exists := r.store[input.EntityID]
	if !exists {
		return nil, errors.NotFoundf("npc instance %q is not tracked", input.EntityID)
	}

	return &GetOutput{Instance: copyInstance(instance)}, nil
}

// List returns a snapshot of all tracked instances
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*world.NpcInstance, 0, len(r.store))
	for _, instance := range r.store {
		instances = append(instances, copyInstance(instance))
	}

	return &ListOutput{Instances: instances}, nil
}

// IsValid reports whether the id references a tracked instance
func (r *InMemoryRepository) IsValid(_ context.Context, input IsValidInput) (*IsValidOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	r.mu.RLock()
	_, exists := r.store[input.EntityID]
	r.mu.RUnlock()

	return &IsValidOutput{Valid: exists}, nil
}

// DiscoverByTemplate returns the ids of all instances of a template
func (r *InMemoryRepository) DiscoverByTemplate(_ context.Context, input DiscoverInput) (*DiscoverOutput, error) {
	if input.TemplateExternalID == "" {
		return nil, errors.InvalidArgument("template external ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, instance := range r.store {
		if instance.Template != nil && instance.Template.ExternalID == input.TemplateExternalID {
			ids = append(ids, instance.EntityID)
		}
	}

	return &DiscoverOutput{EntityIDs: ids}, nil
}

// UpdateLocation persists a new current location for the instance
func (r *InMemoryRepository) UpdateLocation(_ context.Context, input UpdateLocationInput) (*UpdateLocationOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	instance, exists := r.store[input.EntityID]
	if !exists {
		return nil, errors.NotFoundf("npc instance %q is not tracked", input.EntityID)
	}

	instance.CurrentLocation = input.Location

	return &UpdateLocationOutput{Instance: copyInstance(instance)}, nil
}

// MoveTo requests movement; the mock persists the target location and
// resolves the future immediately
func (r *InMemoryRepository) MoveTo(ctx context.Context, input MoveToInput) (*MoveToOutput, error) {
	updated, err := r.UpdateLocation(ctx, UpdateLocationInput(input))
	if err != nil {
		return nil, err
	}

	result := newMoveResult()
	result.resolve(updated.Instance.CurrentLocation)

	return &MoveToOutput{Result: result}, nil
}
