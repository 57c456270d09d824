package npcs

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/npc-world-api/internal/redis"
)

const (
	// Key patterns:
	//   npc:instance:{entity_id}   JSON instance value
	//   npc:instances              set of all tracked entity ids
	//   npc:template:{external_id} set of entity ids spawned from the template
	instanceKeyPrefix = "npc:instance:"
	instanceIndexKey  = "npc:instances"
	templateKeyPrefix = "npc:template:"
)

// RedisConfig holds the configuration for the redis-backed registry
type RedisConfig struct {
	Client      redisclient.Client
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	idGen  idgen.Generator
	clock  clock.Clock
}

// NewRedis creates a redis-backed NPC instance registry. It lets several
// mock processes share one world; the in-memory backend remains the default.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Spawn creates and stores a new instance
func (r *redisRepository) Spawn(ctx context.Context, input SpawnInput) (*SpawnOutput, error) {
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

	instanceJSON, err := json.Marshal(instance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal npc instance")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.instanceKey(instance.EntityID), instanceJSON, 0)
		pipe.SAdd(ctx, instanceIndexKey, instance.EntityID)
		pipe.SAdd(ctx, r.templateKey(input.TemplateExternalID), instance.EntityID)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store npc instance in redis")
	}

	return &SpawnOutput{Instance: instance}, nil
}

// Remove destroys an instance
func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	instance, err := r.fetch(ctx, input.EntityID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &RemoveOutput{Removed: false}, nil
		}
		return nil, err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.instanceKey(input.EntityID))
		pipe.SRem(ctx, instanceIndexKey, input.EntityID)
		if instance.Template != nil {
			pipe.SRem(ctx, r.templateKey(instance.Template.ExternalID), input.EntityID)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to remove npc instance from redis")
	}

	return &RemoveOutput{Removed: true}, nil
}

// Get retrieves an instance
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	instance, err := r.fetch(ctx, input.EntityID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Instance: instance}, nil
}

// List returns a snapshot of all tracked instances
func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, instanceIndexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list npc instances from redis")
	}

	instances := make([]*world.NpcInstance, 0, len(ids))
	for _, id := range ids {
		instance, err := r.fetch(ctx, id)
		if err != nil {
			// Index entries can outlive their value during a concurrent
			// remove; skip them.
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		instances = append(instances, instance)
	}

	return &ListOutput{Instances: instances}, nil
}

// IsValid reports whether the id references a tracked instance
func (r *redisRepository) IsValid(ctx context.Context, input IsValidInput) (*IsValidOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	count, err := r.client.Exists(ctx, r.instanceKey(input.EntityID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check npc instance in redis")
	}

	return &IsValidOutput{Valid: count > 0}, nil
}

// DiscoverByTemplate returns the ids of all instances of a template
func (r *redisRepository) DiscoverByTemplate(ctx context.Context, input DiscoverInput) (*DiscoverOutput, error) {
	if input.TemplateExternalID == "" {
		return nil, errors.InvalidArgument("template external ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.templateKey(input.TemplateExternalID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to discover npc instances in redis")
	}

	return &DiscoverOutput{EntityIDs: ids}, nil
}

// UpdateLocation persists a new current location for the instance
func (r *redisRepository) UpdateLocation(ctx context.Context, input UpdateLocationInput) (*UpdateLocationOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	instance, err := r.fetch(ctx, input.EntityID)
	if err != nil {
		return nil, err
	}

	instance.CurrentLocation = input.Location

	instanceJSON, err := json.Marshal(instance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal npc instance")
	}

	if err := r.client.Set(ctx, r.instanceKey(input.EntityID), instanceJSON, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update npc instance in redis")
	}

	return &UpdateLocationOutput{Instance: instance}, nil
}

// MoveTo requests movement; the mock persists the target location and
// resolves the future immediately
func (r *redisRepository) MoveTo(ctx context.Context, input MoveToInput) (*MoveToOutput, error) {
	updated, err := r.UpdateLocation(ctx, UpdateLocationInput(input))
	if err != nil {
		return nil, err
	}

	result := newMoveResult()
	result.resolve(updated.Instance.CurrentLocation)

	return &MoveToOutput{Result: result}, nil
}

func (r *redisRepository) fetch(ctx context.Context, entityID string) (*world.NpcInstance, error) {
	instanceJSON, err := r.client.Get(ctx, r.instanceKey(entityID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("npc instance %q is not tracked", entityID)
		}
		return nil, errors.Wrapf(err, "failed to get npc instance from redis")
	}

	var instance world.NpcInstance
	if err := json.Unmarshal([]byte(instanceJSON), &instance); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal npc instance")
	}

	return &instance, nil
}

func (r *redisRepository) instanceKey(entityID string) string {
	return instanceKeyPrefix + entityID
}

func (r *redisRepository) templateKey(externalID string) string {
	return fmt.Sprintf("%s%s", templateKeyPrefix, externalID)
}
