package players

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*world.Player
}

// NewInMemory creates a new in-memory player registry
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*world.Player),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a player by id
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	player, exists := r.store[input.PlayerID]
	if !exists {
		return nil, errors.NotFoundf("player %q is not online", input.PlayerID)
	}

	return &GetOutput{Player: copyPlayer(player)}, nil
}

// GetByName retrieves a player by case-insensitive name
func (r *InMemoryRepository) GetByName(_ context.Context, input GetByNameInput) (*GetByNameOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("player name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, player := range r.store {
		if strings.EqualFold(player.Name, input.Name) {
			return &GetByNameOutput{Player: copyPlayer(player)}, nil
		}
	}

	return nil, errors.NotFoundf("no online player named %q", input.Name)
}

// List returns a snapshot of all online players
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]*world.Player, 0, len(r.store))
	for _, player := range r.store {
		players = append(players, copyPlayer(player))
	}

	return &ListOutput{Players: players}, nil
}

// Nearby returns the players with a known location within the radius
func (r *InMemoryRepository) Nearby(_ context.Context, input NearbyInput) (*NearbyOutput, error) {
	if input.Radius < 0 {
		return nil, errors.InvalidArgumentf("radius must not be negative, got %f", input.Radius)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var players []*world.Player
	for _, player := range r.store {
		if player.Location == nil {
			continue
		}
		if player.Location.DistanceTo(input.Location) <= input.Radius {
			players = append(players, copyPlayer(player))
		}
	}

	return &NearbyOutput{Players: players}, nil
}

// Add registers a player as online
func (r *InMemoryRepository) Add(_ context.Context, input AddInput) (*AddOutput, error) {
	if input.Player == nil {
		return nil, errors.InvalidArgument("player is required")
	}
	if input.Player.ID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	stored := copyPlayer(input.Player)

	r.mu.Lock()
	r.store[stored.ID] = stored
	r.mu.Unlock()

	return &AddOutput{Player: copyPlayer(stored)}, nil
}

// Remove unregisters a player
func (r *InMemoryRepository) Remove(_ context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	player, exists := r.store[input.PlayerID]
	if !exists {
		return nil, errors.NotFoundf("player %q is not online", input.PlayerID)
	}

	delete(r.store, input.PlayerID)

	return &RemoveOutput{Player: copyPlayer(player)}, nil
}

// copyPlayer returns a deep copy so no reader observes later mutations
func copyPlayer(p *world.Player) *world.Player {
	cp := *p
	if p.Location != nil {
		loc := *p.Location
		cp.Location = &loc
	}
	return &cp
}
