// Package worldstate holds the ambient world properties.
//
// The store is an explicitly owned object constructed at adapter start, not
// ambient global state, so multiple simulated worlds can coexist in tests.
package worldstate

import (
	"sync"
	"time"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
)

// Default values for a freshly constructed world
const (
	DefaultTimeOfDay = "day"
	DefaultWeather   = "clear"
	DefaultWorldName = "mockworld"
)

// Config holds the configuration for the store
type Config struct {
	Clock clock.Clock

	// Optional initial values; defaults apply when empty
	TimeOfDay string
	Weather   string
	WorldName string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

// Store is the mutable holder of time-of-day, weather, and world name.
// Setters are last-writer-wins per field; no validation is applied to the
// values, matching the permissive mock contract.
type Store struct {
	clock clock.Clock

	mu        sync.RWMutex
	timeOfDay string
	weather   string
	worldName string
	updatedAt time.Time
}

// New creates a store seeded with the configured or default values
func New(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Store{
		clock:     cfg.Clock,
		timeOfDay: cfg.TimeOfDay,
		weather:   cfg.Weather,
		worldName: cfg.WorldName,
	}
	if s.timeOfDay == "" {
		s.timeOfDay = DefaultTimeOfDay
	}
	if s.weather == "" {
		s.weather = DefaultWeather
	}
	if s.worldName == "" {
		s.worldName = DefaultWorldName
	}
	s.updatedAt = cfg.Clock.Now()

	return s, nil
}

// TimeOfDay returns the current time of day
func (s *Store) TimeOfDay() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timeOfDay
}

// Weather returns the current weather
func (s *Store) Weather() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weather
}

// WorldName returns the world name
func (s *Store) WorldName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.worldName
}

// UpdatedAt returns when any field last changed
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Snapshot returns a point-in-time copy of the world state
func (s *Store) Snapshot() world.WorldState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return world.WorldState{
		TimeOfDay: s.timeOfDay,
		Weather:   s.weather,
		WorldName: s.worldName,
	}
}

// SetTimeOfDay sets the time of day
func (s *Store) SetTimeOfDay(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeOfDay = value
	s.updatedAt = s.clock.Now()
}

// SetWeather sets the weather
func (s *Store) SetWeather(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weather = value
	s.updatedAt = s.clock.Now()
}
