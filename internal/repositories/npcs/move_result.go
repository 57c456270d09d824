package npcs

import (
	"context"
	"sync"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
)

// MoveResult is the asynchronous outcome of a movement request. The mock
// resolves it before returning; the type still carries a failure slot and a
// context-aware Wait so callers are written against the real contract, where
// movement takes time and can fail or be canceled.
type MoveResult struct {
	done chan struct{}

	once     sync.Once
	location world.Location
	err      error
}

func newMoveResult() *MoveResult {
	return &MoveResult{done: make(chan struct{})}
}

func (m *MoveResult) resolve(loc world.Location) {
	m.once.Do(func() {
		m.location = loc
		close(m.done)
	})
}

func (m *MoveResult) fail(err error) {
	m.once.Do(func() {
		m.err = err
		close(m.done)
	})
}

// Done returns a channel closed when the movement has finished
func (m *MoveResult) Done() <-chan struct{} {
	return m.done
}

// Wait blocks until the movement finishes or ctx is done, and returns the
// final location on success. An already-finished movement wins over an
// already-done context.
func (m *MoveResult) Wait(ctx context.Context) (world.Location, error) {
	select {
	case <-m.done:
		return m.location, m.err
	default:
	}

	select {
	case <-m.done:
		return m.location, m.err
	case <-ctx.Done():
		return world.Location{}, ctx.Err()
	}
}
