package world_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
)

func TestLocationDistanceTo(t *testing.T) {
	testCases := []struct {
		name string
		a    world.Location
		b    world.Location
		want float64
	}{
		{
			name: "same point",
			a:    world.NewLocation(1, 2, 3),
			b:    world.NewLocation(1, 2, 3),
			want: 0,
		},
		{
			name: "single axis",
			a:    world.NewLocation(0, 0, 0),
			b:    world.NewLocation(10, 0, 0),
			want: 10,
		},
		{
			name: "pythagorean triple",
			a:    world.NewLocation(0, 0, 0),
			b:    world.NewLocation(3, 4, 0),
			want: 5,
		},
		{
			name: "negative coordinates",
			a:    world.NewLocation(-1, -1, -1),
			b:    world.NewLocation(1, 1, 1),
			want: 3.4641016151377544,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.a.DistanceTo(tc.b), 1e-9)
			assert.InDelta(t, tc.want, tc.b.DistanceTo(tc.a), 1e-9)
		})
	}
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "(0.0, 64.0, -12.5)", world.NewLocation(0, 64, -12.5).String())
	assert.Equal(t, "(1.2, 3.4, 5.7)", world.NewLocation(1.25, 3.449, 5.65).String())
}
