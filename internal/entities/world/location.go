// Package world implements the entities of the simulated game world
package world

import (
	"fmt"
	"math"
)

// Location is a 3D coordinate in world space. It is a plain value; callers
// create and copy locations freely and no registry owns them.
type Location struct {
	X float64
	Y float64
	Z float64
}

// NewLocation creates a location at the given coordinates
func NewLocation(x, y, z float64) Location {
	return Location{X: x, Y: y, Z: z}
}

// DistanceTo returns the Euclidean distance to other
func (l Location) DistanceTo(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// String returns a stable coordinate representation, e.g. "(0.0, 64.0, -12.5)"
func (l Location) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", l.X, l.Y, l.Z)
}
