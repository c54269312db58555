package component

import "github.com/go-gl/mathgl/mgl32"

// Velocity is in world units per step (grid mode) or per second (continuous).
type Velocity struct {
	V mgl32.Vec3
}

// Acceleration is in world units per second squared. Only sandbox entities
// carry one; chain segments never do.
type Acceleration struct {
	A mgl32.Vec3
}
