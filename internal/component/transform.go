package component

import "github.com/go-gl/mathgl/mgl32"

// Transform places an entity in the world. The only component a renderer reads
// for placement.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// NewTransform returns an unrotated, unit-scale transform at p.
func NewTransform(p mgl32.Vec3) *Transform {
	return &Transform{Position: p, Rotation: mgl32.QuatIdent(), Scale: 1}
}

// Forward is the local -Z axis in world space.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}
