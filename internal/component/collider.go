package component

import "github.com/l1jgo/arcade/internal/core/ecs"

// Collider is a sphere of Radius around the entity's position. Colliding is
// derived data: the detector rebuilds it from scratch every pass.
type Collider struct {
	Radius    float32
	Colliding []ecs.EntityID
}

// NewCollider sizes a collider from an entity's visual extent (a diameter).
func NewCollider(size float32) *Collider {
	return &Collider{Radius: size / 2}
}

// CollidesWith reports whether id was in range at the last detector pass.
func (c *Collider) CollidesWith(id ecs.EntityID) bool {
	for _, other := range c.Colliding {
		if other == id {
			return true
		}
	}
	return false
}
