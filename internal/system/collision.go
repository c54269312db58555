package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/world"
)

// CollisionSystem recomputes every Collider's overlap list from scratch.
// Phase 3 (Step).
//
// The scan is all-pairs, O(n²), with no spatial partitioning; fine for the
// tens to low hundreds of colliders these games hold. A read pass snapshots
// positions and finds overlaps into a pending table, then a commit pass
// rewrites every Collider, so no collider is read after it has been written.
type CollisionSystem struct {
	state *world.State
	bus   *event.Bus

	ids     []ecs.EntityID
	pos     []mgl32.Vec3
	radius  []float32
	pending [][]ecs.EntityID
	pairs   []event.Collision
}

func NewCollisionSystem(state *world.State, bus *event.Bus) *CollisionSystem {
	return &CollisionSystem{state: state, bus: bus}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *CollisionSystem) Update(_ time.Duration) {
	s.snapshot()
	s.scan()
	s.commit()
	s.bus.Collision.SendBatch(s.pairs...)
}

func (s *CollisionSystem) snapshot() {
	s.ids = s.ids[:0]
	s.pos = s.pos[:0]
	s.radius = s.radius[:0]
	ecs.Each2(s.state.Colliders, s.state.Transforms, func(id ecs.EntityID, c *component.Collider, t *component.Transform) {
		s.ids = append(s.ids, id)
		s.pos = append(s.pos, t.Position)
		s.radius = append(s.radius, c.Radius)
	})

	n := len(s.ids)
	if cap(s.pending) < n {
		s.pending = make([][]ecs.EntityID, n)
	}
	s.pending = s.pending[:n]
	for i := range s.pending {
		s.pending[i] = s.pending[i][:0]
	}
}

// scan visits each unordered pair once and records the hit on both sides.
func (s *CollisionSystem) scan() {
	s.pairs = s.pairs[:0]
	for i := 0; i < len(s.ids); i++ {
		for j := i + 1; j < len(s.ids); j++ {
			if !Colliding(s.pos[i], s.pos[j], s.radius[i], s.radius[j]) {
				continue
			}
			s.pending[i] = append(s.pending[i], s.ids[j])
			s.pending[j] = append(s.pending[j], s.ids[i])

			a, b := s.ids[i], s.ids[j]
			if b < a {
				a, b = b, a
			}
			s.pairs = append(s.pairs, event.Collision{A: a, B: b})
		}
	}
}

func (s *CollisionSystem) commit() {
	for i, id := range s.ids {
		c := s.state.Colliders.MustGet(id)
		c.Colliding = append(c.Colliding[:0], s.pending[i]...)
	}
}

// Colliding reports whether a and b overlap by the detector's rule, without
// touching any Collider.
func Colliding(pa, pb mgl32.Vec3, ra, rb float32) bool {
	d := pa.Sub(pb)
	r := ra + rb
	return d.Dot(d) < r*r
}
