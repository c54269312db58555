package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

// HitSystem resolves missile/asteroid overlaps from this step's collider
// lists: both are queued for destruction and the hit is counted. Register
// after CollisionSystem. Phase 3 (Step).
type HitSystem struct {
	state *world.State
	cues  Cuer // optional
	log   *zap.Logger
	hits  int
	gone  map[ecs.EntityID]struct{}
}

func NewHitSystem(state *world.State, cues Cuer, log *zap.Logger) *HitSystem {
	return &HitSystem{state: state, cues: cues, log: log, gone: make(map[ecs.EntityID]struct{}, 16)}
}

func (s *HitSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *HitSystem) Update(_ time.Duration) {
	clear(s.gone)
	ecs.Each2(s.state.Missiles, s.state.Colliders, func(missile ecs.EntityID, _ *component.Missile, c *component.Collider) {
		if _, used := s.gone[missile]; used {
			return
		}
		for _, other := range c.Colliding {
			if _, used := s.gone[other]; used || !s.state.Asteroids.Has(other) {
				continue
			}
			s.gone[missile] = struct{}{}
			s.gone[other] = struct{}{}
			s.state.ECS.MarkForDestruction(missile)
			s.state.ECS.MarkForDestruction(other)
			s.hits++
			if s.cues != nil {
				s.cues.Hit()
			}
			return
		}
	})
}

// Hits returns the number of asteroids destroyed.
func (s *HitSystem) Hits() int { return s.hits }

// BoundsSystem queues missiles and asteroids that drifted past a radius
// around the origin for destruction. Phase 4 (PostStep).
type BoundsSystem struct {
	state  *world.State
	radius float32
	log    *zap.Logger
}

func NewBoundsSystem(state *world.State, radius float32, log *zap.Logger) *BoundsSystem {
	return &BoundsSystem{state: state, radius: radius, log: log}
}

func (s *BoundsSystem) Phase() coresys.Phase { return coresys.PhasePostStep }

func (s *BoundsSystem) Update(_ time.Duration) {
	limit := s.radius * s.radius
	s.state.Transforms.Each(func(id ecs.EntityID, t *component.Transform) {
		if !s.state.Missiles.Has(id) && !s.state.Asteroids.Has(id) {
			return
		}
		if outside(t.Position, limit) {
			s.state.ECS.MarkForDestruction(id)
		}
	})
}

func outside(p mgl32.Vec3, limitSq float32) bool {
	return p.Dot(p) > limitSq
}
