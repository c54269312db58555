package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/asset"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
)

// State holds the entity arena and every component store of a running game.
// Accessed only from the simulation goroutine, so no locks.
type State struct {
	ECS *ecs.World

	Transforms    *ecs.Store[component.Transform]
	Velocities    *ecs.Store[component.Velocity]
	Accelerations *ecs.Store[component.Acceleration]
	Colliders     *ecs.Store[component.Collider]
	Visuals       *ecs.Store[component.Visual]

	Heads    *ecs.Store[component.ChainHead]
	Segments *ecs.Store[component.Segment]
	Fruits   *ecs.Store[component.Fruit]

	Models    *ecs.Store[component.Model]
	Ships     *ecs.Store[component.Spaceship]
	Missiles  *ecs.Store[component.Missile]
	Asteroids *ecs.Store[component.Asteroid]
}

func NewState() *State {
	w := ecs.NewWorld()
	r := w.Registry()
	s := &State{
		ECS:           w,
		Transforms:    ecs.Attach[component.Transform](r),
		Velocities:    ecs.Attach[component.Velocity](r),
		Accelerations: ecs.Attach[component.Acceleration](r),
		Colliders:     ecs.Attach[component.Collider](r),
		Visuals:       ecs.Attach[component.Visual](r),
		Heads:         ecs.Attach[component.ChainHead](r),
		Segments:      ecs.Attach[component.Segment](r),
		Fruits:        ecs.Attach[component.Fruit](r),
		Models:        ecs.Attach[component.Model](r),
		Ships:         ecs.Attach[component.Spaceship](r),
		Missiles:      ecs.Attach[component.Missile](r),
		Asteroids:     ecs.Attach[component.Asteroid](r),
	}
	w.OnDespawn(s.despawnChain)
	return s
}

// despawnChain keeps head→segment ownership consistent: a head takes its
// segments with it, and a segment despawned on its own leaves its head's list.
func (s *State) despawnChain(id ecs.EntityID) {
	if head, ok := s.Heads.Get(id); ok {
		segs := head.Segments
		head.Segments = nil
		for _, seg := range segs {
			s.ECS.Despawn(seg)
		}
		return
	}
	if seg, ok := s.Segments.Get(id); ok {
		head, ok := s.Heads.Get(seg.Head)
		if !ok {
			return
		}
		for i, other := range head.Segments {
			if other == id {
				head.Segments = append(head.Segments[:i], head.Segments[i+1:]...)
				break
			}
		}
	}
}

func (s *State) Alive(id ecs.EntityID) bool { return s.ECS.Alive(id) }

// Despawn destroys id now, cascading to owned segments.
func (s *State) Despawn(id ecs.EntityID) { s.ECS.Despawn(id) }

// Len returns the number of live entities.
func (s *State) Len() int { return s.ECS.Len() }

// Head returns the single chain head. Anything other than exactly one head is
// a broken invariant and panics.
func (s *State) Head() (ecs.EntityID, *component.ChainHead) {
	return s.Heads.Single()
}

// Position returns the position of id, panicking if it has no Transform.
func (s *State) Position(id ecs.EntityID) mgl32.Vec3 {
	return s.Transforms.MustGet(id).Position
}

// SpawnHead creates a chain head at pos with no segments and zero velocity.
func (s *State) SpawnHead(pos mgl32.Vec3, size float32, color uint32) ecs.EntityID {
	id := s.ECS.Spawn()
	s.Transforms.Set(id, component.NewTransform(pos))
	s.Velocities.Set(id, &component.Velocity{})
	s.Colliders.Set(id, component.NewCollider(size))
	s.Visuals.Set(id, &component.Visual{Glyph: '@', Color: color, Size: size})
	s.Heads.Set(id, &component.ChainHead{})
	return id
}

// SpawnSegment appends a new tail segment to head at pos with zero velocity.
// Appending is the only way segments are added, which keeps the list in
// physical head-to-tail order.
func (s *State) SpawnSegment(head ecs.EntityID, pos mgl32.Vec3) ecs.EntityID {
	h, ok := s.Heads.Get(head)
	if !ok {
		panic(fmt.Sprintf("world: spawn segment for %s which is not a chain head", head))
	}
	vis := s.Visuals.MustGet(head)

	id := s.ECS.Spawn()
	s.Transforms.Set(id, component.NewTransform(pos))
	s.Velocities.Set(id, &component.Velocity{})
	s.Colliders.Set(id, component.NewCollider(vis.Size))
	s.Visuals.Set(id, &component.Visual{Glyph: 'o', Color: vis.Color, Size: vis.Size})
	s.Segments.Set(id, &component.Segment{Head: head})
	h.Segments = append(h.Segments, id)
	return id
}

// SpawnFruit places a pickup at pos.
func (s *State) SpawnFruit(pos mgl32.Vec3, size float32, color uint32, phase float32) ecs.EntityID {
	id := s.ECS.Spawn()
	s.Transforms.Set(id, component.NewTransform(pos))
	s.Colliders.Set(id, component.NewCollider(size))
	s.Visuals.Set(id, &component.Visual{Glyph: '*', Color: color, Size: size})
	s.Fruits.Set(id, &component.Fruit{Phase: phase})
	return id
}

// Body describes a free-flying sandbox entity.
type Body struct {
	Position     mgl32.Vec3
	Rotation     mgl32.Quat
	Velocity     mgl32.Vec3
	Acceleration mgl32.Vec3
	Scale        float32
	Radius       float32
	Model        asset.Handle
	Visual       component.Visual
}

// SpawnBody creates a free-flying entity. Bodies with a zero Acceleration get
// none and move at constant velocity on the fixed step; the rest are
// integrated per frame.
func (s *State) SpawnBody(b Body) ecs.EntityID {
	if b.Scale == 0 {
		b.Scale = 1
	}
	if b.Rotation == (mgl32.Quat{}) {
		b.Rotation = mgl32.QuatIdent()
	}
	id := s.ECS.Spawn()
	s.Transforms.Set(id, &component.Transform{Position: b.Position, Rotation: b.Rotation, Scale: b.Scale})
	s.Velocities.Set(id, &component.Velocity{V: b.Velocity})
	if b.Acceleration != (mgl32.Vec3{}) {
		s.Accelerations.Set(id, &component.Acceleration{A: b.Acceleration})
	}
	s.Colliders.Set(id, &component.Collider{Radius: b.Radius})
	s.Models.Set(id, &component.Model{Handle: b.Model})
	vis := b.Visual
	s.Visuals.Set(id, &vis)
	return id
}
