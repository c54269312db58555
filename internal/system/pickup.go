package system

import (
	"time"

	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/world"
)

// PickupSystem eats every fruit within one grid cell of the head: the fruit is
// despawned and one FruitEaten is emitted for it. Phase 3 (Step).
type PickupSystem struct {
	state    *world.State
	bus      *event.Bus
	stepSize float32
	eaten    []ecs.EntityID
}

func NewPickupSystem(state *world.State, bus *event.Bus, stepSize float32) *PickupSystem {
	return &PickupSystem{state: state, bus: bus, stepSize: stepSize}
}

func (s *PickupSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *PickupSystem) Update(_ time.Duration) {
	headID, _ := s.state.Head()
	hp := s.state.Position(headID)
	limit := s.stepSize * s.stepSize

	s.eaten = s.eaten[:0]
	ecs.Each2(s.state.Fruits, s.state.Transforms, func(id ecs.EntityID, _ *component.Fruit, t *component.Transform) {
		d := t.Position.Sub(hp)
		if d.Dot(d) < limit {
			s.eaten = append(s.eaten, id)
		}
	})
	for _, id := range s.eaten {
		s.state.Despawn(id)
		s.bus.Emit(event.FruitEaten{})
	}
}
