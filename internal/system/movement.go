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

// Integration selects how velocity maps onto a step.
type Integration uint8

const (
	// Grid moves by exactly the velocity vector each step; velocity is in
	// world units per step.
	Grid Integration = iota
	// Continuous scales velocity (units/s) by the step duration.
	Continuous
)

// EventMaintenanceSystem ages the per-step movement queue before the
// integrator writes this step's events. Phase 2 (PreStep).
type EventMaintenanceSystem struct {
	bus *event.Bus
}

func NewEventMaintenanceSystem(bus *event.Bus) *EventMaintenanceSystem {
	return &EventMaintenanceSystem{bus: bus}
}

func (s *EventMaintenanceSystem) Phase() coresys.Phase { return coresys.PhasePreStep }

func (s *EventMaintenanceSystem) Update(_ time.Duration) {
	s.bus.Movement.Update()
}

// MovementSystem advances every entity that has a Velocity and no
// Acceleration, then emits one batched Movement event per entity that moved.
// Accelerating entities belong to AccelerationSystem, once per frame.
// Phase 2 (PreStep).
type MovementSystem struct {
	state *world.State
	bus   *event.Bus
	mode  Integration
	moved []event.Movement
}

func NewMovementSystem(state *world.State, bus *event.Bus, mode Integration) *MovementSystem {
	return &MovementSystem{state: state, bus: bus, mode: mode}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhasePreStep }

func (s *MovementSystem) Update(dt time.Duration) {
	scale := float32(1)
	if s.mode == Continuous {
		scale = float32(dt.Seconds())
	}

	s.moved = s.moved[:0]
	ecs.Each2(s.state.Velocities, s.state.Transforms, func(id ecs.EntityID, v *component.Velocity, t *component.Transform) {
		if v.V == (mgl32.Vec3{}) || !ecs.Without(id, s.state.Accelerations) {
			return
		}
		from := t.Position
		t.Position = from.Add(v.V.Mul(scale))
		s.moved = append(s.moved, event.Movement{Entity: id, From: from})
	})
	s.bus.Movement.SendBatch(s.moved...)
}

// AccelerationSystem integrates accelerating entities with semi-implicit
// Euler: velocity first, then position with the new velocity. Runs once per
// rendered frame with the frame's elapsed time. Phase 1 (Frame).
type AccelerationSystem struct {
	state *world.State
	bus   *event.Bus
	moved []event.Movement
}

func NewAccelerationSystem(state *world.State, bus *event.Bus) *AccelerationSystem {
	return &AccelerationSystem{state: state, bus: bus}
}

func (s *AccelerationSystem) Phase() coresys.Phase { return coresys.PhaseFrame }

func (s *AccelerationSystem) Update(dt time.Duration) {
	sec := float32(dt.Seconds())
	s.moved = s.moved[:0]
	ecs.Each3(s.state.Accelerations, s.state.Velocities, s.state.Transforms,
		func(id ecs.EntityID, a *component.Acceleration, v *component.Velocity, t *component.Transform) {
			v.V = v.V.Add(a.A.Mul(sec))
			if v.V == (mgl32.Vec3{}) {
				return
			}
			from := t.Position
			t.Position = from.Add(v.V.Mul(sec))
			s.moved = append(s.moved, event.Movement{Entity: id, From: from})
		})
	s.bus.Movement.SendBatch(s.moved...)
}
