package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/world"
)

func TestGridIntegrationIsExact(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	id := state.SpawnHead(mgl32.Vec3{10, 10, 0}, testStep, 0)
	state.Velocities.MustGet(id).V = mgl32.Vec3{0, -testStep, 0}
	still := state.SpawnSegment(id, mgl32.Vec3{5, 5, 0})

	mv := NewMovementSystem(state, bus, Grid)
	for i := 0; i < 3; i++ {
		mv.Update(time.Hour) // grid mode ignores dt
	}

	if got := state.Position(id); got != (mgl32.Vec3{10, -50, 0}) {
		t.Errorf("position = %v, want (10,-50,0)", got)
	}
	evs := bus.Movement.Read(&event.Reader{})
	if len(evs) != 3 {
		t.Fatalf("movement events = %d, want 3 (zero-velocity entity silent)", len(evs))
	}
	if evs[2].Entity != id || evs[2].From != (mgl32.Vec3{10, -30, 0}) {
		t.Errorf("last event = %+v", evs[2])
	}
	for _, ev := range evs {
		if ev.Entity == still {
			t.Error("event for an entity that did not move")
		}
	}
}

func TestContinuousIntegrationScalesByStep(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	id := state.SpawnHead(mgl32.Vec3{}, 1, 0)
	state.Velocities.MustGet(id).V = mgl32.Vec3{4, 0, -2}

	NewMovementSystem(state, bus, Continuous).Update(500 * time.Millisecond)

	if got := state.Position(id); got != (mgl32.Vec3{2, 0, -1}) {
		t.Errorf("position = %v, want (2,0,-1)", got)
	}
}

func TestMovementEventsAgeAfterTwoSteps(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	id := state.SpawnHead(mgl32.Vec3{}, 1, 0)
	state.Velocities.MustGet(id).V = mgl32.Vec3{1, 0, 0}
	maint := NewEventMaintenanceSystem(bus)
	mv := NewMovementSystem(state, bus, Grid)

	maint.Update(0)
	mv.Update(0)
	state.Velocities.MustGet(id).V = mgl32.Vec3{}
	maint.Update(0)
	mv.Update(0)
	if bus.Movement.Len() != 1 {
		t.Fatalf("buffered = %d, want 1 after one update", bus.Movement.Len())
	}
	maint.Update(0)
	if bus.Movement.Len() != 0 {
		t.Errorf("buffered = %d, want 0 after two updates", bus.Movement.Len())
	}
}

func TestAccelerationSemiImplicitEuler(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	id := state.SpawnBody(world.Body{
		Velocity:     mgl32.Vec3{1, 0, 0},
		Acceleration: mgl32.Vec3{2, 0, 0},
	})

	// Grid movement must leave accelerating bodies alone.
	NewMovementSystem(state, bus, Grid).Update(time.Second)
	if got := state.Position(id); got != (mgl32.Vec3{}) {
		t.Fatalf("movement system moved an accelerating body to %v", got)
	}

	NewAccelerationSystem(state, bus).Update(500 * time.Millisecond)
	// v = 1 + 2*0.5 = 2, then p = 0 + 2*0.5 = 1.
	if got := state.Velocities.MustGet(id).V; got != (mgl32.Vec3{2, 0, 0}) {
		t.Errorf("velocity = %v, want (2,0,0)", got)
	}
	if got := state.Position(id); got != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("position = %v, want (1,0,0)", got)
	}
}

func TestCollisionSymmetricAndStrict(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	spawn := func(x float32) ecs.EntityID {
		return state.SpawnBody(world.Body{Position: mgl32.Vec3{x, 0, 0}, Radius: 1})
	}
	a := spawn(0)
	b := spawn(1.5) // overlaps a
	c := spawn(3.5) // exactly touching b: not a collision
	d := spawn(50)

	NewCollisionSystem(state, bus).Update(0)

	col := func(id ecs.EntityID) *component.Collider { return state.Colliders.MustGet(id) }
	if !col(a).CollidesWith(b) || !col(b).CollidesWith(a) {
		t.Error("overlap not recorded on both sides")
	}
	if col(b).CollidesWith(c) || col(c).CollidesWith(b) {
		t.Error("touching spheres reported as colliding")
	}
	if len(col(d).Colliding) != 0 {
		t.Errorf("isolated collider lists %v", col(d).Colliding)
	}
	for _, x := range []ecs.EntityID{a, b, c, d} {
		for _, y := range col(x).Colliding {
			if y == x {
				t.Errorf("%s collides with itself", x)
			}
		}
	}
	evs := bus.Collision.Read(&event.Reader{})
	if len(evs) != 1 || evs[0].A >= evs[0].B {
		t.Errorf("collision events = %+v, want one ordered pair", evs)
	}

	// Lists are rebuilt, not accumulated.
	state.Transforms.MustGet(b).Position = mgl32.Vec3{-20, 0, 0}
	NewCollisionSystem(state, bus).Update(0)
	if len(col(a).Colliding) != 0 || len(col(b).Colliding) != 0 {
		t.Error("stale overlap survived a recompute")
	}
}

func TestCollidingMatchesDetector(t *testing.T) {
	if Colliding(mgl32.Vec3{}, mgl32.Vec3{2, 0, 0}, 1, 1) {
		t.Error("distance equal to radius sum must not collide")
	}
	if !Colliding(mgl32.Vec3{}, mgl32.Vec3{0, 1.9, 0}, 1, 1) {
		t.Error("overlap missed")
	}
}

func TestChainRelayShiftsVelocities(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	head := state.SpawnHead(mgl32.Vec3{}, testStep, 0)
	vh := mgl32.Vec3{0, 1, 0}
	state.Velocities.MustGet(head).V = vh
	vs := []mgl32.Vec3{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	var segs []ecs.EntityID
	for _, v := range vs {
		id := state.SpawnSegment(head, mgl32.Vec3{})
		state.Velocities.MustGet(id).V = v
		segs = append(segs, id)
	}
	chain := NewChainSystem(state, bus)

	// No head movement this step: nothing relays.
	chain.Update(0)
	if state.Velocities.MustGet(segs[0]).V != vs[0] {
		t.Fatal("relay ran without a head movement")
	}

	bus.Movement.Send(event.Movement{Entity: head})
	chain.Update(0)

	want := []mgl32.Vec3{vh, vs[0], vs[1]}
	for i, id := range segs {
		if got := state.Velocities.MustGet(id).V; got != want[i] {
			t.Errorf("segment %d velocity = %v, want %v", i, got, want[i])
		}
	}
	if state.Velocities.MustGet(head).V != vh {
		t.Error("relay changed the head's velocity")
	}
}

func TestChainPanicsOnDanglingSegment(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	head := state.SpawnHead(mgl32.Vec3{}, testStep, 0)
	state.SpawnSegment(head, mgl32.Vec3{})
	h := state.Heads.MustGet(head)
	h.Segments = append(h.Segments, ecs.NewEntityID(99, 1))
	bus.Movement.Send(event.Movement{Entity: head})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on unresolvable segment")
		}
	}()
	NewChainSystem(state, bus).Update(0)
}
