package system

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/asset"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/input"
	"github.com/l1jgo/arcade/internal/scripting"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

var testTuning = ShipTuning{
	Speed:         25,
	RotationSpeed: 5,
	RollSpeed:     5,
	MissileSpeed:  50,
	MissileAccel:  20,
	MissileAhead:  8.5,
	MissileRadius: 1,
	FireCooldown:  100 * time.Millisecond,
}

func spawnShip(state *world.State) {
	id := state.SpawnBody(world.Body{Radius: 4})
	state.Ships.Set(id, &component.Spaceship{})
}

func near(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-4)
}

func TestShipThrustAlongNose(t *testing.T) {
	state := world.NewState()
	spawnShip(state)
	keys := input.NewState()
	ctl := NewShipControlSystem(state, keys, testTuning)
	id, _ := state.Ships.Single()

	keys.Press(input.KeyThrust)
	ctl.Update(16 * time.Millisecond)
	if got := state.Velocities.MustGet(id).V; !near(got, mgl32.Vec3{0, 0, -25}) {
		t.Errorf("thrust velocity = %v, want (0,0,-25)", got)
	}

	keys.Release(input.KeyThrust)
	keys.Press(input.KeyBrake)
	ctl.Update(16 * time.Millisecond)
	if got := state.Velocities.MustGet(id).V; !near(got, mgl32.Vec3{0, 0, 25}) {
		t.Errorf("brake velocity = %v, want (0,0,25)", got)
	}

	keys.Reset()
	ctl.Update(16 * time.Millisecond)
	if got := state.Velocities.MustGet(id).V; got != (mgl32.Vec3{}) {
		t.Errorf("idle velocity = %v, want zero", got)
	}
}

func TestShipYawTurnsNose(t *testing.T) {
	state := world.NewState()
	spawnShip(state)
	keys := input.NewState()
	tun := testTuning
	tun.RotationSpeed = math.Pi // half a turn per second
	ctl := NewShipControlSystem(state, keys, tun)
	id, _ := state.Ships.Single()

	keys.Press(input.KeyYawLeft)
	ctl.Update(500 * time.Millisecond)

	// A quarter turn left about +Y takes -Z to -X.
	if got := state.Transforms.MustGet(id).Forward(); !near(got, mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("forward after yaw = %v, want (-1,0,0)", got)
	}
}

func TestShipRollKeepsNose(t *testing.T) {
	state := world.NewState()
	spawnShip(state)
	keys := input.NewState()
	ctl := NewShipControlSystem(state, keys, testTuning)
	id, _ := state.Ships.Single()

	keys.Press(input.KeyRollRight)
	ctl.Update(200 * time.Millisecond)

	tr := state.Transforms.MustGet(id)
	if got := tr.Forward(); !near(got, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("forward after roll = %v, want unchanged", got)
	}
	if tr.Rotation.ApproxEqual(mgl32.QuatIdent()) {
		t.Error("roll did not rotate the ship")
	}
}

func TestWeaponCooldown(t *testing.T) {
	state := world.NewState()
	spawnShip(state)
	keys := input.NewState()
	weapon := NewWeaponSystem(state, keys, testTuning, asset.Handle(3), component.Visual{Glyph: '|'})

	keys.Press(input.KeyFire)
	for i := 0; i < 10; i++ { // 160ms held
		weapon.Update(16 * time.Millisecond)
	}
	if weapon.Fired() != 2 {
		t.Fatalf("fired = %d, want 2 across one cooldown", weapon.Fired())
	}
	if state.Missiles.Len() != 2 {
		t.Errorf("missiles = %d, want 2", state.Missiles.Len())
	}

	state.Missiles.Each(func(id ecs.EntityID, _ *component.Missile) {
		if got := state.Position(id); !near(got, mgl32.Vec3{0, 0, -8.5}) {
			t.Errorf("missile spawned at %v, want ahead of the nose", got)
		}
		if got := state.Accelerations.MustGet(id).A; !near(got, mgl32.Vec3{0, 0, -20}) {
			t.Errorf("missile acceleration = %v", got)
		}
		if got := state.Models.MustGet(id).Handle; got != 3 {
			t.Errorf("missile model = %d, want 3", got)
		}
	})
}

func TestAsteroidSpawnerTimer(t *testing.T) {
	state := world.NewState()
	tun := AsteroidTuning{
		Interval:       300 * time.Millisecond,
		VelocityScalar: 10,
		AccelScalar:    1,
		RangeX:         50,
		RangeY:         5,
		RangeZ:         50,
		Radius:         2.5,
	}
	sp := NewAsteroidSpawnSystem(state, tun, asset.Invalid, component.Visual{}, rand.New(rand.NewSource(3)), nil, zap.NewNop())

	for i := 0; i < 10; i++ { // 1s
		sp.Update(100 * time.Millisecond)
	}
	if state.Asteroids.Len() != 3 {
		t.Fatalf("asteroids = %d, want 3", state.Asteroids.Len())
	}

	state.Asteroids.Each(func(id ecs.EntityID, _ *component.Asteroid) {
		p := state.Position(id)
		if abs32(p.X()) > 50 || abs32(p.Y()) > 5 || abs32(p.Z()) > 50 {
			t.Errorf("asteroid outside spawn box: %v", p)
		}
		v := state.Velocities.MustGet(id).V
		if v.Y() != 0 || math.Abs(float64(v.Len())-10) > 1e-3 {
			t.Errorf("velocity %v, want horizontal with length 10", v)
		}
		a := state.Accelerations.MustGet(id).A
		if a.Y() != 0 || math.Abs(float64(a.Len())-1) > 1e-3 {
			t.Errorf("acceleration %v, want horizontal unit", a)
		}
	})
}

func TestAsteroidSpawnerUsesScriptedInterval(t *testing.T) {
	lua, err := scripting.NewEngineFromSource(`function spawn_interval(elapsed_s, base_s) return 1 end`, zap.NewNop())
	if err != nil {
		t.Fatalf("lua: %v", err)
	}
	defer lua.Close()

	state := world.NewState()
	sp := NewAsteroidSpawnSystem(state, AsteroidTuning{Interval: 100 * time.Millisecond, VelocityScalar: 1, AccelScalar: 1},
		asset.Invalid, component.Visual{}, rand.New(rand.NewSource(1)), lua, zap.NewNop())

	for i := 0; i < 10; i++ { // 1s: first at 100ms, the next waits a full second
		sp.Update(100 * time.Millisecond)
	}
	if state.Asteroids.Len() != 1 {
		t.Errorf("asteroids = %d, want 1", state.Asteroids.Len())
	}
}

func TestHitsAndBounds(t *testing.T) {
	state := world.NewState()
	bus := event.NewBus()
	spawnShip(state)
	cues := &countingCues{}

	missile := state.SpawnBody(world.Body{Position: mgl32.Vec3{10, 0, 0}, Radius: 1})
	state.Missiles.Set(missile, &component.Missile{})
	rock := state.SpawnBody(world.Body{Position: mgl32.Vec3{11, 0, 0}, Radius: 2.5})
	state.Asteroids.Set(rock, &component.Asteroid{})
	other := state.SpawnBody(world.Body{Position: mgl32.Vec3{12, 0, 0}, Radius: 2.5})
	state.Asteroids.Set(other, &component.Asteroid{})
	far := state.SpawnBody(world.Body{Position: mgl32.Vec3{0, 0, -150}, Radius: 2.5})
	state.Asteroids.Set(far, &component.Asteroid{})

	NewCollisionSystem(state, bus).Update(0)
	hits := NewHitSystem(state, cues, zap.NewNop())
	hits.Update(0)
	NewBoundsSystem(state, 100, zap.NewNop()).Update(0)

	if state.Len() != 5 {
		t.Fatal("marked entities despawned before cleanup")
	}
	NewCleanupSystem(state.ECS, zap.NewNop()).Update(0)

	if state.Alive(missile) || state.Alive(far) {
		t.Error("missile or out-of-bounds asteroid survived cleanup")
	}
	if state.Alive(rock) == state.Alive(other) {
		t.Error("one missile must take exactly one asteroid")
	}
	if hits.Hits() != 1 || cues.hit != 1 {
		t.Errorf("hits = %d cues = %d, want 1", hits.Hits(), cues.hit)
	}
	if state.Ships.Len() != 1 {
		t.Error("ship removed")
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
