package system

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/asset"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/input"
	"github.com/l1jgo/arcade/internal/scripting"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

// ShipTuning holds the sandbox ship and weapon scalars.
type ShipTuning struct {
	Speed         float32 // units/s along the nose
	RotationSpeed float32 // yaw, radians/s
	RollSpeed     float32 // roll, radians/s
	MissileSpeed  float32
	MissileAccel  float32
	MissileAhead  float32 // spawn offset in front of the ship
	MissileRadius float32
	FireCooldown  time.Duration
}

// ShipControlSystem steers the single spaceship from held keys: thrust sets
// the velocity along the nose, yaw turns about world Y, roll about the
// ship's own Z. Phase 1 (Frame).
type ShipControlSystem struct {
	state *world.State
	keys  input.Source
	tun   ShipTuning
}

func NewShipControlSystem(state *world.State, keys input.Source, tun ShipTuning) *ShipControlSystem {
	return &ShipControlSystem{state: state, keys: keys, tun: tun}
}

func (s *ShipControlSystem) Phase() coresys.Phase { return coresys.PhaseFrame }

func (s *ShipControlSystem) Update(dt time.Duration) {
	id, _ := s.state.Ships.Single()
	t := s.state.Transforms.MustGet(id)
	v := s.state.Velocities.MustGet(id)
	sec := float32(dt.Seconds())

	var movement, yaw, roll float32
	if s.keys.Pressed(input.KeyThrust) {
		movement = s.tun.Speed
	} else if s.keys.Pressed(input.KeyBrake) {
		movement = -s.tun.Speed
	}
	if s.keys.Pressed(input.KeyYawLeft) {
		yaw = s.tun.RotationSpeed * sec
	} else if s.keys.Pressed(input.KeyYawRight) {
		yaw = -s.tun.RotationSpeed * sec
	}
	if s.keys.Pressed(input.KeyRollLeft) {
		roll = -s.tun.RollSpeed * sec
	} else if s.keys.Pressed(input.KeyRollRight) {
		roll = s.tun.RollSpeed * sec
	}

	v.V = t.Forward().Mul(movement)
	if roll != 0 {
		t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1})).Normalize()
	}
	if yaw != 0 {
		t.Rotation = mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).Mul(t.Rotation).Normalize()
	}
}

// WeaponSystem fires missiles from the ship's nose while Fire is held, at
// most once per cooldown. Missiles inherit the ship's orientation and
// accelerate along it. Phase 1 (Frame).
type WeaponSystem struct {
	state    *world.State
	keys     input.Source
	tun      ShipTuning
	model    asset.Handle
	visual   component.Visual
	cooldown time.Duration
	fired    int
}

func NewWeaponSystem(state *world.State, keys input.Source, tun ShipTuning, model asset.Handle, visual component.Visual) *WeaponSystem {
	return &WeaponSystem{state: state, keys: keys, tun: tun, model: model, visual: visual}
}

func (s *WeaponSystem) Phase() coresys.Phase { return coresys.PhaseFrame }

func (s *WeaponSystem) Update(dt time.Duration) {
	if s.cooldown > 0 {
		s.cooldown -= dt
	}
	if !s.keys.Pressed(input.KeyFire) || s.cooldown > 0 {
		return
	}
	s.cooldown = s.tun.FireCooldown

	shipID, _ := s.state.Ships.Single()
	t := s.state.Transforms.MustGet(shipID)
	fwd := t.Forward()

	id := s.state.SpawnBody(world.Body{
		Position:     t.Position.Add(fwd.Mul(s.tun.MissileAhead)),
		Rotation:     t.Rotation,
		Velocity:     fwd.Mul(s.tun.MissileSpeed),
		Acceleration: fwd.Mul(s.tun.MissileAccel),
		Scale:        0.5,
		Radius:       s.tun.MissileRadius,
		Model:        s.model,
		Visual:       s.visual,
	})
	s.state.Missiles.Set(id, &component.Missile{})
	s.fired++
}

// Fired returns the number of missiles launched.
func (s *WeaponSystem) Fired() int { return s.fired }

// AsteroidTuning holds the asteroid spawner settings.
type AsteroidTuning struct {
	Interval       time.Duration
	VelocityScalar float32
	AccelScalar    float32
	RangeX         float32 // spawn box half-extents
	RangeY         float32
	RangeZ         float32
	Radius         float32
}

// AsteroidSpawnSystem drops an asteroid at a random point in the spawn box on
// a repeating timer, drifting and accelerating along random horizontal
// directions. The Lua spawn_interval hook, when present, sets the period.
// Phase 1 (Frame).
type AsteroidSpawnSystem struct {
	state   *world.State
	tun     AsteroidTuning
	model   asset.Handle
	visual  component.Visual
	rng     *rand.Rand
	lua     *scripting.Engine // optional
	log     *zap.Logger
	timer   time.Duration
	next    time.Duration
	elapsed time.Duration
	spawned int
}

func NewAsteroidSpawnSystem(state *world.State, tun AsteroidTuning, model asset.Handle, visual component.Visual, rng *rand.Rand, lua *scripting.Engine, log *zap.Logger) *AsteroidSpawnSystem {
	return &AsteroidSpawnSystem{
		state:  state,
		tun:    tun,
		model:  model,
		visual: visual,
		rng:    rng,
		lua:    lua,
		log:    log,
		next:   tun.Interval,
	}
}

func (s *AsteroidSpawnSystem) Phase() coresys.Phase { return coresys.PhaseFrame }

func (s *AsteroidSpawnSystem) Update(dt time.Duration) {
	s.elapsed += dt
	s.timer += dt
	if s.timer < s.next {
		return
	}
	s.timer -= s.next
	s.Spawn()

	s.next = s.tun.Interval
	if s.lua != nil {
		if iv, ok := s.lua.SpawnInterval(s.elapsed, s.tun.Interval); ok {
			s.next = iv
		}
	}
}

// Spawn creates one asteroid now.
func (s *AsteroidSpawnSystem) Spawn() ecs.EntityID {
	pos := mgl32.Vec3{
		s.uniform(s.tun.RangeX),
		s.uniform(s.tun.RangeY),
		s.uniform(s.tun.RangeZ),
	}
	id := s.state.SpawnBody(world.Body{
		Position:     pos,
		Velocity:     s.horizontalUnit().Mul(s.tun.VelocityScalar),
		Acceleration: s.horizontalUnit().Mul(s.tun.AccelScalar),
		Scale:        0.7,
		Radius:       s.tun.Radius,
		Model:        s.model,
		Visual:       s.visual,
	})
	s.state.Asteroids.Set(id, &component.Asteroid{})
	s.spawned++
	s.log.Debug("asteroid spawned", zap.Int("total", s.spawned))
	return id
}

// uniform returns a value in [-r, r).
func (s *AsteroidSpawnSystem) uniform(r float32) float32 {
	return (s.rng.Float32()*2 - 1) * r
}

// horizontalUnit returns a random unit vector on the XZ plane.
func (s *AsteroidSpawnSystem) horizontalUnit() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{s.uniform(1), 0, s.uniform(1)}
		if l := v.Len(); l > 1e-3 {
			return v.Mul(1 / l)
		}
	}
}
