package game

import (
	"fmt"
	"math/rand"

	"github.com/l1jgo/arcade/internal/asset"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/config"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/system"
	"github.com/l1jgo/arcade/internal/world"
)

// NewSandbox assembles the 3D sandbox: one ship at the origin, asteroids on a
// timer, missiles on the fire key. Steering, spawning and accelerated flight
// run per frame; the ship's constant-velocity flight, collisions, hits and
// out-of-range cleanup run on the fixed step.
func NewSandbox(cfg *config.Config, deps Deps) (*Game, error) {
	c := cfg.Sandbox
	g := newGame(Sandbox, coresys.NewClock(c.Step.Duration, c.Step.Duration), deps)
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Sim.Seed))
	}

	ship, shipVis, err := model(deps.Catalog, "spaceship", component.Visual{Glyph: 'A', Color: config.ColorSeaGreen})
	if err != nil {
		return nil, err
	}
	rock, rockVis, err := model(deps.Catalog, "asteroid", component.Visual{Glyph: 'O', Color: 0xa0522d})
	if err != nil {
		return nil, err
	}
	missile, missileVis, err := model(deps.Catalog, "missile", component.Visual{Glyph: '\'', Color: config.ColorTomato})
	if err != nil {
		return nil, err
	}

	shipVis.Size = 2 * config.ShipRadius
	id := g.State.SpawnBody(world.Body{Radius: config.ShipRadius, Model: ship, Visual: shipVis})
	g.State.Ships.Set(id, &component.Spaceship{})

	tun := system.ShipTuning{
		Speed:         c.ShipSpeed,
		RotationSpeed: c.RotationSpeed,
		RollSpeed:     c.RollSpeed,
		MissileSpeed:  c.MissileSpeed,
		MissileAccel:  c.MissileAccel,
		MissileAhead:  c.MissileForward,
		MissileRadius: config.MissileRadius,
		FireCooldown:  c.FireCooldown.Duration,
	}
	rocks := system.AsteroidTuning{
		Interval:       c.SpawnInterval.Duration,
		VelocityScalar: c.VelocityScalar,
		AccelScalar:    c.AccelScalar,
		RangeX:         c.SpawnRangeX,
		RangeY:         c.SpawnRangeY,
		RangeZ:         c.SpawnRangeZ,
		Radius:         config.AsteroidRadius,
	}
	rockVis.Size = 2 * config.AsteroidRadius
	missileVis.Size = 2 * config.MissileRadius

	hits := system.NewHitSystem(g.State, deps.Cues, g.log)
	g.score = func() (int, bool) { return hits.Hits(), false }

	runner := coresys.NewRunner()
	runner.Register(
		g.control,
		system.NewShipControlSystem(g.State, g.Input, tun),
		system.NewWeaponSystem(g.State, g.Input, tun, missile, missileVis),
		system.NewAsteroidSpawnSystem(g.State, rocks, rock, rockVis, rng, deps.Lua, g.log),
		system.NewAccelerationSystem(g.State, g.Bus),
		system.NewEventMaintenanceSystem(g.Bus),
		system.NewMovementSystem(g.State, g.Bus, system.Continuous),
		system.NewCollisionSystem(g.State, g.Bus),
		hits,
		system.NewBoundsSystem(g.State, c.DespawnDistance, g.log),
		system.NewCleanupSystem(g.State.ECS, g.log),
	)
	g.start(runner)
	return g, nil
}

// model resolves a named model and the visual a terminal draws for it. Without
// a catalog the handle is Invalid and the fallback visual is used.
func model(cat *asset.Catalog, name string, fallback component.Visual) (asset.Handle, component.Visual, error) {
	if cat == nil {
		return asset.Invalid, fallback, nil
	}
	h, err := cat.Resolve(name)
	if err != nil {
		return asset.Invalid, fallback, fmt.Errorf("sandbox model: %w", err)
	}
	e, _ := cat.Entry(h)
	return h, component.Visual{Glyph: e.Rune(), Color: e.RGB()}, nil
}
