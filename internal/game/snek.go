package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/config"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/system"
)

// NewSnek assembles the grid snake game: a still head on the centre cell and
// the initial scatter of fruit. The player starts it moving with a direction
// key.
//
// Step order: accept the pending heading, age movement events, integrate;
// then eat fruit, respawn it, grow, relay velocities down the chain and
// rebuild overlaps; then test for death; then flush queued despawns.
func NewSnek(cfg *config.Config, deps Deps) *Game {
	c := cfg.Snek
	g := newGame(Snek, coresys.NewClock(cfg.Sim.Step.Duration, cfg.Sim.MinStep.Duration), deps)
	g.Field = system.Playfield{StepSize: c.StepSize, Width: c.ScreenWidth, Height: c.ScreenHeight}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Sim.Seed))
	}

	half := c.StepSize / 2
	g.State.SpawnHead(mgl32.Vec3{half, half, 0}, c.StepSize-c.Padding, config.ColorSeaGreen)

	fruit := system.NewFruitSpawnSystem(g.State, g.Bus, g.Field, c.StepSize-config.FruitPadding, config.ColorTomato, rng)
	for i := 0; i < c.InitialFruit; i++ {
		fruit.Spawn()
	}

	growth := system.NewGrowthSystem(g.State, g.Bus, g.Clock, deps.Lua, c.Speedup, g.log)
	var growKey *system.GrowthSystem
	if c.ManualGrowKey {
		growKey = growth
	}
	score := system.NewScoreSystem(g.Bus, deps.Cues, g.log)
	g.score = func() (int, bool) {
		if s, ok := score.Final(); ok {
			return s, true
		}
		_, head := g.State.Head()
		return len(head.Segments) + 1, false
	}

	runner := coresys.NewRunner()
	runner.Register(
		g.control,
		system.NewSteerInputSystem(g.State, g.Input, growKey),
		score,
		system.NewAnimationSystem(g.State),
		system.NewDirectionSystem(g.State, c.StepSize, g.log),
		system.NewEventMaintenanceSystem(g.Bus),
		system.NewMovementSystem(g.State, g.Bus, system.Grid),
		system.NewPickupSystem(g.State, g.Bus, c.StepSize),
	)
	if deps.Cues != nil {
		runner.Register(system.NewCueSystem(g.Bus, deps.Cues))
	}
	if c.RespawnFruit {
		runner.Register(fruit)
	}
	runner.Register(
		growth,
		system.NewChainSystem(g.State, g.Bus),
		system.NewCollisionSystem(g.State, g.Bus),
		system.NewTerminalSystem(g.State, g.Bus, g.Clock, g.Field, c.SafetySkip, g.log),
		system.NewCleanupSystem(g.State.ECS, g.log),
	)
	g.start(runner)
	return g
}
