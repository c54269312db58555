// Package game wires a world, an event bus, a clock and the systems of one
// game variant into a runnable simulation.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/l1jgo/arcade/internal/asset"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/input"
	"github.com/l1jgo/arcade/internal/scripting"
	"github.com/l1jgo/arcade/internal/system"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

// Variant names a game built on the engine.
type Variant string

const (
	Snek    Variant = "snek"
	Sandbox Variant = "sandbox"
)

// ParseVariant maps a command-line name to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Snek, Sandbox:
		return v, nil
	}
	return "", fmt.Errorf("unknown game %q (want %s or %s)", s, Snek, Sandbox)
}

// Deps bundles the collaborators a game takes from the process. Lua, Cues and
// Catalog may be nil.
type Deps struct {
	Log     *zap.Logger
	Rand    *rand.Rand
	Lua     *scripting.Engine
	Cues    system.Cuer
	Catalog *asset.Catalog
}

// Status is the HUD snapshot of a running game.
type Status struct {
	Variant  Variant
	State    coresys.State
	Score    int
	Final    bool
	Step     time.Duration
	Entities int
}

// Game is one assembled simulation. Not safe for concurrent use; drive it
// from a single goroutine.
type Game struct {
	Variant Variant
	State   *world.State
	Bus     *event.Bus
	Clock   *coresys.Clock
	Sched   *coresys.Scheduler
	Input   *input.State
	Catalog *asset.Catalog

	// Field is the snake board; zero for the sandbox.
	Field system.Playfield

	control *system.ControlSystem
	score   func() (int, bool)
	log     *zap.Logger
}

// New builds the named variant.
func New(v Variant, cfg *config.Config, deps Deps) (*Game, error) {
	switch v {
	case Snek:
		return NewSnek(cfg, deps), nil
	case Sandbox:
		return NewSandbox(cfg, deps)
	}
	return nil, fmt.Errorf("unknown game %q", v)
}

func newGame(v Variant, clock *coresys.Clock, deps Deps) *Game {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	g := &Game{
		Variant: v,
		State:   world.NewState(),
		Bus:     event.NewBus(),
		Clock:   clock,
		Input:   input.NewState(),
		Catalog: deps.Catalog,
		log:     deps.Log.With(zap.String("game", string(v))),
	}
	g.control = system.NewControlSystem(clock, g.Input, g.log)
	return g
}

// start builds the scheduler around the registered systems.
func (g *Game) start(runner *coresys.Runner) {
	g.Sched = coresys.NewScheduler(runner, g.Clock, g.Bus, g.log)
	g.log.Info("game assembled",
		zap.Int("systems", runner.Len()),
		zap.Int("entities", g.State.Len()),
		zap.Duration("step", g.Clock.Step()),
	)
}

// Frame advances the game by one rendered frame of elapsed wall time and
// reports whether a fixed step ran. Key edges recorded since the previous
// frame are consumed.
func (g *Game) Frame(elapsed time.Duration) bool {
	stepped := g.Sched.Frame(elapsed)
	g.Input.EndFrame()
	return stepped
}

// Quit reports whether the player asked to leave.
func (g *Game) Quit() bool { return g.control.QuitRequested() }

// Status returns the current HUD snapshot.
func (g *Game) Status() Status {
	score, final := g.score()
	return Status{
		Variant:  g.Variant,
		State:    g.Clock.State(),
		Score:    score,
		Final:    final,
		Step:     g.Clock.Step(),
		Entities: g.State.Len(),
	}
}
