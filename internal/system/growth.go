package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/scripting"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

// GrowthSystem appends one segment per FruitEaten event and per manual grow
// request. Phase 3 (Step), after pickup and before the chain relay.
//
// FruitEaten is drained here: each pickup grows the chain exactly once. The
// new segment starts with zero velocity where the tail stood at the start of
// the step (the head, for an empty chain); the relay that follows hands it the
// tail's old velocity so it trails one cell behind.
//
// Pickup-driven growth also shortens the clock step: through the Lua
// growth_step hook when one is loaded, else by the fixed speed-up factor.
type GrowthSystem struct {
	state   *world.State
	bus     *event.Bus
	clock   *coresys.Clock
	lua     *scripting.Engine // optional
	speedup float64
	log     *zap.Logger

	reader    event.Reader
	from      map[ecs.EntityID]mgl32.Vec3
	requested int
}

func NewGrowthSystem(state *world.State, bus *event.Bus, clock *coresys.Clock, lua *scripting.Engine, speedup float64, log *zap.Logger) *GrowthSystem {
	return &GrowthSystem{
		state:   state,
		bus:     bus,
		clock:   clock,
		lua:     lua,
		speedup: speedup,
		log:     log,
		from:    make(map[ecs.EntityID]mgl32.Vec3, 32),
	}
}

func (s *GrowthSystem) Phase() coresys.Phase { return coresys.PhaseStep }

// Request queues one growth that does not come from a pickup and does not
// change the step duration.
func (s *GrowthSystem) Request() {
	s.requested++
}

func (s *GrowthSystem) Update(_ time.Duration) {
	clear(s.from)
	for _, ev := range s.bus.Movement.Read(&s.reader) {
		s.from[ev.Entity] = ev.From
	}

	eaten := len(s.bus.FruitEaten.Drain())
	manual := s.requested
	s.requested = 0
	if eaten+manual == 0 {
		return
	}

	headID, _ := s.state.Head()
	for i := 0; i < eaten+manual; i++ {
		s.grow(headID)
	}
	for i := 0; i < eaten; i++ {
		s.speedUp()
	}

	_, head := s.state.Head()
	s.log.Debug("chain grew",
		zap.Int("eaten", eaten),
		zap.Int("manual", manual),
		zap.Int("length", len(head.Segments)+1),
		zap.Duration("step", s.clock.Step()),
	)
}

func (s *GrowthSystem) grow(headID ecs.EntityID) ecs.EntityID {
	_, head := s.state.Head()
	tail := headID
	if n := len(head.Segments); n > 0 {
		tail = head.Segments[n-1]
	}
	pos, ok := s.from[tail]
	if !ok {
		pos = s.state.Position(tail)
	}
	return s.state.SpawnSegment(headID, pos)
}

func (s *GrowthSystem) speedUp() {
	if s.lua != nil {
		_, head := s.state.Head()
		next, ok := s.lua.GrowthStep(scripting.GrowthContext{
			Step:    s.clock.Step(),
			Length:  len(head.Segments) + 1,
			Speedup: s.speedup,
		})
		if ok {
			s.clock.SetStep(next)
			return
		}
	}
	s.clock.Scale(s.speedup)
}
