package system

import (
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	"go.uber.org/zap"
)

// Scheduler drives one frame at a time: variable-rate phases every frame and
// at most one fixed step when enough time has been banked.
type Scheduler struct {
	runner *Runner
	clock  *Clock
	bus    *event.Bus
	log    *zap.Logger
	frames uint64
}

func NewScheduler(runner *Runner, clock *Clock, bus *event.Bus, log *zap.Logger) *Scheduler {
	return &Scheduler{runner: runner, clock: clock, bus: bus, log: log}
}

func (s *Scheduler) Clock() *Clock   { return s.clock }
func (s *Scheduler) Runner() *Runner { return s.runner }
func (s *Scheduler) Frames() uint64  { return s.frames }

// Frame advances the simulation by one rendered frame and reports whether a
// fixed step ran.
func (s *Scheduler) Frame(elapsed time.Duration) bool {
	s.frames++
	s.runner.TickPhase(PhaseInput, elapsed)
	s.bus.UpdateFrame()

	if !s.clock.Running() {
		return false
	}
	s.runner.TickPhase(PhaseFrame, elapsed)

	step := s.clock.Step()
	if !s.clock.advance(elapsed) {
		return false
	}
	for _, p := range stepPhases {
		s.runner.TickPhase(p, step)
	}

	if st := s.clock.State(); st != Running {
		s.log.Info("simulation halted",
			zap.Stringer("state", st),
			zap.Uint64("steps", s.clock.Steps()),
			zap.Duration("sim_time", s.clock.SimTime()),
		)
	}
	return true
}
