package system

import (
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

// TerminalSystem ends the run when the head leaves the board or touches its
// own body: the clock freezes and a Death event is emitted. Segments closer to
// the head than safetySkip are not tested; right after a turn they sit within
// one cell of it. Phase 4 (PostStep).
type TerminalSystem struct {
	state      *world.State
	bus        *event.Bus
	clock      *coresys.Clock
	field      Playfield
	safetySkip int
	log        *zap.Logger
}

func NewTerminalSystem(state *world.State, bus *event.Bus, clock *coresys.Clock, field Playfield, safetySkip int, log *zap.Logger) *TerminalSystem {
	return &TerminalSystem{state: state, bus: bus, clock: clock, field: field, safetySkip: safetySkip, log: log}
}

func (s *TerminalSystem) Phase() coresys.Phase { return coresys.PhasePostStep }

func (s *TerminalSystem) Update(_ time.Duration) {
	headID, head := s.state.Head()
	hp := s.state.Position(headID)

	reason := ""
	if !s.field.Contains(hp) {
		reason = "wall"
	} else {
		limit := s.field.StepSize * s.field.StepSize
		for i := s.safetySkip; i < len(head.Segments); i++ {
			d := s.state.Position(head.Segments[i]).Sub(hp)
			if d.Dot(d) < limit {
				reason = "self"
				break
			}
		}
	}
	if reason == "" {
		return
	}

	length := len(head.Segments) + 1
	s.clock.Freeze()
	s.bus.Emit(event.Death{Length: length})
	s.log.Info("chain died",
		zap.String("reason", reason),
		zap.Int("length", length),
		zap.Float32("x", hp.X()),
		zap.Float32("y", hp.Y()),
		zap.Uint64("steps", s.clock.Steps()),
	)
}
