package system

import (
	"time"

	"github.com/l1jgo/arcade/internal/component"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/input"
	"github.com/l1jgo/arcade/internal/world"
	"go.uber.org/zap"
)

var steerKeys = map[input.Key]component.Direction{
	input.KeyUp:    component.DirUp,
	input.KeyDown:  component.DirDown,
	input.KeyLeft:  component.DirLeft,
	input.KeyRight: component.DirRight,
}

// SteerInputSystem turns this frame's key presses into a candidate heading on
// the chain head, and forwards the grow key to growth. The last movement key
// pressed in a frame wins. Phase 0 (Input).
type SteerInputSystem struct {
	state  *world.State
	keys   input.Source
	growth *GrowthSystem // nil disables the grow key
}

func NewSteerInputSystem(state *world.State, keys input.Source, growth *GrowthSystem) *SteerInputSystem {
	return &SteerInputSystem{state: state, keys: keys, growth: growth}
}

func (s *SteerInputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *SteerInputSystem) Update(_ time.Duration) {
	_, head := s.state.Head()
	for _, k := range s.keys.Presses() {
		if d, ok := steerKeys[k]; ok {
			head.Pending = d
		}
	}
	if s.growth != nil && s.keys.JustPressed(input.KeyGrow) {
		s.growth.Request()
	}
}

// DirectionSystem accepts the pending heading unless it reverses the last
// accepted one, and sets the head's velocity to one cell along it. It runs
// before integration so the velocity the head moves with this step is the one
// the chain relay carries. Phase 2 (PreStep).
type DirectionSystem struct {
	state    *world.State
	stepSize float32
	log      *zap.Logger
}

func NewDirectionSystem(state *world.State, stepSize float32, log *zap.Logger) *DirectionSystem {
	return &DirectionSystem{state: state, stepSize: stepSize, log: log}
}

func (s *DirectionSystem) Phase() coresys.Phase { return coresys.PhasePreStep }

func (s *DirectionSystem) Update(_ time.Duration) {
	id, head := s.state.Head()
	cand := head.Pending
	head.Pending = component.DirNone
	if cand == component.DirNone {
		return
	}
	if cand == head.Dir.Opposite() {
		s.log.Debug("reversal rejected",
			zap.Stringer("heading", head.Dir),
			zap.Stringer("candidate", cand),
		)
		return
	}
	head.Dir = cand
	s.state.Velocities.MustGet(id).V = cand.Unit().Mul(s.stepSize)
}
