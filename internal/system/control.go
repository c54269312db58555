package system

import (
	"time"

	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/input"
	"go.uber.org/zap"
)

// ControlSystem handles the pause toggle and the quit key. Phase 0 (Input).
type ControlSystem struct {
	clock *coresys.Clock
	keys  input.Source
	log   *zap.Logger
	quit  bool
}

func NewControlSystem(clock *coresys.Clock, keys input.Source, log *zap.Logger) *ControlSystem {
	return &ControlSystem{clock: clock, keys: keys, log: log}
}

func (s *ControlSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ControlSystem) Update(_ time.Duration) {
	if s.keys.JustPressed(input.KeyQuit) {
		s.quit = true
	}
	if !s.keys.JustPressed(input.KeyPause) {
		return
	}
	switch s.clock.State() {
	case coresys.Running:
		s.clock.Pause()
	case coresys.Paused:
		s.clock.Resume()
	default:
		return
	}
	s.log.Info("pause toggled", zap.Stringer("state", s.clock.State()))
}

// QuitRequested reports whether the quit key has been pressed.
func (s *ControlSystem) QuitRequested() bool { return s.quit }
