package system

import (
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"go.uber.org/zap"
)

// Cuer plays short audio cues. Implementations must not block.
type Cuer interface {
	Pickup()
	Hit()
	Death()
}

// ScoreSystem tracks the running score and settles the final one on Death.
// It runs in the input phase, so it still sees the Death event after the
// clock has frozen. Phase 0 (Input).
type ScoreSystem struct {
	bus    *event.Bus
	cues   Cuer // optional
	log    *zap.Logger
	reader event.Reader

	final    int
	finished bool
}

func NewScoreSystem(bus *event.Bus, cues Cuer, log *zap.Logger) *ScoreSystem {
	return &ScoreSystem{bus: bus, cues: cues, log: log}
}

func (s *ScoreSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *ScoreSystem) Update(_ time.Duration) {
	for _, ev := range s.bus.Death.Read(&s.reader) {
		if s.finished {
			continue
		}
		s.final = ev.Length
		s.finished = true
		s.log.Info("game over", zap.Int("score", s.final))
		if s.cues != nil {
			s.cues.Death()
		}
	}
}

// Final returns the final score once the game has ended.
func (s *ScoreSystem) Final() (int, bool) {
	return s.final, s.finished
}

// CueSystem plays the pickup cue for each fruit eaten this step. Reads
// without draining; register it before GrowthSystem. Phase 3 (Step).
type CueSystem struct {
	bus    *event.Bus
	cues   Cuer
	reader event.Reader
}

func NewCueSystem(bus *event.Bus, cues Cuer) *CueSystem {
	return &CueSystem{bus: bus, cues: cues}
}

func (s *CueSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *CueSystem) Update(_ time.Duration) {
	if len(s.bus.FruitEaten.Read(&s.reader)) > 0 {
		s.cues.Pickup()
	}
}
