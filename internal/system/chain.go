package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	coresys "github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/world"
)

// ChainSystem relays velocity down the chain so each segment follows its
// predecessor one step behind, with no position history. Phase 3 (Step).
//
// On a step where the head moved, the head's velocity is carried down the
// segment list, each segment swapping it for its own. Afterwards segment i
// holds what segment i-1 (the head for i=0) had before the relay, so the
// next integration puts every segment where its predecessor just was. This
// only works while Segments is in physical head-to-tail order.
type ChainSystem struct {
	state  *world.State
	bus    *event.Bus
	reader event.Reader
}

func NewChainSystem(state *world.State, bus *event.Bus) *ChainSystem {
	return &ChainSystem{state: state, bus: bus}
}

func (s *ChainSystem) Phase() coresys.Phase { return coresys.PhaseStep }

func (s *ChainSystem) Update(_ time.Duration) {
	headID, head := s.state.Head()

	moved := false
	for _, ev := range s.bus.Movement.Read(&s.reader) {
		if ev.Entity == headID {
			moved = true
		}
	}
	if !moved {
		return
	}

	carry := *s.state.Velocities.MustGet(headID)
	for i, seg := range head.Segments {
		v, ok := s.state.Velocities.Get(seg)
		if !ok {
			panic(fmt.Sprintf("chain: segment %d (%s) of head %s does not resolve", i, seg, headID))
		}
		*v, carry = carry, *v
	}
}
