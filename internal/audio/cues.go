// Package audio plays short synthesized cues for game events.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Cue identifies a sound effect.
type Cue uint8

const (
	CuePickup Cue = iota
	CueHit
	CueDeath
)

func (c Cue) String() string {
	switch c {
	case CuePickup:
		return "pickup"
	case CueHit:
		return "hit"
	case CueDeath:
		return "death"
	}
	return "unknown"
}

// note is one tone of a cue.
type note struct {
	freq float64
	dur  time.Duration
}

var cueNotes = map[Cue][]note{
	CuePickup: {{880, 40 * time.Millisecond}, {1320, 60 * time.Millisecond}},
	CueHit:    {{220, 80 * time.Millisecond}},
	CueDeath:  {{440, 120 * time.Millisecond}, {330, 120 * time.Millisecond}, {220, 240 * time.Millisecond}},
}

// Player mixes cues onto the speaker. Play calls never block the caller;
// the speaker pulls samples on its own goroutine.
type Player struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	volume float64
	log    *zap.Logger
}

// NewPlayer opens the speaker at sampleRate with a 100ms buffer.
func NewPlayer(sampleRate int, log *zap.Logger) (*Player, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	p := &Player{
		rate:   rate,
		mixer:  &beep.Mixer{},
		volume: 0.3,
		log:    log,
	}
	speaker.Play(p.mixer)
	return p, nil
}

func (p *Player) Pickup() { p.Play(CuePickup) }
func (p *Player) Hit()    { p.Play(CueHit) }
func (p *Player) Death()  { p.Play(CueDeath) }

// Play queues cue on the mixer.
func (p *Player) Play(cue Cue) {
	s, err := Render(cue, p.rate, p.volume)
	if err != nil {
		p.log.Warn("audio cue failed", zap.Stringer("cue", cue), zap.Error(err))
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences everything still playing.
func (p *Player) Close() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Render builds the finite streamer for cue at rate, scaled to volume in (0,1].
func Render(cue Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("%s tone %.0fHz: %w", cue, n.freq, err)
		}
		parts = append(parts, beep.Take(rate.N(n.dur), tone))
	}
	if volume <= 0 {
		return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Silent: true}, nil
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: math.Log2(volume)}, nil
}

// Nop is a cue sink that plays nothing.
type Nop struct{}

func (Nop) Pickup() {}
func (Nop) Hit()    {}
func (Nop) Death()  {}
