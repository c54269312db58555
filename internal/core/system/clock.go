package system

import "time"

// State is the run state of the simulation.
type State uint8

const (
	Running State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// FrozenStep is the step duration pinned on freeze. No accumulator reaches it
// in practice, and the GameOver state stops accumulation outright.
const FrozenStep = 1_000_000 * time.Second

// Clock owns simulation time: the fixed step duration, the leftover frame time
// not yet consumed by a step, and the run state. Mutated only on the
// simulation goroutine.
type Clock struct {
	step    time.Duration
	minStep time.Duration
	acc     time.Duration
	state   State
	steps   uint64
	simTime time.Duration
}

// NewClock returns a running clock. minStep bounds how far Scale can shrink
// the step; zero means no bound beyond 1ns.
func NewClock(step, minStep time.Duration) *Clock {
	if minStep <= 0 {
		minStep = time.Nanosecond
	}
	if step < minStep {
		step = minStep
	}
	return &Clock{step: step, minStep: minStep}
}

func (c *Clock) Step() time.Duration        { return c.step }
func (c *Clock) Accumulated() time.Duration { return c.acc }
func (c *Clock) State() State               { return c.state }
func (c *Clock) Running() bool              { return c.state == Running }
func (c *Clock) Steps() uint64              { return c.steps }

// SimTime is the total simulated time, the sum of all fired step durations.
func (c *Clock) SimTime() time.Duration { return c.simTime }

// SetStep replaces the step duration, clamped to the configured minimum.
// Ignored after a freeze.
func (c *Clock) SetStep(d time.Duration) {
	if c.state == GameOver {
		return
	}
	if d < c.minStep {
		d = c.minStep
	}
	c.step = d
}

// Scale multiplies the step duration by f. f < 1 speeds the game up.
func (c *Clock) Scale(f float64) {
	c.SetStep(time.Duration(float64(c.step) * f))
}

// Freeze ends the run. Irreversible: Resume does not leave GameOver.
func (c *Clock) Freeze() {
	c.state = GameOver
	c.step = FrozenStep
	c.acc = 0
}

func (c *Clock) Pause() {
	if c.state == Running {
		c.state = Paused
	}
}

func (c *Clock) Resume() {
	if c.state == Paused {
		c.state = Running
	}
}

// advance banks elapsed and reports whether one step is due. At most one step
// fires per call; surplus stays banked.
func (c *Clock) advance(elapsed time.Duration) bool {
	if c.state != Running {
		return false
	}
	c.acc += elapsed
	if c.acc < c.step {
		return false
	}
	c.acc -= c.step
	c.steps++
	c.simTime += c.step
	return true
}
