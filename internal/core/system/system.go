package system

import "time"

// Phase defines execution ordering within a frame and within a step.
type Phase int

const (
	PhaseInput    Phase = iota // 0: every frame, even frozen: input mapping, score readout
	PhaseFrame                 // 1: every frame while running: variable-rate integration, animation
	PhasePreStep               // 2: accept direction, integrate, age movement events
	PhaseStep                  // 3: pickup, growth, chain relay, collision detection
	PhasePostStep              // 4: terminal conditions
	PhaseCleanup               // 5: destroy queued entities
)

var phaseNames = [...]string{"input", "frame", "pre_step", "step", "post_step", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// stepPhases run, in order, once per fixed step.
var stepPhases = [...]Phase{PhasePreStep, PhaseStep, PhasePostStep, PhaseCleanup}

// System is the interface every ECS system implements. dt is the frame's
// elapsed time for PhaseInput/PhaseFrame systems and the fixed step duration
// for step phases.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
