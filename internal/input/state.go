package input

// Source is the read-only view systems get of the keyboard.
type Source interface {
	// Pressed reports whether k is currently held.
	Pressed(k Key) bool
	// JustPressed reports whether k went down during this frame.
	JustPressed(k Key) bool
	// Presses lists this frame's key-down events in arrival order.
	Presses() []Key
}

// State is the per-frame key set written by a front end and read by systems.
// Written and read on the simulation goroutine only.
type State struct {
	down    [keyCount]bool
	just    [keyCount]bool
	presses []Key
}

func NewState() *State {
	return &State{presses: make([]Key, 0, 8)}
}

// Press records a key-down event.
func (s *State) Press(k Key) {
	if k >= keyCount {
		return
	}
	s.down[k] = true
	s.just[k] = true
	s.presses = append(s.presses, k)
}

// Release records a key-up event.
func (s *State) Release(k Key) {
	if k >= keyCount {
		return
	}
	s.down[k] = false
}

// EndFrame forgets this frame's key-down edges. Held keys stay held.
func (s *State) EndFrame() {
	s.just = [keyCount]bool{}
	s.presses = s.presses[:0]
}

// Reset releases everything.
func (s *State) Reset() {
	s.down = [keyCount]bool{}
	s.EndFrame()
}

func (s *State) Pressed(k Key) bool     { return k < keyCount && s.down[k] }
func (s *State) JustPressed(k Key) bool { return k < keyCount && s.just[k] }
func (s *State) Presses() []Key         { return s.presses }
