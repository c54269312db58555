package term

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/arcade/internal/game"
	"github.com/l1jgo/arcade/internal/input"
)

// Keymap translates terminal keys into game keys for one variant.
type Keymap struct {
	special map[tcell.Key]input.Key
	runes   map[rune]input.Key
}

// KeymapFor returns the bindings of v. Both variants share Esc/Ctrl-C/q to
// quit and p to pause.
func KeymapFor(v game.Variant) Keymap {
	m := Keymap{
		special: map[tcell.Key]input.Key{
			tcell.KeyEscape: input.KeyQuit,
			tcell.KeyCtrlC:  input.KeyQuit,
		},
		runes: map[rune]input.Key{
			'q': input.KeyQuit,
			'p': input.KeyPause,
		},
	}
	switch v {
	case game.Snek:
		m.special[tcell.KeyUp] = input.KeyUp
		m.special[tcell.KeyDown] = input.KeyDown
		m.special[tcell.KeyLeft] = input.KeyLeft
		m.special[tcell.KeyRight] = input.KeyRight
		m.runes['w'] = input.KeyUp
		m.runes['s'] = input.KeyDown
		m.runes['a'] = input.KeyLeft
		m.runes['d'] = input.KeyRight
		m.runes['m'] = input.KeyGrow
	case game.Sandbox:
		m.special[tcell.KeyUp] = input.KeyThrust
		m.special[tcell.KeyDown] = input.KeyBrake
		m.special[tcell.KeyLeft] = input.KeyYawLeft
		m.special[tcell.KeyRight] = input.KeyYawRight
		m.runes['w'] = input.KeyThrust
		m.runes['s'] = input.KeyBrake
		m.runes['a'] = input.KeyYawLeft
		m.runes['d'] = input.KeyYawRight
		m.runes['j'] = input.KeyRollLeft
		m.runes['k'] = input.KeyRollRight
		m.runes[' '] = input.KeyFire
	}
	return m
}

// Lookup maps a key event's code and rune. Letters are case-insensitive.
func (m Keymap) Lookup(key tcell.Key, r rune) (input.Key, bool) {
	if key == tcell.KeyRune {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		k, ok := m.runes[r]
		return k, ok
	}
	k, ok := m.special[key]
	return k, ok
}

// holdTracker fakes key-up events. Terminals only report presses, repeated
// while a key is held; a key counts as held until no repeat has arrived for
// the hold window.
type holdTracker struct {
	window time.Duration
	seen   map[input.Key]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{window: window, seen: make(map[input.Key]time.Time, 8)}
}

// press records k at now. Only the first press of a hold reaches s as a new
// key-down; repeats just extend the hold.
func (h *holdTracker) press(s *input.State, k input.Key, now time.Time) {
	if _, held := h.seen[k]; !held {
		s.Press(k)
	}
	h.seen[k] = now
}

// expire releases every key whose last repeat is older than the window.
func (h *holdTracker) expire(s *input.State, now time.Time) {
	for k, t := range h.seen {
		if now.Sub(t) > h.window {
			s.Release(k)
			delete(h.seen, k)
		}
	}
}
