package term

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/game"
	"github.com/l1jgo/arcade/internal/input"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// MockCanvas records the last rune written to each cell.
type MockCanvas struct {
	w, h  int
	cells map[[2]int]rune
}

func newMockCanvas(w, h int) *MockCanvas {
	return &MockCanvas{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (m *MockCanvas) Size() (int, int) { return m.w, m.h }
func (m *MockCanvas) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	m.cells[[2]int{x, y}] = r
}

func (m *MockCanvas) row(y int) string {
	var b strings.Builder
	for x := 0; x < m.w; x++ {
		if r, ok := m.cells[[2]int{x, y}]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func TestKeymapPerVariant(t *testing.T) {
	tests := []struct {
		name    string
		variant game.Variant
		key     tcell.Key
		r       rune
		want    input.Key
	}{
		{"snek arrow", game.Snek, tcell.KeyUp, 0, input.KeyUp},
		{"snek letter", game.Snek, tcell.KeyRune, 'a', input.KeyLeft},
		{"snek upper case", game.Snek, tcell.KeyRune, 'D', input.KeyRight},
		{"snek grow", game.Snek, tcell.KeyRune, 'm', input.KeyGrow},
		{"sandbox thrust", game.Sandbox, tcell.KeyRune, 'w', input.KeyThrust},
		{"sandbox roll", game.Sandbox, tcell.KeyRune, 'k', input.KeyRollRight},
		{"sandbox fire", game.Sandbox, tcell.KeyRune, ' ', input.KeyFire},
		{"escape", game.Sandbox, tcell.KeyEscape, 0, input.KeyQuit},
		{"pause", game.Snek, tcell.KeyRune, 'p', input.KeyPause},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeymapFor(tt.variant).Lookup(tt.key, tt.r)
			if !ok || got != tt.want {
				t.Errorf("Lookup = %s, %v; want %s", got, ok, tt.want)
			}
		})
	}
	if _, ok := KeymapFor(game.Snek).Lookup(tcell.KeyRune, ' '); ok {
		t.Error("space bound in snek")
	}
}

func TestHoldTrackerReleasesAfterWindow(t *testing.T) {
	s := input.NewState()
	h := newHoldTracker(150 * time.Millisecond)
	t0 := time.Unix(0, 0)

	h.press(s, input.KeyThrust, t0)
	s.EndFrame()
	h.press(s, input.KeyThrust, t0.Add(100*time.Millisecond)) // key repeat
	if s.JustPressed(input.KeyThrust) {
		t.Error("repeat reported as a new press")
	}

	h.expire(s, t0.Add(200*time.Millisecond))
	if !s.Pressed(input.KeyThrust) {
		t.Fatal("released while repeats still arriving")
	}
	h.expire(s, t0.Add(300*time.Millisecond))
	if s.Pressed(input.KeyThrust) {
		t.Error("still held after the window")
	}

	h.press(s, input.KeyThrust, t0.Add(time.Second))
	if !s.JustPressed(input.KeyThrust) {
		t.Error("fresh press after release not reported")
	}
}

func TestHUDLine(t *testing.T) {
	hud := NewHUD(language.English)
	tests := []struct {
		st   game.Status
		want string
	}{
		{
			game.Status{Variant: game.Snek, State: system.Running, Score: 1234, Step: 150 * time.Millisecond, Entities: 101},
			"snek  length 1,234  step 150ms  entities 101",
		},
		{
			game.Status{Variant: game.Sandbox, State: system.Paused, Score: 3},
			"PAUSED  hits 3  (p to resume)",
		},
		{
			game.Status{Variant: game.Snek, State: system.GameOver, Score: 7, Final: true},
			"GAME OVER  final length 7  (q to quit)",
		},
	}
	for _, tt := range tests {
		if got := hud.Line(tt.st); got != tt.want {
			t.Errorf("Line = %q, want %q", got, tt.want)
		}
	}
}

func TestRendererDrawsSnekBoard(t *testing.T) {
	cfg := config.Defaults()
	cfg.Snek.InitialFruit = 0
	g := game.NewSnek(cfg, game.Deps{Log: zap.NewNop(), Rand: rand.New(rand.NewSource(1))})
	g.State.SpawnFruit(mgl32.Vec3{-390, 290, 0}, 12, config.ColorTomato, 0.5)

	c := newMockCanvas(90, 40)
	NewRenderer(NewHUD(language.English)).Draw(c, g)

	if !strings.HasPrefix(c.row(0), "snek  length 1") {
		t.Errorf("hud row = %q", c.row(0))
	}
	if c.cells[[2]int{0, 1}] != '┌' || c.cells[[2]int{81, 32}] != '┘' {
		t.Error("board frame misplaced")
	}
	// Head at (10,10): column 20, row 14 of a 40x30 grid.
	if got := c.cells[[2]int{1 + 2*20, 2 + 14}]; got != '@' {
		t.Errorf("head cell = %q, want '@'", got)
	}
	// Fruit in the top-left cell, pulse phase 0.5 keeps it large.
	if got := c.cells[[2]int{1, 2}]; got != '*' {
		t.Errorf("fruit cell = %q, want '*'", got)
	}
}

func TestRendererDrawsShipHeading(t *testing.T) {
	g, err := game.NewSandbox(config.Defaults(), game.Deps{Log: zap.NewNop(), Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	c := newMockCanvas(120, 41)
	NewRenderer(NewHUD(language.English)).Draw(c, g)

	if got := c.cells[[2]int{60, 21}]; got != '^' {
		t.Errorf("ship cell = %q, want '^'", got)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		fwd  mgl32.Vec3
		want rune
	}{
		{mgl32.Vec3{0, 0, -1}, '^'},
		{mgl32.Vec3{0, 0, 1}, 'v'},
		{mgl32.Vec3{1, 0, 0.2}, '>'},
		{mgl32.Vec3{-1, 0, 0}, '<'},
	}
	for _, tt := range tests {
		if got := heading(tt.fwd); got != tt.want {
			t.Errorf("heading(%v) = %q, want %q", tt.fwd, got, tt.want)
		}
	}
}
