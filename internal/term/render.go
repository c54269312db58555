package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/l1jgo/arcade/internal/component"
	"github.com/l1jgo/arcade/internal/core/ecs"
	"github.com/l1jgo/arcade/internal/game"
)

// Canvas is the part of tcell.Screen the renderer draws on.
type Canvas interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// SandboxView is the half-width, in world units, of the top-down sandbox view.
const SandboxView float32 = 60

// Renderer draws a game's Transforms and Visuals as terminal cells. It reads
// the world and writes nothing back.
type Renderer struct {
	hud *HUD
}

func NewRenderer(hud *HUD) *Renderer {
	return &Renderer{hud: hud}
}

// Draw paints one frame: the world from row 1 down, the HUD on row 0.
func (r *Renderer) Draw(c Canvas, g *game.Game) {
	w, h := c.Size()
	clearCanvas(c, w, h)
	drawText(c, 0, 0, r.hud.Line(g.Status()), tcell.StyleDefault.Bold(true))

	switch g.Variant {
	case game.Snek:
		r.drawBoard(c, g)
	case game.Sandbox:
		r.drawSpace(c, g, w, h-1)
	}
}

// drawBoard draws the snake grid, two columns per cell, inside a frame.
func (r *Renderer) drawBoard(c Canvas, g *game.Game) {
	f := g.Field
	cols := int(f.Width / f.StepSize)
	rows := int(f.Height / f.StepSize)
	drawFrame(c, 0, 1, 2*cols+2, rows+2)

	hw, hh := f.HalfExtents()
	g.State.Visuals.Each(func(id ecs.EntityID, v *component.Visual) {
		t, ok := g.State.Transforms.Get(id)
		if !ok {
			return
		}
		col := int(math.Floor(float64((t.Position.X() + hw) / f.StepSize)))
		row := int(math.Floor(float64((hh - t.Position.Y()) / f.StepSize)))
		if col < 0 || col >= cols || row < 0 || row >= rows {
			return
		}
		glyph := v.Glyph
		if g.State.Fruits.Has(id) && t.Scale < 0.75 {
			glyph = '·'
		}
		style := colorStyle(v.Color)
		c.SetContent(1+2*col, 2+row, glyph, nil, style)
		c.SetContent(2+2*col, 2+row, ' ', nil, style)
	})
}

// drawSpace draws the sandbox from above: X to the right, Z down the screen,
// one row per two columns of world width.
func (r *Renderer) drawSpace(c Canvas, g *game.Game, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	sx := float32(w) / (2 * SandboxView)
	sz := sx / 2
	g.State.Visuals.Each(func(id ecs.EntityID, v *component.Visual) {
		t, ok := g.State.Transforms.Get(id)
		if !ok {
			return
		}
		col := int(float32(w)/2 + t.Position.X()*sx)
		row := 1 + int(float32(h)/2+t.Position.Z()*sz)
		if col < 0 || col >= w || row < 1 || row > h {
			return
		}
		glyph := v.Glyph
		if g.State.Ships.Has(id) {
			glyph = heading(t.Forward())
		}
		c.SetContent(col, row, glyph, nil, colorStyle(v.Color))
	})
}

// heading picks an arrow for a direction on the XZ plane, -Z up the screen.
func heading(fwd mgl32.Vec3) rune {
	x, z := fwd.X(), fwd.Z()
	if abs(x) > abs(z) {
		if x > 0 {
			return '>'
		}
		return '<'
	}
	if z > 0 {
		return 'v'
	}
	return '^'
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func colorStyle(rgb uint32) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		int32(rgb>>16&0xff),
		int32(rgb>>8&0xff),
		int32(rgb&0xff),
	))
}

func clearCanvas(c Canvas, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
}

func drawText(c Canvas, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawFrame(c Canvas, x, y, w, h int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i := 1; i < w-1; i++ {
		c.SetContent(x+i, y, '─', nil, style)
		c.SetContent(x+i, y+h-1, '─', nil, style)
	}
	for j := 1; j < h-1; j++ {
		c.SetContent(x, y+j, '│', nil, style)
		c.SetContent(x+w-1, y+j, '│', nil, style)
	}
	c.SetContent(x, y, '┌', nil, style)
	c.SetContent(x+w-1, y, '┐', nil, style)
	c.SetContent(x, y+h-1, '└', nil, style)
	c.SetContent(x+w-1, y+h-1, '┘', nil, style)
}
