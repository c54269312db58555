package term

import (
	"github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/game"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUD formats the status line.
type HUD struct {
	p *message.Printer
}

func NewHUD(tag language.Tag) *HUD {
	return &HUD{p: message.NewPrinter(tag)}
}

// Line returns the one-line summary of st.
func (h *HUD) Line(st game.Status) string {
	label := "length"
	if st.Variant == game.Sandbox {
		label = "hits"
	}
	switch {
	case st.State == system.GameOver && st.Final:
		return h.p.Sprintf("GAME OVER  final %s %d  (q to quit)", label, st.Score)
	case st.State == system.GameOver:
		return h.p.Sprintf("GAME OVER  (q to quit)")
	case st.State == system.Paused:
		return h.p.Sprintf("PAUSED  %s %d  (p to resume)", label, st.Score)
	}
	return h.p.Sprintf("%s  %s %d  step %dms  entities %d",
		st.Variant, label, st.Score, st.Step.Milliseconds(), st.Entities)
}
