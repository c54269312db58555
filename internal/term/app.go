// Package term runs a game in a terminal with tcell: keys in, cells out.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/game"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// App owns the screen for the life of one game.
type App struct {
	screen tcell.Screen
	game   *game.Game
	keys   Keymap
	hold   *holdTracker
	render *Renderer
	frame  time.Duration
	log    *zap.Logger
}

// NewApp binds an initialised screen to g. Run finalises the screen.
func NewApp(screen tcell.Screen, g *game.Game, cfg config.FrontendConfig, log *zap.Logger) *App {
	return &App{
		screen: screen,
		game:   g,
		keys:   KeymapFor(g.Variant),
		hold:   newHoldTracker(cfg.HoldWindow.Duration),
		render: NewRenderer(NewHUD(language.English)),
		frame:  time.Second / time.Duration(cfg.FPS),
		log:    log,
	}
}

// Run drives frames until the player quits or ctx ends. The screen is
// finalised on every exit path, a panic included, so the terminal is usable
// when the panic prints.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			a.log.Info("frontend stopped", zap.Error(ctx.Err()))
			return nil
		case ev := <-events:
			a.handle(ev, time.Now())
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			a.hold.expire(a.game.Input, now)
			a.game.Frame(elapsed)
			if a.game.Quit() {
				a.log.Info("quit requested", zap.Uint64("frames", a.game.Sched.Frames()))
				return nil
			}
			a.render.Draw(a.screen, a.game)
			a.screen.Show()
		}
	}
}

func (a *App) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k, ok := a.keys.Lookup(ev.Key(), ev.Rune()); ok {
			a.hold.press(a.game.Input, k, now)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
}
