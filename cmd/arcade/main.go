package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/arcade/internal/asset"
	"github.com/l1jgo/arcade/internal/audio"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/game"
	"github.com/l1jgo/arcade/internal/scripting"
	"github.com/l1jgo/arcade/internal/system"
	"github.com/l1jgo/arcade/internal/term"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/arcade.toml"
	if p := os.Getenv("ARCADE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	variant := game.Snek
	if len(os.Args) > 1 {
		if variant, err = game.ParseVariant(os.Args[1]); err != nil {
			return err
		}
	}

	// 2. Init logger; the terminal owns stdout, so logs go to a file
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	deps := game.Deps{
		Log:  log,
		Rand: rand.New(rand.NewSource(seed)),
		Cues: audio.Nop{},
	}

	// 3. Difficulty scripts
	if cfg.Scripting.Enabled {
		lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer lua.Close()
		deps.Lua = lua
	}

	// 4. Model manifest
	if variant == game.Sandbox {
		cat, err := asset.LoadCatalog(cfg.Assets.Manifest)
		if err != nil {
			return fmt.Errorf("assets: %w", err)
		}
		log.Info("model catalog loaded", zap.Int("models", cat.Count()))
		deps.Catalog = cat
	}

	// 5. Audio is optional; a machine without a sound device still plays
	if cfg.Audio.Enabled {
		player, err := audio.NewPlayer(cfg.Audio.SampleRate, log)
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer player.Close()
			deps.Cues = player
		}
	}

	// 6. Assemble the game
	g, err := game.New(variant, cfg, deps)
	if err != nil {
		return fmt.Errorf("assemble %s: %w", variant, err)
	}

	// 7. Terminal front end
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("game starting",
		zap.String("game", string(variant)),
		zap.Int64("seed", seed),
		zap.Int("fps", cfg.Frontend.FPS),
	)
	if err := term.NewApp(screen, g, cfg.Frontend, log).Run(ctx); err != nil {
		return fmt.Errorf("frontend: %w", err)
	}

	st := g.Status()
	log.Info("game ended",
		zap.Stringer("state", st.State),
		zap.Int("score", st.Score),
		zap.Uint64("steps", g.Clock.Steps()),
	)
	fmt.Printf("%s: score %d\n", variant, st.Score)
	return nil
}

// Compile-time check that both cue sinks satisfy the systems' interface.
var (
	_ system.Cuer = audio.Nop{}
	_ system.Cuer = (*audio.Player)(nil)
)

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
