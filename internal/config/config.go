package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim       SimConfig       `toml:"sim"`
	Snek      SnekConfig      `toml:"snek"`
	Sandbox   SandboxConfig   `toml:"sandbox"`
	Assets    AssetsConfig    `toml:"assets"`
	Scripting ScriptingConfig `toml:"scripting"`
	Logging   LoggingConfig   `toml:"logging"`
	Audio     AudioConfig     `toml:"audio"`
	Frontend  FrontendConfig  `toml:"frontend"`
}

type SimConfig struct {
	Step    Duration `toml:"step"`     // initial fixed step
	MinStep Duration `toml:"min_step"` // floor for speed-ups
	Seed    int64    `toml:"seed"`     // 0 = seed from the clock
}

type SnekConfig struct {
	StepSize      float32 `toml:"step_size"`     // grid cell edge, world units
	Padding       float32 `toml:"padding"`       // gap between drawn cells
	ScreenWidth   float32 `toml:"screen_width"`  // playfield extent, world units
	ScreenHeight  float32 `toml:"screen_height"` // playfield extent, world units
	InitialFruit  int     `toml:"initial_fruit"`
	Speedup       float64 `toml:"speedup"`     // step multiplier per pickup, < 1
	SafetySkip    int     `toml:"safety_skip"` // segments next to the head exempt from self-collision
	RespawnFruit  bool    `toml:"respawn_fruit"`
	ManualGrowKey bool    `toml:"manual_grow_key"`
}

type SandboxConfig struct {
	Step            Duration `toml:"step"` // fixed step for collision and cleanup
	SpawnInterval   Duration `toml:"spawn_interval"`
	VelocityScalar  float32  `toml:"velocity_scalar"`
	AccelScalar     float32  `toml:"acceleration_scalar"`
	SpawnRangeX     float32  `toml:"spawn_range_x"` // half-width of the spawn box
	SpawnRangeY     float32  `toml:"spawn_range_y"`
	SpawnRangeZ     float32  `toml:"spawn_range_z"`
	DespawnDistance float32  `toml:"despawn_distance"`
	ShipSpeed       float32  `toml:"ship_speed"`
	RotationSpeed   float32  `toml:"rotation_speed"` // radians/s
	RollSpeed       float32  `toml:"roll_speed"`     // radians/s
	MissileSpeed    float32  `toml:"missile_speed"`
	MissileAccel    float32  `toml:"missile_acceleration"`
	MissileForward  float32  `toml:"missile_forward"` // spawn offset ahead of the ship
	FireCooldown    Duration `toml:"fire_cooldown"`
}

type AssetsConfig struct {
	Manifest string `toml:"manifest"`
}

type ScriptingConfig struct {
	Dir     string `toml:"dir"`
	Enabled bool   `toml:"enabled"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

type AudioConfig struct {
	Enabled    bool `toml:"enabled"`
	SampleRate int  `toml:"sample_rate"`
}

type FrontendConfig struct {
	FPS        int      `toml:"fps"`
	HoldWindow Duration `toml:"hold_window"` // how long a key-repeat keeps a key "held"
}

// Duration decodes TOML strings like "150ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Sim.Step.Duration <= 0:
		return fmt.Errorf("sim.step must be positive, got %s", c.Sim.Step.Duration)
	case c.Sim.MinStep.Duration <= 0 || c.Sim.MinStep.Duration > c.Sim.Step.Duration:
		return fmt.Errorf("sim.min_step must be in (0, sim.step], got %s", c.Sim.MinStep.Duration)
	case c.Snek.StepSize <= 0:
		return fmt.Errorf("snek.step_size must be positive")
	case c.Snek.Padding < 0 || c.Snek.Padding >= c.Snek.StepSize:
		return fmt.Errorf("snek.padding must be in [0, step_size), got %v", c.Snek.Padding)
	case FruitPadding >= c.Snek.StepSize:
		return fmt.Errorf("snek.step_size must exceed the fruit padding %v", FruitPadding)
	case c.Snek.ScreenWidth < 2*c.Snek.StepSize || c.Snek.ScreenHeight < 2*c.Snek.StepSize:
		return fmt.Errorf("snek playfield must span at least two cells each way")
	case c.Snek.Speedup <= 0 || c.Snek.Speedup > 1:
		return fmt.Errorf("snek.speedup must be in (0, 1], got %v", c.Snek.Speedup)
	case c.Snek.SafetySkip < 0:
		return fmt.Errorf("snek.safety_skip must not be negative")
	case c.Sandbox.Step.Duration <= 0:
		return fmt.Errorf("sandbox.step must be positive")
	case c.Sandbox.SpawnInterval.Duration <= 0:
		return fmt.Errorf("sandbox.spawn_interval must be positive")
	case c.Frontend.FPS <= 0:
		return fmt.Errorf("frontend.fps must be positive")
	}
	return nil
}

// Defaults returns the built-in configuration. Every field has a usable value
// so a config file only needs to name what it changes.
func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Step:    Duration{StartingStep},
			MinStep: Duration{MinStep},
		},
		Snek: SnekConfig{
			StepSize:      StepSize,
			Padding:       Padding,
			ScreenWidth:   ScreenWidth,
			ScreenHeight:  ScreenHeight,
			InitialFruit:  InitialFruit,
			Speedup:       GrowthSpeedup,
			SafetySkip:    SafetySkip,
			RespawnFruit:  true,
			ManualGrowKey: true,
		},
		Sandbox: SandboxConfig{
			Step:            Duration{20 * time.Millisecond},
			SpawnInterval:   Duration{AsteroidSpawnInterval},
			VelocityScalar:  AsteroidVelocityScalar,
			AccelScalar:     AsteroidAccelScalar,
			SpawnRangeX:     50,
			SpawnRangeY:     5,
			SpawnRangeZ:     50,
			DespawnDistance: 100,
			ShipSpeed:       ShipSpeed,
			RotationSpeed:   ShipRotationSpeed,
			RollSpeed:       ShipRollSpeed,
			MissileSpeed:    MissileSpeed,
			MissileAccel:    MissileAcceleration,
			MissileForward:  MissileForward,
			FireCooldown:    Duration{100 * time.Millisecond},
		},
		Assets: AssetsConfig{
			Manifest: "assets/models.yaml",
		},
		Scripting: ScriptingConfig{
			Dir:     "scripts",
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "arcade.log",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Frontend: FrontendConfig{
			FPS:        60,
			HoldWindow: Duration{500 * time.Millisecond},
		},
	}
}
