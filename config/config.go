// Package config provides configuration loading and validation for the arena.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Clock     ClockConfig     `yaml:"clock"`
	Input     InputConfig     `yaml:"input"`
	Player    PlayerConfig    `yaml:"player"`
	Small     FishConfig      `yaml:"small"`
	Enemy     FishConfig      `yaml:"enemy"`
	Food      FoodConfig      `yaml:"food"`
	Bubbles   BubbleConfig    `yaml:"bubbles"`
	Wander    WanderConfig    `yaml:"wander"`
	Growth    GrowthConfig    `yaml:"growth"`
	Score     ScoreConfig     `yaml:"score"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds arena dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
}

// PhysicsConfig holds motion scaling.
type PhysicsConfig struct {
	FrameScale float64 `yaml:"frame_scale"` // speeds are expressed per 1/FrameScale s
}

// ClockConfig holds loop driver timing.
type ClockConfig struct {
	MaxDelta float64 `yaml:"max_delta"` // clamp on dt after a stall, seconds (0 = no clamp)
}

// InputConfig holds steering input parameters.
type InputConfig struct {
	DeadZone      float64 `yaml:"dead_zone"`      // hold position when closer than this to the target
	JoystickReach float64 `yaml:"joystick_reach"` // direction input targets player + dir*reach
}

// SpeedCurve maps size to speed: max(Floor, Base - (size-Pivot)/Divisor).
type SpeedCurve struct {
	Base    float64 `yaml:"base"`
	Pivot   float64 `yaml:"pivot"`
	Divisor float64 `yaml:"divisor"`
	Floor   float64 `yaml:"floor"`
}

// SpeedFor returns the speed an entity of the given size moves at.
func (c SpeedCurve) SpeedFor(size float64) float64 {
	return math.Max(c.Floor, c.Base-(size-c.Pivot)/c.Divisor)
}

// Range is an inclusive-exclusive uniform sampling interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PlayerConfig holds the player's reset values.
type PlayerConfig struct {
	Size   float64    `yaml:"size"`
	Speed  float64    `yaml:"speed"`
	Health float64    `yaml:"health"`
	Curve  SpeedCurve `yaml:"speed_curve"`
}

// FishConfig holds one roaming pool's parameters.
type FishConfig struct {
	Initial       int        `yaml:"initial"`
	Cap           int        `yaml:"cap"`
	SpawnInterval float64    `yaml:"spawn_interval"` // seconds between spawns
	Size          Range      `yaml:"size"`
	Speed         Range      `yaml:"speed"`
	Health        float64    `yaml:"health"`
	Curve         SpeedCurve `yaml:"speed_curve"`
}

// FoodConfig holds food pool parameters.
type FoodConfig struct {
	Initial       int     `yaml:"initial"`
	Cap           int     `yaml:"cap"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Batch         int     `yaml:"batch"` // items per spawn
	Size          float64 `yaml:"size"`
}

// BubbleConfig holds decorative bubble parameters.
type BubbleConfig struct {
	Initial     int     `yaml:"initial"`
	SpawnChance float64 `yaml:"spawn_chance"` // probability per tick
	Size        Range   `yaml:"size"`
	Rise        Range   `yaml:"rise"`
	Depth       float64 `yaml:"depth"`         // spawn up to this far below the bottom edge
	WobbleAmp   float64 `yaml:"wobble_amp"`    // horizontal drift per tick
	WobblePitch float64 `yaml:"wobble_period"` // vertical distance per wobble radian
}

// WanderConfig holds roaming heading perturbation.
type WanderConfig struct {
	Cooldown   float64 `yaml:"cooldown"`     // seconds between heading changes
	MaxTurnDeg float64 `yaml:"max_turn_deg"` // perturbation drawn from [-MaxTurnDeg, +MaxTurnDeg]
}

// GrowthConfig holds size gained per meal.
type GrowthConfig struct {
	PlayerEatsFish float64 `yaml:"player_eats_fish"`
	PlayerEatsFood float64 `yaml:"player_eats_food"`
	FishEatsFish   float64 `yaml:"fish_eats_fish"`
	FishEatsFood   float64 `yaml:"fish_eats_food"`
}

// ScoreConfig holds score gained per meal.
type ScoreConfig struct {
	Fish int `yaml:"fish"`
	Food int `yaml:"food"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64   `yaml:"stats_window"` // simulated seconds per window
	BookmarkHistorySize int       `yaml:"bookmark_history_size"`
	PerfCollectorWindow int       `yaml:"perf_collector_window"`
	LeaderboardSize     int       `yaml:"leaderboard_size"`
	SizeMilestones      []float64 `yaml:"size_milestones"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW, WorldH float64
	MaxTurnRad     float64
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// SetWorldSize overrides the arena dimensions and recomputes derived values.
func (c *Config) SetWorldSize(w, h float64) {
	c.World.Width = w
	c.World.Height = h
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW == 0 {
		c.Derived.WorldW = float64(c.Screen.Width)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH == 0 {
		c.Derived.WorldH = float64(c.Screen.Height)
	}
	c.Derived.MaxTurnRad = c.Wander.MaxTurnDeg * math.Pi / 180
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	w, h := c.Derived.WorldW, c.Derived.WorldH
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: world bounds %vx%v", ErrInvalid, w, h)
	}
	if c.Physics.FrameScale <= 0 {
		return fmt.Errorf("%w: physics.frame_scale must be positive", ErrInvalid)
	}
	if c.Clock.MaxDelta < 0 {
		return fmt.Errorf("%w: clock.max_delta must not be negative", ErrInvalid)
	}
	if c.Player.Size <= 0 || c.Player.Speed <= 0 {
		return fmt.Errorf("%w: player size and speed must be positive", ErrInvalid)
	}
	if err := c.Player.Curve.validate("player"); err != nil {
		return err
	}
	if err := c.Small.validate("small"); err != nil {
		return err
	}
	if err := c.Enemy.validate("enemy"); err != nil {
		return err
	}
	if c.Food.Cap < 0 || c.Food.Initial < 0 || c.Food.Batch < 0 {
		return fmt.Errorf("%w: food counts must not be negative", ErrInvalid)
	}
	if c.Food.SpawnInterval <= 0 || c.Food.Size <= 0 {
		return fmt.Errorf("%w: food spawn_interval and size must be positive", ErrInvalid)
	}
	if c.Bubbles.Initial < 0 || c.Bubbles.SpawnChance < 0 || c.Bubbles.SpawnChance > 1 {
		return fmt.Errorf("%w: bubbles.spawn_chance must be in [0,1]", ErrInvalid)
	}
	if err := c.Bubbles.Size.validate("bubbles.size"); err != nil {
		return err
	}
	if err := c.Bubbles.Rise.validate("bubbles.rise"); err != nil {
		return err
	}
	if c.Wander.Cooldown <= 0 {
		return fmt.Errorf("%w: wander.cooldown must be positive", ErrInvalid)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("%w: telemetry.stats_window must be positive", ErrInvalid)
	}
	return nil
}

func (f FishConfig) validate(name string) error {
	if f.Initial < 0 || f.Cap < 0 {
		return fmt.Errorf("%w: %s counts must not be negative", ErrInvalid, name)
	}
	if f.SpawnInterval <= 0 {
		return fmt.Errorf("%w: %s.spawn_interval must be positive", ErrInvalid, name)
	}
	if err := f.Size.validate(name + ".size"); err != nil {
		return err
	}
	if err := f.Speed.validate(name + ".speed"); err != nil {
		return err
	}
	return f.Curve.validate(name)
}

func (r Range) validate(name string) error {
	if r.Min <= 0 || r.Max < r.Min {
		return fmt.Errorf("%w: %s range [%v,%v]", ErrInvalid, name, r.Min, r.Max)
	}
	return nil
}

func (c SpeedCurve) validate(name string) error {
	if c.Divisor <= 0 || c.Floor <= 0 {
		return fmt.Errorf("%w: %s.speed_curve divisor and floor must be positive", ErrInvalid, name)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
