package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/curbz/intrudergen/pkg/util"
)

// Environment variables read by FromEnv.
const (
	EnvConfigPath = "INTRUDERGEN_CONFIG"
	EnvSeed       = "INTRUDERGEN_SEED"
	EnvSuffix     = "INTRUDERGEN_SUFFIX"
)

// Stop policies.
const (
	StopFixedCount = "fixed_count"
	StopTimeBudget = "time_budget"
)

// Maneuver selection policies.
const (
	SelectUniform  = "uniform"
	SelectWeighted = "weighted"
)

// --- configuration structures ---
type Config struct {
	// Seed makes a run reproducible. Zero seeds from the clock.
	Seed      int64           `yaml:"seed"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
	Reference ReferenceConfig `yaml:"reference"`
	Initial   InitialConfig   `yaml:"initial_state"`
	Sequence  SequenceConfig  `yaml:"sequence"`
	Generator Generator       `yaml:"generator"`
}

type OutputConfig struct {
	// Suffix is appended to the input path. Empty rewrites in place.
	Suffix string `yaml:"suffix"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File enables a rotating JSON log next to the stderr output.
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
}

type ReferenceConfig struct {
	// DefaultAltitude is used when the parameter file has no altitude line.
	DefaultAltitude int `yaml:"default_altitude"`
}

type InitialConfig struct {
	OffsetMin         int     `yaml:"offset_min"`
	OffsetMax         int     `yaml:"offset_max"`
	AltitudeOffsetMin int     `yaml:"altitude_offset_min"`
	AltitudeOffsetMax int     `yaml:"altitude_offset_max"`
	HeadingMin        int     `yaml:"heading_min"`
	HeadingMax        int     `yaml:"heading_max"`
	HorizontalSpeed   float64 `yaml:"horizontal_speed"`
}

type SequenceConfig struct {
	Stop         string  `yaml:"stop"`
	Selection    string  `yaml:"selection"`
	StartTime    int     `yaml:"start_time"`
	NumManeuvers int     `yaml:"num_maneuvers"`
	LandingTime  Range   `yaml:"landing_time"`
	Weights      Weights `yaml:"weights"`
}

type Weights struct {
	Turn           int `yaml:"turn"`
	AltitudeChange int `yaml:"altitude_change"`
	Acceleration   int `yaml:"acceleration"`
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Generator bounds every maneuver draw.
type Generator struct {
	Cruise       CruiseConfig       `yaml:"cruise"`
	Turn         TurnConfig         `yaml:"turn"`
	Altitude     AltitudeConfig     `yaml:"altitude"`
	Acceleration AccelerationConfig `yaml:"acceleration"`
	Landing      LandingConfig      `yaml:"landing"`
}

type CruiseConfig struct {
	Speed Range `yaml:"speed"`
	// SpeedStep draws cruise speeds from a progression; 1 or less is a plain
	// integer range.
	SpeedStep int   `yaml:"speed_step"`
	Duration  Range `yaml:"duration"`
}

type TurnConfig struct {
	Angle Range `yaml:"angle"`
	Rate  Range `yaml:"rate"` // degrees per second
}

type AltitudeConfig struct {
	Min               int   `yaml:"min"`
	Max               int   `yaml:"max"`
	Delta             Range `yaml:"delta"`
	DeltaStep         int   `yaml:"delta_step"`
	ClimbRate         Range `yaml:"climb_rate"`
	DescentRate       Range `yaml:"descent_rate"`
	ClimbSpeedDelta   int   `yaml:"climb_speed_delta"`
	DescentSpeedDelta int   `yaml:"descent_speed_delta"`
}

type AccelerationConfig struct {
	Speed     Range `yaml:"speed"`
	SpeedStep int   `yaml:"speed_step"`
	Duration  Range `yaml:"duration"`
}

type LandingConfig struct {
	Speed       float64 `yaml:"speed"`
	DescentRate int     `yaml:"descent_rate"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Suffix: ".tmp"},
		Log:    LogConfig{Level: "info", MaxSizeMB: 8},
		Initial: InitialConfig{
			OffsetMin:         1500,
			OffsetMax:         5000,
			AltitudeOffsetMin: 500,
			AltitudeOffsetMax: 2000,
			HeadingMin:        0,
			HeadingMax:        360,
			HorizontalSpeed:   60,
		},
		Sequence: SequenceConfig{
			Stop:      StopFixedCount,
			Selection: SelectUniform,
			StartTime: 5,
			// 20 maneuvers is roughly 10 minutes of simulated flight
			NumManeuvers: 20,
			LandingTime:  Range{Min: 300, Max: 900},
			Weights:      Weights{Turn: 3, AltitudeChange: 2, Acceleration: 1},
		},
		Generator: Generator{
			Cruise: CruiseConfig{
				Speed:     Range{Min: 40, Max: 65},
				SpeedStep: 5,
				Duration:  Range{Min: 10, Max: 30},
			},
			Turn: TurnConfig{
				Angle: Range{Min: 0, Max: 90},
				Rate:  Range{Min: 1, Max: 5},
			},
			Altitude: AltitudeConfig{
				Min:               500,
				Max:               3000,
				Delta:             Range{Min: 100, Max: 1000},
				DeltaStep:         10,
				ClimbRate:         Range{Min: 5, Max: 10},
				DescentRate:       Range{Min: 5, Max: 15},
				ClimbSpeedDelta:   5,
				DescentSpeedDelta: 5,
			},
			Acceleration: AccelerationConfig{
				Speed:     Range{Min: 70, Max: 90},
				SpeedStep: 5,
				Duration:  Range{Min: 5, Max: 10},
			},
			Landing: LandingConfig{
				Speed:       40,
				DescentRate: 5,
			},
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := util.LoadConfigOver(path, Default())
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads .env if present, then the config named by
// INTRUDERGEN_CONFIG, then applies the seed and suffix overrides.
func FromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := Load(os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, err
	}

	if s, ok := os.LookupEnv(EnvSeed); ok && s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvSeed, s, err)
		}
		cfg.Seed = seed
	}
	if s, ok := os.LookupEnv(EnvSuffix); ok {
		cfg.Output.Suffix = s
	}

	return cfg, cfg.Validate()
}

func (r Range) validate(name string, floor int) error {
	if r.Min < floor {
		return fmt.Errorf("%s: min %d is below %d", name, r.Min, floor)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s: max %d is below min %d", name, r.Max, r.Min)
	}
	return nil
}

// Validate reports the first setting that would make generation misbehave.
func (c *Config) Validate() error {
	g := c.Generator
	checks := []struct {
		name  string
		r     Range
		floor int
	}{
		{"initial_state offset", Range{c.Initial.OffsetMin, c.Initial.OffsetMax}, 0},
		{"initial_state altitude_offset", Range{c.Initial.AltitudeOffsetMin, c.Initial.AltitudeOffsetMax}, 0},
		{"initial_state heading", Range{c.Initial.HeadingMin, c.Initial.HeadingMax}, 0},
		{"cruise speed", g.Cruise.Speed, 0},
		{"cruise duration", g.Cruise.Duration, 1},
		{"turn angle", g.Turn.Angle, 0},
		{"turn rate", g.Turn.Rate, 1},
		{"altitude bounds", Range{g.Altitude.Min, g.Altitude.Max}, 0},
		{"altitude delta", g.Altitude.Delta, 0},
		{"altitude climb_rate", g.Altitude.ClimbRate, 1},
		{"altitude descent_rate", g.Altitude.DescentRate, 1},
		{"acceleration speed", g.Acceleration.Speed, 0},
		{"acceleration duration", g.Acceleration.Duration, 1},
	}
	for _, chk := range checks {
		if err := chk.r.validate(chk.name, chk.floor); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	if c.Initial.HeadingMax > 360 {
		return fmt.Errorf("invalid config: initial_state heading max %d exceeds 360", c.Initial.HeadingMax)
	}
	if c.Initial.AltitudeOffsetMin < g.Altitude.Min || c.Initial.AltitudeOffsetMax > g.Altitude.Max {
		return fmt.Errorf("invalid config: initial altitude range [%d,%d] outside altitude bounds [%d,%d]",
			c.Initial.AltitudeOffsetMin, c.Initial.AltitudeOffsetMax, g.Altitude.Min, g.Altitude.Max)
	}
	if g.Altitude.ClimbSpeedDelta < 0 || g.Altitude.DescentSpeedDelta < 0 {
		return errors.New("invalid config: altitude speed deltas must not be negative")
	}
	if g.Landing.DescentRate < 1 {
		return fmt.Errorf("invalid config: landing descent_rate %d must be at least 1", g.Landing.DescentRate)
	}
	if c.Sequence.StartTime < 0 {
		return fmt.Errorf("invalid config: start_time %d is negative", c.Sequence.StartTime)
	}

	switch c.Sequence.Stop {
	case StopFixedCount:
		if c.Sequence.NumManeuvers < 1 {
			return fmt.Errorf("invalid config: num_maneuvers %d must be at least 1", c.Sequence.NumManeuvers)
		}
	case StopTimeBudget:
		if err := c.Sequence.LandingTime.validate("sequence landing_time", 0); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	default:
		return fmt.Errorf("invalid config: unknown stop policy %q", c.Sequence.Stop)
	}

	switch c.Sequence.Selection {
	case SelectUniform:
	case SelectWeighted:
		w := c.Sequence.Weights
		if w.Turn < 0 || w.AltitudeChange < 0 || w.Acceleration < 0 {
			return errors.New("invalid config: maneuver weights must not be negative")
		}
		if w.Turn+w.AltitudeChange+w.Acceleration == 0 {
			return errors.New("invalid config: at least one maneuver weight must be positive")
		}
	default:
		return fmt.Errorf("invalid config: unknown selection policy %q", c.Sequence.Selection)
	}

	return nil
}
