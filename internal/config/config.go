package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

const (
	DefaultDimensions = 2
	DefaultFPS        = 60
	DefaultIntegrator = "rk4"
	DefaultDt         = 1.0
	DefaultOrbitTrail = sim.DefaultOrbitLength
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Scene      string       `yaml:"scene"`
	Dimensions int          `yaml:"dimensions"`
	Sim        SimConfig    `yaml:"sim"`
	Driver     DriverConfig `yaml:"driver"`
	// Integrator and Dt select the fixed-step baseline of the compare
	// command.
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	OrbitTrail int          `yaml:"orbit_trail"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

type SimConfig struct {
	MaxEvolveTime float64 `yaml:"max_evolve_time"`
	// MaxStepSize is the old name of MaxEvolveTime and wins when set.
	MaxStepSize       *float64      `yaml:"max_step_size,omitempty"`
	MaxStepsPerEvolve int           `yaml:"max_steps_per_evolve"`
	MaxComputeTime    time.Duration `yaml:"max_compute_time"`
	Tolerance         float64       `yaml:"tolerance"`
	MaxRejections     int           `yaml:"max_rejections"`
}

type DriverConfig struct {
	Speed                float64       `yaml:"speed"`
	Paused               bool          `yaml:"paused"`
	MaxTimeBetweenFrames time.Duration `yaml:"max_time_between_frames"`
	FPS                  int           `yaml:"fps"`
}

// BodyConfig holds vectors as plain lists: [x, y] or [x, y, z].
type BodyConfig struct {
	ID       int       `yaml:"id"`
	Name     string    `yaml:"name,omitempty"`
	Position []float64 `yaml:"position"`
	Velocity []float64 `yaml:"velocity"`
	Mass     float64   `yaml:"mass"`
}

func DefaultConfig() *Config {
	opts := sim.DefaultOptions()
	dopts := sim.DefaultDriverOptions()
	cfg := &Config{
		Scene:      "orbit",
		Dimensions: DefaultDimensions,
		Sim: SimConfig{
			MaxEvolveTime:     opts.MaxEvolveTime,
			MaxStepsPerEvolve: opts.MaxStepsPerEvolve,
			MaxComputeTime:    opts.MaxComputeTime,
			Tolerance:         opts.ToleranceBase,
			MaxRejections:     opts.MaxRejections,
		},
		Driver: DriverConfig{
			Speed:                dopts.Speed,
			Paused:               dopts.Paused,
			MaxTimeBetweenFrames: dopts.MaxTimeBetweenFrames,
			FPS:                  DefaultFPS,
		},
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		OrbitTrail: DefaultOrbitTrail,
	}
	cfg.Bodies = earthMoon()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse overlays YAML data on the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) normalize() {
	if c.Sim.MaxStepSize != nil {
		c.Sim.MaxEvolveTime = *c.Sim.MaxStepSize
		c.Sim.MaxStepSize = nil
	}
	for i := range c.Bodies {
		if c.Bodies[i].ID == 0 {
			c.Bodies[i].ID = i + 1
		}
	}
}

func (c *Config) Validate() error {
	if c.Dimensions != 2 && c.Dimensions != 3 {
		return fmt.Errorf("%w: dimensions must be 2 or 3, got %d", ErrInvalidConfig, c.Dimensions)
	}
	if c.Driver.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.Driver.FPS)
	}
	if c.Driver.MaxTimeBetweenFrames <= 0 {
		return fmt.Errorf("%w: max time between frames must be positive, got %v", ErrInvalidConfig, c.Driver.MaxTimeBetweenFrames)
	}
	if math.IsNaN(c.Driver.Speed) || math.IsInf(c.Driver.Speed, 0) {
		return fmt.Errorf("%w: speed must be finite, got %g", ErrInvalidConfig, c.Driver.Speed)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if err := c.SimOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seen := make(map[int]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if seen[b.ID] {
			return fmt.Errorf("%w: body %d: duplicate id %d", ErrInvalidConfig, i, b.ID)
		}
		seen[b.ID] = true
		if !(b.Mass >= 0) || math.IsInf(b.Mass, 1) {
			return fmt.Errorf("%w: body %d: mass must be finite and non-negative, got %g", ErrInvalidConfig, b.ID, b.Mass)
		}
		if err := c.checkVector(b.Position); err != nil {
			return fmt.Errorf("%w: body %d position: %w", ErrInvalidConfig, b.ID, err)
		}
		if err := c.checkVector(b.Velocity); err != nil {
			return fmt.Errorf("%w: body %d velocity: %w", ErrInvalidConfig, b.ID, err)
		}
	}
	return nil
}

func (c *Config) checkVector(v []float64) error {
	if len(v) > c.Dimensions {
		for _, extra := range v[c.Dimensions:] {
			if extra != 0 {
				return fmt.Errorf("%d components in a %d-dimensional scene", len(v), c.Dimensions)
			}
		}
	}
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("component %g is not finite", x)
		}
	}
	return nil
}

// SimOptions converts the sim section, with the logger and clock left to
// the caller.
func (c *Config) SimOptions() sim.Options {
	return sim.Options{
		MaxEvolveTime:     c.Sim.MaxEvolveTime,
		MaxStepsPerEvolve: c.Sim.MaxStepsPerEvolve,
		MaxComputeTime:    c.Sim.MaxComputeTime,
		ToleranceBase:     c.Sim.Tolerance,
		MaxRejections:     c.Sim.MaxRejections,
	}
}

func (c *Config) DriverOptions() sim.DriverOptions {
	return sim.DriverOptions{
		Speed:                c.Driver.Speed,
		Paused:               c.Driver.Paused,
		MaxTimeBetweenFrames: c.Driver.MaxTimeBetweenFrames,
	}
}

// UnlimitedBudget is set on the sim section by callers that do not run in
// real time.
func (c *Config) UnlimitedBudget() {
	c.Sim.MaxStepsPerEvolve = dynamo.UnlimitedSteps
	c.Sim.MaxComputeTime = dynamo.NoDeadline
}

// Names maps body IDs to display names, falling back to "#id".
func (c *Config) Names() map[int]string {
	names := make(map[int]string, len(c.Bodies))
	for _, b := range c.Bodies {
		if b.Name != "" {
			names[b.ID] = b.Name
		} else {
			names[b.ID] = fmt.Sprintf("#%d", b.ID)
		}
	}
	return names
}

// Bodies builds the scene bodies with vec turning [x, y, z] into a vector.
func Bodies[V vmath.Vector[V]](c *Config, vec func(x, y, z float64) V) []physics.Body[V] {
	bodies := make([]physics.Body[V], len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = physics.Body[V]{
			ID:       b.ID,
			Position: vec(component(b.Position, 0), component(b.Position, 1), component(b.Position, 2)),
			Velocity: vec(component(b.Velocity, 0), component(b.Velocity, 1), component(b.Velocity, 2)),
			Mass:     b.Mass,
		}
	}
	return bodies
}

func Vec2(x, y, _ float64) vmath.Vec2 { return vmath.V2(x, y) }
func Vec3(x, y, z float64) vmath.Vec3 { return vmath.V3(x, y, z) }

func component(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}
