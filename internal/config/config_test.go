package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
	if cfg.Dimensions != 2 {
		t.Errorf("expected 2 dimensions, got %d", cfg.Dimensions)
	}
	if !math.IsInf(cfg.Sim.MaxEvolveTime, 1) {
		t.Errorf("expected unlimited evolve time, got %g", cfg.Sim.MaxEvolveTime)
	}
	if cfg.Sim.MaxStepsPerEvolve != 1000 {
		t.Errorf("expected 1000 steps per evolve, got %d", cfg.Sim.MaxStepsPerEvolve)
	}
	if cfg.Sim.MaxComputeTime != time.Second/120 {
		t.Errorf("expected 1/120 s compute time, got %v", cfg.Sim.MaxComputeTime)
	}
	if cfg.Sim.Tolerance != 1e-8 {
		t.Errorf("expected tolerance 1e-8, got %g", cfg.Sim.Tolerance)
	}
	if cfg.Driver.Speed != 1 || cfg.Driver.Paused {
		t.Errorf("expected speed 1 and running, got %g paused=%v", cfg.Driver.Speed, cfg.Driver.Paused)
	}
	if cfg.Driver.MaxTimeBetweenFrames != 100*time.Millisecond {
		t.Errorf("expected 100ms between frames, got %v", cfg.Driver.MaxTimeBetweenFrames)
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("expected the earth-moon scene, got %d bodies", len(cfg.Bodies))
	}
}

func TestParseOverlay(t *testing.T) {
	data := []byte(`
dimensions: 3
sim:
  max_compute_time: 5ms
  tolerance: 1e-6
driver:
  speed: -2.5
bodies:
  - position: [1, 2, 3]
    velocity: [0, 0, 1]
    mass: 10
  - id: 9
    position: [4, 5]
    mass: 0
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Dimensions != 3 {
		t.Errorf("dimensions = %d, want 3", cfg.Dimensions)
	}
	if cfg.Sim.MaxComputeTime != 5*time.Millisecond {
		t.Errorf("max compute time = %v, want 5ms", cfg.Sim.MaxComputeTime)
	}
	if cfg.Sim.Tolerance != 1e-6 {
		t.Errorf("tolerance = %g, want 1e-6", cfg.Sim.Tolerance)
	}
	if cfg.Sim.MaxStepsPerEvolve != 1000 {
		t.Errorf("unset field lost its default: %d", cfg.Sim.MaxStepsPerEvolve)
	}
	if cfg.Driver.Speed != -2.5 {
		t.Errorf("speed = %g, want -2.5", cfg.Driver.Speed)
	}
	if cfg.Driver.FPS != DefaultFPS {
		t.Errorf("fps = %d, want %d", cfg.Driver.FPS, DefaultFPS)
	}
	if len(cfg.Bodies) != 2 {
		t.Fatalf("got %d bodies, want 2", len(cfg.Bodies))
	}
	if cfg.Bodies[0].ID != 1 || cfg.Bodies[1].ID != 9 {
		t.Errorf("ids = %d, %d; want 1, 9", cfg.Bodies[0].ID, cfg.Bodies[1].ID)
	}
}

func TestParseEvolveTime(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want float64
	}{
		{"default", ``, math.Inf(1)},
		{"infinite", "sim:\n  max_evolve_time: .inf\n", math.Inf(1)},
		{"finite", "sim:\n  max_evolve_time: 30\n", 30},
		{"legacy name", "sim:\n  max_step_size: 12\n", 12},
		{"legacy name wins", "sim:\n  max_evolve_time: 30\n  max_step_size: 12\n", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Sim.MaxEvolveTime != tt.want {
				t.Errorf("max evolve time = %g, want %g", cfg.Sim.MaxEvolveTime, tt.want)
			}
			if cfg.Sim.MaxStepSize != nil {
				t.Error("legacy field should be folded into max_evolve_time")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"dimensions", func(c *Config) { c.Dimensions = 4 }},
		{"fps", func(c *Config) { c.Driver.FPS = 0 }},
		{"frame gap", func(c *Config) { c.Driver.MaxTimeBetweenFrames = 0 }},
		{"speed", func(c *Config) { c.Driver.Speed = math.NaN() }},
		{"dt", func(c *Config) { c.Dt = 0 }},
		{"tolerance", func(c *Config) { c.Sim.Tolerance = -1 }},
		{"negative mass", func(c *Config) { c.Bodies[0].Mass = -1 }},
		{"duplicate id", func(c *Config) { c.Bodies[1].ID = c.Bodies[0].ID }},
		{"z in 2d", func(c *Config) { c.Bodies[0].Position = []float64{0, 0, 1} }},
		{"non-finite velocity", func(c *Config) { c.Bodies[1].Velocity = []float64{math.Inf(1), 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := GetPreset("inner-solar")
	cfg.Driver.Paused = true
	cfg.Sim.MaxComputeTime = 20 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Scene != "inner-solar" || !loaded.Driver.Paused {
		t.Errorf("loaded scene %q paused=%v", loaded.Scene, loaded.Driver.Paused)
	}
	if loaded.Sim.MaxComputeTime != 20*time.Millisecond {
		t.Errorf("max compute time = %v", loaded.Sim.MaxComputeTime)
	}
	if !math.IsInf(loaded.Sim.MaxEvolveTime, 1) {
		t.Errorf("max evolve time = %g, want +Inf", loaded.Sim.MaxEvolveTime)
	}
	if len(loaded.Bodies) != len(cfg.Bodies) {
		t.Fatalf("got %d bodies, want %d", len(loaded.Bodies), len(cfg.Bodies))
	}
	for i := range cfg.Bodies {
		if loaded.Bodies[i].Name != cfg.Bodies[i].Name || loaded.Bodies[i].Mass != cfg.Bodies[i].Mass {
			t.Errorf("body %d = %+v, want %+v", i, loaded.Bodies[i], cfg.Bodies[i])
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestBodies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodyConfig{
		{ID: 4, Position: []float64{1, 2, 3}, Velocity: []float64{4}, Mass: 5},
	}

	flat := Bodies(cfg, Vec2)
	if flat[0].Position != vmath.V2(1, 2) || flat[0].Velocity != vmath.V2(4, 0) {
		t.Errorf("2d body = %v", flat[0])
	}

	full := Bodies(cfg, Vec3)
	if full[0].Position != vmath.V3(1, 2, 3) || full[0].Velocity != vmath.V3(4, 0, 0) {
		t.Errorf("3d body = %v", full[0])
	}
	if full[0].ID != 4 || full[0].Mass != 5 {
		t.Errorf("id/mass lost: %v", full[0])
	}
}

func TestOptionsConversion(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.SimOptions(), sim.DefaultOptions(); got.MaxStepsPerEvolve != want.MaxStepsPerEvolve ||
		got.ToleranceBase != want.ToleranceBase || got.MaxComputeTime != want.MaxComputeTime {
		t.Errorf("SimOptions = %+v, want %+v", got, want)
	}
	if got := cfg.DriverOptions(); got.Speed != 1 || got.MaxTimeBetweenFrames != 100*time.Millisecond {
		t.Errorf("DriverOptions = %+v", got)
	}

	cfg.UnlimitedBudget()
	if err := cfg.SimOptions().Validate(); err != nil {
		t.Errorf("unlimited budget is invalid: %v", err)
	}
}

func TestNames(t *testing.T) {
	cfg := GetPreset("figure8")
	names := cfg.Names()
	if names[1] != "#1" {
		t.Errorf("unnamed body shown as %q", names[1])
	}
	if GetPreset("orbit").Names()[2] != "Moon" {
		t.Error("named body lost its name")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("orbit")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scene != "orbit" {
		t.Errorf("scene = %q", cfg.Scene)
	}

	cfg.Bodies[0].Position[0] = 42
	cfg.Driver.Speed = -1
	again := GetPreset("orbit")
	if again.Bodies[0].Position[0] == 42 || again.Driver.Speed == -1 {
		t.Error("modifying a preset copy changed the preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"binary", "figure8", "inner-solar", "line", "orbit"}
	if len(presets) != len(want) {
		t.Fatalf("presets = %v, want %v", presets, want)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %q, want %q", i, presets[i], want[i])
		}
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if err := cfg.Validate(); err != nil {
				t.Fatal(err)
			}
			if cfg.Driver.Speed <= 0 {
				t.Errorf("speed = %g, want positive", cfg.Driver.Speed)
			}
		})
	}
}

func TestSymmetricPresets(t *testing.T) {
	for _, name := range []string{"binary", "figure8", "line"} {
		t.Run(name, func(t *testing.T) {
			bodies := Bodies(GetPreset(name), Vec2)

			scale := 0.0
			for _, b := range bodies {
				scale += b.Mass * b.Velocity.Len()
			}
			if p := physics.Momentum(bodies); scale > 0 && p.Len() > 1e-9*scale {
				t.Errorf("net momentum %v", p)
			}
			if c := physics.Barycenter(bodies); c.Len() > 1e-6 {
				t.Errorf("barycenter %v, want origin", c)
			}
		})
	}
}
