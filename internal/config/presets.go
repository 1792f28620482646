package config

import (
	"math"
	"sort"

	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	sunMass   = 1.989e30
	earthMass = 5.972e24
	moonMass  = 7.342e22
	au        = 1.496e11
	day       = 86400.0
)

var Presets = map[string]*Config{
	"orbit": preset("orbit", day, earthMoon()),
	"binary": preset("binary", 50*day, []BodyConfig{
		{ID: 1, Name: "A", Position: []float64{-au / 2, 0}, Velocity: []float64{0, -binarySpeed(sunMass, au)}, Mass: sunMass},
		{ID: 2, Name: "B", Position: []float64{au / 2, 0}, Velocity: []float64{0, binarySpeed(sunMass, au)}, Mass: sunMass},
	}),
	"line": preset("line", 600, []BodyConfig{
		{ID: 1, Position: []float64{-1e7, 0}, Velocity: []float64{0, 0}, Mass: 1e24},
		{ID: 2, Position: []float64{0, 0}, Velocity: []float64{0, 0}, Mass: 1e24},
		{ID: 3, Position: []float64{1e7, 0}, Velocity: []float64{0, 0}, Mass: 1e24},
	}),
	"figure8": preset("figure8", 2000, figureEight(1e7, 1e24)),
	"inner-solar": preset("inner-solar", 5*day, []BodyConfig{
		{ID: 1, Name: "Sun", Position: []float64{0, 0}, Velocity: []float64{0, 0}, Mass: sunMass},
		planet(2, "Mercury", 5.791e10, 3.301e23),
		planet(3, "Venus", 1.082e11, 4.867e24),
		planet(4, "Earth", au, earthMass),
		planet(5, "Mars", 2.279e11, 6.417e23),
	}),
}

func preset(name string, speed float64, bodies []BodyConfig) *Config {
	cfg := DefaultConfig()
	cfg.Scene = name
	cfg.Driver.Speed = speed
	cfg.Bodies = bodies
	return cfg
}

func earthMoon() []BodyConfig {
	return []BodyConfig{
		{ID: 1, Name: "Earth", Position: []float64{0, 0}, Velocity: []float64{0, 0}, Mass: earthMass},
		{ID: 2, Name: "Moon", Position: []float64{3.844e8, 0}, Velocity: []float64{0, circularSpeed(earthMass+moonMass, 3.844e8)}, Mass: moonMass},
	}
}

// planet places a body on a circular orbit around a Sun at the origin.
func planet(id int, name string, radius, mass float64) BodyConfig {
	return BodyConfig{
		ID:       id,
		Name:     name,
		Position: []float64{radius, 0},
		Velocity: []float64{0, circularSpeed(sunMass+mass, radius)},
		Mass:     mass,
	}
}

func circularSpeed(mass, radius float64) float64 {
	return math.Sqrt(physics.G * mass / radius)
}

// binarySpeed is the speed of each of two equal masses circling their
// barycenter at the given separation.
func binarySpeed(mass, separation float64) float64 {
	return math.Sqrt(physics.G * mass / (2 * separation))
}

// figureEight is the Chenciner-Montgomery choreography scaled from G=m=1
// units to SI with the given length and mass units.
func figureEight(length, mass float64) []BodyConfig {
	t := math.Sqrt(length * length * length / (physics.G * mass))
	v := length / t

	x, y := 0.97000436, -0.24308753
	vx, vy := 0.93240737/2, 0.86473146/2
	return []BodyConfig{
		{ID: 1, Position: []float64{x * length, y * length}, Velocity: []float64{vx * v, vy * v}, Mass: mass},
		{ID: 2, Position: []float64{-x * length, -y * length}, Velocity: []float64{vx * v, vy * v}, Mass: mass},
		{ID: 3, Position: []float64{0, 0}, Velocity: []float64{-2 * vx * v, -2 * vy * v}, Mass: mass},
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = make([]BodyConfig, len(p.Bodies))
	for i, b := range p.Bodies {
		b.Position = append([]float64(nil), b.Position...)
		b.Velocity = append([]float64(nil), b.Velocity...)
		cfg.Bodies[i] = b
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
