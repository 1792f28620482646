package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/san-kum/orbitsim/internal/vmath"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Dimensions == 3 {
		return headless(cmd, cfg, config.Vec3)
	}
	return headless(cmd, cfg, config.Vec2)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Dimensions == 3 {
		return live(cfg, config.Vec3)
	}
	return live(cfg, config.Vec2)
}

// newDriver builds the simulator and driver for cfg. A nil clock means the
// wall clock with the configured compute budget; otherwise the budget is
// lifted so every frame reaches its target.
func newDriver[V vmath.Vector[V]](cfg *config.Config, vec func(x, y, z float64) V, clock sim.Clock) (*sim.Driver[V], error) {
	bodies := config.Bodies(cfg, vec)
	if resetBarycenter {
		physics.ResetToBarycenter(bodies)
	}

	logger := newLogger()
	if clock != nil {
		cfg.UnlimitedBudget()
	}
	opts := cfg.SimOptions()
	opts.Logger = logger

	s, err := sim.New(bodies, opts)
	if err != nil {
		return nil, err
	}

	dopts := cfg.DriverOptions()
	dopts.Logger = logger
	dopts.Clock = clock
	return sim.NewDriver(s, dopts), nil
}

func headless[V vmath.Vector[V]](cmd *cobra.Command, cfg *config.Config, vec func(x, y, z float64) V) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}

	var manual *sim.ManualClock
	var clock sim.Clock
	if !realtime {
		manual = sim.NewManualClock(time.Now())
		clock = manual
	}

	d, err := newDriver(cfg, vec, clock)
	if err != nil {
		return err
	}
	s := d.Simulator()
	set := metrics.Standard[V]()
	set.Observe(s.Bodies(), sim.Frame{Paused: true, Timestamp: s.Timestamp()})

	fmt.Printf("running %s (%dD, %d bodies, %d frames at %d fps, speed %gx)\n",
		cfg.Scene, cfg.Dimensions, len(cfg.Bodies), frames, cfg.Driver.FPS, cfg.Driver.Speed)

	start := time.Now()
	observed := 0
	onFrame := func(f sim.Frame) bool {
		set.Observe(s.Bodies(), f)
		observed++
		return observed < frames
	}

	if realtime {
		err = d.Run(cmd.Context(), cfg.Driver.FPS, onFrame)
	} else {
		frameTime := time.Second / time.Duration(cfg.Driver.FPS)
		for more := true; more; {
			if err = cmd.Context().Err(); err != nil {
				break
			}
			manual.Advance(frameTime)
			var f sim.Frame
			f, err = d.Tick()
			if err != nil {
				break
			}
			more = onFrame(f)
		}
	}
	wall := time.Since(start)

	report(cfg, d, set, wall)
	if plot {
		plotEnergy(set)
	}
	return err
}

func report[V vmath.Vector[V]](cfg *config.Config, d *sim.Driver[V], set *metrics.Set[V], wall time.Duration) {
	stats := d.Stats()
	names := cfg.Names()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "frames\t%d\n", stats.Frames)
	fmt.Fprintf(w, "simulated\t%s\n", time.Duration(stats.SimulatedTime*float64(time.Second)).Round(time.Millisecond))
	fmt.Fprintf(w, "timestamp\t%s\n", d.Simulator().Timestamp().Format(time.RFC3339))
	fmt.Fprintf(w, "slowed\t%.1f%%\n", stats.SlowedRatio()*100)
	fmt.Fprintf(w, "wall\t%s\n", wall.Round(time.Millisecond))
	values := set.Values()
	for _, name := range set.Names() {
		fmt.Fprintf(w, "%s\t%.3e\n", name, values[name])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "id\tname\tposition\tvelocity\tmass")
	for _, b := range d.Simulator().Bodies() {
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%.4g\n", b.ID, names[b.ID], b.Position, b.Velocity, b.Mass)
	}
	w.Flush()
}

func plotEnergy[V vmath.Vector[V]](set *metrics.Set[V]) {
	m, ok := set.Get("energy_drift")
	if !ok {
		return
	}
	energy, ok := m.(*metrics.EnergyDrift[V])
	if !ok || len(energy.History()) < 2 {
		return
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(energy.History(),
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("relative energy drift per frame")))
}

func live[V vmath.Vector[V]](cfg *config.Config, vec func(x, y, z float64) V) error {
	d, err := newDriver(cfg, vec, nil)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Scene, d, cfg.Names(), cfg.Driver.FPS, cfg.OrbitTrail)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
