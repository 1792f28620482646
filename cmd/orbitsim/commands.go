package main

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/vmath"
)

const defaultConfigPath = "orbitsim.yaml"

var methods = map[string]bool{"rkf45": true, "euler": true, "rk4": true, "verlet": true}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	var presetArgs []string
	if len(args) > 0 && !methods[args[0]] {
		presetArgs, args = args[:1], args[1:]
	}

	cfg, err := loadConfig(cmd, presetArgs)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = []string{"rkf45", cfg.Integrator}
	}

	if cfg.Dimensions == 3 {
		return compare(cfg, names, config.Vec3)
	}
	return compare(cfg, names, config.Vec2)
}

func compare[V vmath.Vector[V]](cfg *config.Config, names []string, vec func(x, y, z float64) V) error {
	if !(duration >= 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("time must be finite and non-negative, got %g", duration)
	}

	initial := config.Bodies(cfg, vec)
	energy0 := physics.TotalEnergy(initial)

	fmt.Printf("comparing integrators for %s (dt=%gs, duration=%gs)\n\n", cfg.Scene, cfg.Dt, duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "integrator\tsteps\trejections\tenergy_drift\tmomentum\ttime_ms")
	for _, name := range names {
		bodies := physics.CloneBodies(initial)
		start := time.Now()
		res, err := evolveWith(cfg, name, bodies)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		if err := physics.StateToObjects(res.State, bodies); err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		drift := 0.0
		if energy0 != 0 {
			drift = math.Abs(physics.TotalEnergy(bodies)-energy0) / math.Abs(energy0)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3e\t%.3e\t%.2f\n", name, res.Steps, res.Rejections, drift,
			physics.Momentum(bodies).Len(), float64(elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

// evolveWith advances bodies by duration seconds with the named method and
// no budget.
func evolveWith[V vmath.Vector[V]](cfg *config.Config, name string, bodies []physics.Body[V]) (dynamo.Result[V], error) {
	state := physics.ObjectsToState(bodies)
	slope := physics.SlopeFunction[V](physics.Masses(bodies), false)

	if name == "rkf45" {
		scale := physics.MaxDistance(bodies)
		if scale == 0 {
			scale = 1
		}
		opts := integrators.DefaultOptions()
		opts.Tolerance = cfg.Sim.Tolerance * scale
		opts.MaxRejections = cfg.Sim.MaxRejections
		return integrators.NewRKF45(state, slope, opts).Evolve(duration, dynamo.Unlimited())
	}

	stepper, err := integrators.NewStepper[V](name)
	if err != nil {
		return dynamo.Result[V]{}, err
	}
	return integrators.EvolveFixed(stepper, slope, state, duration, cfg.Dt, dynamo.Unlimited())
}

func showBarycenter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Dimensions == 3 {
		return barycenter(cfg, config.Vec3)
	}
	return barycenter(cfg, config.Vec2)
}

func barycenter[V vmath.Vector[V]](cfg *config.Config, vec func(x, y, z float64) V) error {
	bodies := config.Bodies(cfg, vec)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tbarycenter\tvelocity")
	fmt.Fprintf(w, "before\t%v\t%v\n", physics.Barycenter(bodies), physics.BarycenterVelocity(bodies))
	physics.ResetToBarycenter(bodies)
	fmt.Fprintf(w, "after\t%v\t%v\n", physics.Barycenter(bodies), physics.BarycenterVelocity(bodies))
	fmt.Fprintln(w)

	names := cfg.Names()
	fmt.Fprintln(w, "id\tname\tposition\tvelocity")
	for _, b := range bodies {
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\n", b.ID, names[b.ID], b.Position, b.Velocity)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "preset\tbodies\tspeed")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%gx\n", name, len(p.Bodies), p.Driver.Speed)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	path := defaultConfigPath
	if len(args) > 1 {
		path = args[1]
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, %d bodies)\n", path, cfg.Scene, len(cfg.Bodies))
	return nil
}
