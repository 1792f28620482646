package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

func showStats(cmd *cobra.Command, args []string) error {
	ids := args[len(args)-2:]
	idA, err := strconv.Atoi(ids[0])
	if err != nil {
		return fmt.Errorf("invalid body id %q", ids[0])
	}
	idB, err := strconv.Atoi(ids[1])
	if err != nil {
		return fmt.Errorf("invalid body id %q", ids[1])
	}

	cfg, err := loadConfig(cmd, args[:len(args)-2])
	if err != nil {
		return err
	}
	if cfg.Dimensions == 3 {
		return pairStats(os.Stdout, cfg, idA, idB, config.Vec3)
	}
	return pairStats(os.Stdout, cfg, idA, idB, config.Vec2)
}

// pairStats evolves the scene by --after seconds and writes how body idA
// moves relative to body idB.
func pairStats[V vmath.Vector[V]](out io.Writer, cfg *config.Config, idA, idB int, vec func(x, y, z float64) V) error {
	if math.IsNaN(after) || math.IsInf(after, 0) {
		return fmt.Errorf("after must be finite, got %g", after)
	}

	bodies := config.Bodies(cfg, vec)
	if after != 0 {
		cfg.UnlimitedBudget()
		s, err := sim.New(bodies, cfg.SimOptions())
		if err != nil {
			return err
		}
		if _, err := s.Evolve(after); err != nil {
			return err
		}
		bodies = s.Bodies()
	}

	a, ok := findBody(bodies, idA)
	if !ok {
		return fmt.Errorf("no body with id %d", idA)
	}
	b, ok := findBody(bodies, idB)
	if !ok {
		return fmt.Errorf("no body with id %d", idB)
	}

	names := cfg.Names()
	c := physics.Compare(a, b)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s relative to %s after %gs\n\n", names[a.ID], names[b.ID], after)
	fmt.Fprintf(w, "relative position\t%v\tm\n", c.RelativePosition)
	fmt.Fprintf(w, "relative velocity\t%v\tm/s\n", c.RelativeVelocity)
	fmt.Fprintf(w, "distance\t%.6g\tm\n", c.Distance)
	fmt.Fprintf(w, "relative speed\t%.6g\tm/s\n", c.RelativeVelocity.Len())
	fmt.Fprintf(w, "mass ratio\t%.6g\t\n", c.MassRatio)
	fmt.Fprintf(w, "escape velocity\t%.6g\tm/s\n", c.EscapeVelocity)
	fmt.Fprintf(w, "bound\t%t\t\n", c.Bound)
	fmt.Fprintf(w, "pair barycenter\t%v\tm\n", c.Barycenter)
	fmt.Fprintf(w, "eccentricity\t%.6g\t\n", c.Eccentricity)
	fmt.Fprintf(w, "semi-major axis\t%.6g\tm\n", c.SemiMajorAxis)
	fmt.Fprintf(w, "orbital period\t%.6g\ts\n", c.OrbitalPeriod)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "body\tnet force (N)\tacceleration (m/s^2)")
	for _, body := range []physics.Body[V]{a, b} {
		fmt.Fprintf(w, "%s\t%v\t%v\n", names[body.ID],
			physics.ForceOn(body, bodies), physics.AccelerationOn(body, bodies))
	}
	return w.Flush()
}

func findBody[V vmath.Vector[V]](bodies []physics.Body[V], id int) (physics.Body[V], bool) {
	for _, b := range bodies {
		if b.ID == id {
			return b, true
		}
	}
	return physics.Body[V]{}, false
}
