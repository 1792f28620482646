package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
	// run
	frames          int
	fps             int
	speed           float64
	realtime        bool
	dimensions      int
	resetBarycenter bool
	plot            bool
	// compare
	duration float64
	dt       float64
	// stats
	after float64
	// init
	force bool
)

// main registers the orbitsim commands and exits with status 1 when one of
// them fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "orbitsim",
		Short:        "real-time n-body gravity simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run the driver headless and report conservation diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	runCmd.Flags().Float64Var(&speed, "speed", 1, "simulated seconds per wall-clock second")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "tick on the wall clock instead of a simulated frame clock")
	runCmd.Flags().IntVar(&dimensions, "dim", config.DefaultDimensions, "dimensions (2 or 3)")
	runCmd.Flags().BoolVar(&resetBarycenter, "reset-barycenter", false, "move the barycenter to the origin at rest before running")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot energy drift")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with the live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	liveCmd.Flags().Float64Var(&speed, "speed", 1, "simulated seconds per wall-clock second")
	liveCmd.Flags().IntVar(&dimensions, "dim", config.DefaultDimensions, "dimensions (2 or 3)")
	liveCmd.Flags().BoolVar(&resetBarycenter, "reset-barycenter", false, "move the barycenter to the origin at rest before running")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [method...]",
		Short: "compare rkf45 with the fixed-step integrators",
		Args:  cobra.ArbitraryArgs,
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&duration, "time", 86400, "simulated seconds")
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed step size")
	compareCmd.Flags().IntVar(&dimensions, "dim", config.DefaultDimensions, "dimensions (2 or 3)")

	barycenterCmd := &cobra.Command{
		Use:   "barycenter [preset]",
		Short: "show the barycenter before and after resetting to it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showBarycenter,
	}
	barycenterCmd.Flags().IntVar(&dimensions, "dim", config.DefaultDimensions, "dimensions (2 or 3)")

	statsCmd := &cobra.Command{
		Use:   "stats [preset] <idA> <idB>",
		Short: "compare two bodies: relative motion, escape velocity and orbit",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  showStats,
	}
	statsCmd.Flags().Float64Var(&after, "after", 0, "simulated seconds to evolve before comparing")
	statsCmd.Flags().IntVar(&dimensions, "dim", config.DefaultDimensions, "dimensions (2 or 3)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [preset] [path]",
		Short: "write a starter config file",
		Args:  cobra.MaximumNArgs(2),
		RunE:  writeConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, barycenterCmd, statsCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the scene: the default scene, a preset named by the
// first argument, then --config, then any flag set on the command line.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 && args[0] != "" {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Driver.FPS = fps
	}
	if flags.Changed("speed") {
		cfg.Driver.Speed = speed
	}
	if flags.Changed("dim") {
		cfg.Dimensions = dimensions
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
