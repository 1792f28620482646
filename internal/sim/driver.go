package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/vmath"
)

// SlowedThreshold is how far, in simulated seconds, a frame may fall short
// of its target before it counts as slowed.
const SlowedThreshold = 1e-3

type DriverOptions struct {
	// Speed is simulated seconds per real second. Negative runs backward.
	Speed  float64
	Paused bool
	// MaxTimeBetweenFrames caps the real time one frame accounts for, so a
	// stalled caller does not trigger a huge catch-up evolve.
	MaxTimeBetweenFrames time.Duration
	Clock                Clock
	Logger               *slog.Logger
}

func DefaultDriverOptions() DriverOptions {
	return DriverOptions{
		Speed:                1,
		MaxTimeBetweenFrames: 100 * time.Millisecond,
	}
}

// Frame describes one Tick.
type Frame struct {
	Index int
	// Target is the signed simulated time the frame asked for.
	Target float64
	// Actual is the signed simulated time the frame covered.
	Actual    float64
	Slowed    bool
	Paused    bool
	Timestamp time.Time
}

// FrameStats accumulates over the life of a Driver.
type FrameStats struct {
	Frames        int
	SlowedFrames  int
	PausedFrames  int
	SimulatedTime float64
}

func (f FrameStats) SlowedRatio() float64 {
	active := f.Frames - f.PausedFrames
	if active == 0 {
		return 0
	}
	return float64(f.SlowedFrames) / float64(active)
}

// Driver advances a Simulator in step with a clock, once per frame.
type Driver[V vmath.Vector[V]] struct {
	sim    *Simulator[V]
	clock  Clock
	logger *slog.Logger

	mu       sync.Mutex
	opts     DriverOptions
	lastTick time.Time
	slowed   bool
	stats    FrameStats
}

func NewDriver[V vmath.Vector[V]](s *Simulator[V], opts DriverOptions) *Driver[V] {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return &Driver[V]{
		sim:      s,
		clock:    opts.Clock,
		logger:   opts.Logger,
		opts:     opts,
		lastTick: opts.Clock.Now(),
	}
}

func (d *Driver[V]) Simulator() *Simulator[V] { return d.sim }

func (d *Driver[V]) Speed() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts.Speed
}

func (d *Driver[V]) SetSpeed(speed float64) {
	d.mu.Lock()
	d.opts.Speed = speed
	d.mu.Unlock()
}

func (d *Driver[V]) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opts.Paused
}

func (d *Driver[V]) SetPaused(paused bool) {
	d.mu.Lock()
	d.opts.Paused = paused
	d.mu.Unlock()
}

// Slowed reports whether the last active frame fell short of its target.
func (d *Driver[V]) Slowed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.slowed
}

func (d *Driver[V]) Stats() FrameStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Tick runs one frame. A paused or zero-speed driver only restarts its
// frame timer, so resuming does not jump ahead.
func (d *Driver[V]) Tick() (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	frame := Frame{Index: d.stats.Frames}
	d.stats.Frames++

	if d.opts.Paused || d.opts.Speed == 0 {
		d.lastTick = d.clock.Now()
		d.stats.PausedFrames++
		frame.Paused = true
		frame.Timestamp = d.sim.Timestamp()
		return frame, nil
	}

	gap := math.Max(d.clock.Now().Sub(d.lastTick).Seconds(), 0)
	frame.Target = math.Min(gap, d.opts.MaxTimeBetweenFrames.Seconds()) * d.opts.Speed

	actual, err := d.sim.Evolve(frame.Target)
	frame.Actual = actual
	frame.Slowed = math.Abs(frame.Target-actual) > SlowedThreshold
	frame.Timestamp = d.sim.Timestamp()

	d.slowed = frame.Slowed
	d.lastTick = d.clock.Now()
	d.stats.SimulatedTime += actual
	if frame.Slowed {
		d.stats.SlowedFrames++
		d.logger.Debug("frame slowed", "frame", frame.Index, "target", frame.Target, "actual", actual)
	}

	if err != nil {
		return frame, fmt.Errorf("frame %d: %w", frame.Index, err)
	}
	return frame, nil
}

// Run ticks fps times per second until ctx is done or onFrame returns
// false. A nil onFrame never stops the loop.
func (d *Driver[V]) Run(ctx context.Context, fps int, onFrame func(Frame) bool) error {
	if fps <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", dynamo.ErrParameterBounds, fps)
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		frame, err := d.Tick()
		if err != nil {
			return err
		}
		if onFrame != nil && !onFrame(frame) {
			return nil
		}
	}
}
