package sim_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/vmath"
)

func binary() []physics.Body[vmath.Vec2] {
	const m = 1e24
	v := math.Sqrt(physics.G * m / (4 * 1e7))
	return []physics.Body[vmath.Vec2]{
		{ID: 1, Position: vmath.V2(-1e7, 0), Velocity: vmath.V2(0, -v), Mass: m},
		{ID: 2, Position: vmath.V2(1e7, 0), Velocity: vmath.V2(0, v), Mass: m},
	}
}

var _ = Describe("Driver", func() {
	var (
		clock  *sim.ManualClock
		s      *sim.Simulator[vmath.Vec2]
		driver *sim.Driver[vmath.Vec2]
		opts   sim.Options
	)

	BeforeEach(func() {
		clock = sim.NewManualClock(time.Unix(1_700_000_000, 0))
		opts = sim.DefaultOptions()
		opts.MaxStepsPerEvolve = dynamo.UnlimitedSteps
		opts.MaxComputeTime = dynamo.NoDeadline
	})

	JustBeforeEach(func() {
		var err error
		s, err = sim.New(binary(), opts)
		Expect(err).NotTo(HaveOccurred())

		dopts := sim.DefaultDriverOptions()
		dopts.Clock = clock
		driver = sim.NewDriver(s, dopts)
	})

	It("evolves by the real time since the last frame", func() {
		clock.Advance(16 * time.Millisecond)
		frame, err := driver.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Target).To(BeNumerically("~", 0.016, 1e-12))
		Expect(frame.Actual).To(Equal(frame.Target))
		Expect(frame.Slowed).To(BeFalse())
		Expect(driver.Slowed()).To(BeFalse())
	})

	It("scales the frame by speed", func() {
		driver.SetSpeed(3600)
		clock.Advance(50 * time.Millisecond)
		start := s.Timestamp()

		frame, err := driver.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Actual).To(BeNumerically("~", 180, 1e-9))
		Expect(s.Timestamp().Sub(start)).To(Equal(180 * time.Second))
	})

	It("caps the time one frame accounts for", func() {
		clock.Advance(5 * time.Second)
		frame, err := driver.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Target).To(BeNumerically("~", 0.1, 1e-12))
	})

	It("runs backward with a negative speed", func() {
		driver.SetSpeed(-100)
		start := s.Timestamp()
		clock.Advance(20 * time.Millisecond)

		frame, err := driver.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(frame.Actual).To(BeNumerically("~", -2, 1e-9))
		Expect(s.Timestamp().Before(start)).To(BeTrue())
	})

	DescribeTable("does not evolve while idle",
		func(configure func(*sim.Driver[vmath.Vec2])) {
			configure(driver)
			before := s.Bodies()
			start := s.Timestamp()

			clock.Advance(time.Second)
			frame, err := driver.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(frame.Paused).To(BeTrue())
			Expect(s.Bodies()).To(Equal(before))
			Expect(s.Timestamp()).To(Equal(start))

			// the idle second is not replayed after resuming
			driver.SetPaused(false)
			driver.SetSpeed(1)
			clock.Advance(30 * time.Millisecond)
			frame, err = driver.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(frame.Target).To(BeNumerically("~", 0.03, 1e-12))
		},
		Entry("paused", func(d *sim.Driver[vmath.Vec2]) { d.SetPaused(true) }),
		Entry("zero speed", func(d *sim.Driver[vmath.Vec2]) { d.SetSpeed(0) }),
	)

	Context("when the simulator cannot keep up", func() {
		BeforeEach(func() {
			opts.MaxEvolveTime = 0.01
		})

		It("marks the frame as slowed", func() {
			clock.Advance(50 * time.Millisecond)
			frame, err := driver.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(frame.Actual).To(BeNumerically("~", 0.01, 1e-12))
			Expect(frame.Slowed).To(BeTrue())
			Expect(driver.Slowed()).To(BeTrue())

			stats := driver.Stats()
			Expect(stats.Frames).To(Equal(1))
			Expect(stats.SlowedFrames).To(Equal(1))
			Expect(stats.SlowedRatio()).To(Equal(1.0))
		})

		It("clears the flag once frames fit again", func() {
			clock.Advance(50 * time.Millisecond)
			_, err := driver.Tick()
			Expect(err).NotTo(HaveOccurred())

			clock.Advance(5 * time.Millisecond)
			frame, err := driver.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(frame.Slowed).To(BeFalse())
			Expect(driver.Stats().SlowedRatio()).To(Equal(0.5))
		})
	})

	It("keeps simulated time monotonic across frames", func() {
		prev := s.Timestamp()
		for i := 0; i < 10; i++ {
			clock.Advance(10 * time.Millisecond)
			_, err := driver.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Timestamp().After(prev)).To(BeTrue())
			prev = s.Timestamp()
		}
		Expect(driver.Stats().SimulatedTime).To(BeNumerically("~", 0.1, 1e-9))
	})

	Describe("Run", func() {
		JustBeforeEach(func() {
			driver = sim.NewDriver(s, sim.DefaultDriverOptions())
		})

		It("stops when the frame callback says so", func() {
			frames := 0
			err := driver.Run(context.Background(), 200, func(f sim.Frame) bool {
				frames++
				return frames < 3
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(frames).To(Equal(3))
			Expect(driver.Stats().Frames).To(Equal(3))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			err := driver.Run(ctx, 100, nil)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})

		It("rejects a non-positive frame rate", func() {
			err := driver.Run(context.Background(), 0, nil)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})
})
