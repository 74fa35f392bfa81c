// Package sim runs a World forward in time. A Driver owns the world, drains
// control commands between ticks, advances the gravity engine and publishes
// an immutable snapshot after every tick.
package sim

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/physics"
	"github.com/san-kum/orbsim/internal/watch"
	"github.com/san-kum/orbsim/internal/world"
)

type Driver struct {
	world   *world.World
	engine  *physics.Engine
	queue   *command.Queue
	out     *watch.Sender[world.Snapshot]
	fps     int
	log     *slog.Logger
	metrics *metrics.Collector
	events  map[string]Event
	now     func() time.Time

	observers []metrics.Metric
	seeded    bool
	meter     Meter
	state     atomic.Int32
}

// New creates an idle driver and publishes the initial snapshot. The driver
// becomes the only writer of w.
func New(w *world.World, engine *physics.Engine, queue *command.Queue, opts Options) (*Driver, error) {
	if w == nil {
		return nil, ErrNilWorld
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	if opts.FPS == 0 {
		opts.FPS = DefaultFPS
	}
	if opts.FPS < 0 || opts.FPS > MaxFPS {
		return nil, ErrInvalidFPS
	}
	if engine == nil {
		engine = physics.NewEngine(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	d := &Driver{
		world:   w,
		engine:  engine,
		queue:   queue,
		fps:     opts.FPS,
		log:     opts.Logger,
		metrics: opts.Metrics,
		events:  mergeEvents(opts.Events),
		now:     opts.Now,
	}

	initial := w.Snapshot()
	if opts.Output != nil {
		if err := opts.Output.Send(initial); err != nil {
			return nil, &PublishError{Tick: initial.Tick(), SimTime: initial.SimTime(), Err: err}
		}
		d.out = opts.Output
	} else {
		d.out = watch.New(initial)
	}
	d.metrics.SetTimeScale(w.TimeScale())
	return d, nil
}

// AddMetric registers m to observe every published snapshot, starting with
// the one current when the driver is first started. Metrics are called on
// the driver goroutine; read them after Spin or Run returns.
func (d *Driver) AddMetric(m metrics.Metric) { d.observers = append(d.observers, m) }

// Subscribe returns a new receiver of the driver's snapshots.
func (d *Driver) Subscribe() *watch.Receiver[world.Snapshot] { return d.out.Subscribe() }

func (d *Driver) State() State { return State(d.state.Load()) }

func (d *Driver) FPS() int { return d.fps }

// Period is the wall-clock interval between ticks in Spin.
func (d *Driver) Period() time.Duration { return time.Second / time.Duration(d.fps) }

// Spin ticks at the driver's fps until a Shutdown command arrives, the
// command queue is closed, publishing fails or ctx is done. Shutdown and a
// closed queue return nil; a cancelled context returns ctx.Err().
func (d *Driver) Spin(ctx context.Context) error {
	if err := d.start(); err != nil {
		return err
	}
	d.log.Info("driver started", "fps", d.fps, "time_scale", d.world.TimeScale())

	ticker := time.NewTicker(d.Period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.state.Store(int32(ShuttingDown))
			d.finish("context done")
			return ctx.Err()
		case now := <-ticker.C:
			done, err := d.tick(now)
			if err != nil {
				d.finish("publish failed")
				return err
			}
			if done {
				d.finish("shutdown")
				return nil
			}
		}
	}
}

// Run advances exactly ticks ticks without waiting between them, applying
// the same command and publish rules as Spin. The driver returns to Idle
// afterwards unless it was shut down.
func (d *Driver) Run(ctx context.Context, ticks int) error {
	if ticks < 0 {
		return ErrNegTicks
	}
	if err := d.start(); err != nil {
		return err
	}
	d.log.Debug("batch run", "ticks", ticks, "time_scale", d.world.TimeScale())

	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			d.state.Store(int32(ShuttingDown))
			d.finish("context done")
			return err
		}
		done, err := d.tick(d.now())
		if err != nil {
			d.finish("publish failed")
			return err
		}
		if done {
			d.finish("shutdown")
			return nil
		}
	}

	d.state.Store(int32(Idle))
	return nil
}

func (d *Driver) start() error {
	if !d.state.CompareAndSwap(int32(Idle), int32(Running)) {
		if d.State() == Stopped {
			return ErrStopped
		}
		return ErrNotIdle
	}
	if !d.seeded {
		d.observe(d.world.Snapshot())
		d.seeded = true
	}
	return nil
}

func (d *Driver) finish(reason string) {
	d.state.Store(int32(Stopped))
	d.out.Close()
	d.log.Info("driver stopped", "reason", reason, "tick", d.world.Tick(), "sim_time", d.world.SimTime())
}

// tick runs one iteration of the loop. It reports done when the driver has
// been asked to stop, in which case nothing was integrated or published.
func (d *Driver) tick(now time.Time) (done bool, err error) {
	if d.drain() {
		return true, nil
	}

	started := time.Now()
	dt := d.world.TimeScale() / float64(d.fps)
	d.world.Advance(d.engine, dt)

	if n, updated := d.meter.Tick(now); updated {
		d.world.SetTicksPerSecond(n)
		d.metrics.SetTicksPerSecond(n)
	}

	snap := d.world.Snapshot()
	d.metrics.ObserveTick(time.Since(started))
	if err := d.out.Send(snap); err != nil {
		d.log.Error("publish snapshot", "tick", snap.Tick(), "err", err)
		return true, &PublishError{Tick: snap.Tick(), SimTime: snap.SimTime(), Err: err}
	}
	d.observe(snap)
	return false, nil
}

func (d *Driver) observe(snap world.Snapshot) {
	for _, m := range d.observers {
		m.Observe(snap)
	}
}

// drain applies every pending command in arrival order. It returns true
// when a Shutdown was received or the queue was closed; the caller must then
// return without integrating.
func (d *Driver) drain() bool {
	for {
		select {
		case c, ok := <-d.queue.C():
			if !ok {
				d.log.Warn("command queue closed, shutting down")
				d.state.Store(int32(ShuttingDown))
				return true
			}
			if d.apply(c) {
				return true
			}
		default:
			return false
		}
	}
}

func (d *Driver) apply(c command.Command) (shutdown bool) {
	switch c := c.(type) {
	case command.Shutdown:
		d.state.Store(int32(ShuttingDown))
		d.metrics.CommandApplied(c.Kind())
		d.log.Info("shutdown requested", "tick", d.world.Tick())
		return true

	case command.SetTimeScale:
		old := d.world.TimeScale()
		if err := d.world.SetTimeScale(c.Factor); err != nil {
			d.metrics.CommandRejected(metrics.ReasonInvalidTimeScale)
			d.log.Warn("time scale rejected", "factor", c.Factor, "err", err)
			return false
		}
		d.metrics.CommandApplied(c.Kind())
		d.metrics.SetTimeScale(c.Factor)
		d.log.Info("time scale changed", "from", old, "to", c.Factor)

	case command.TriggerEvent:
		ev, ok := d.events[c.Event]
		if !ok {
			d.metrics.CommandRejected(metrics.ReasonUnknownEvent)
			d.log.Warn("unknown event", "event", c.Event, "target", c.Target)
			return false
		}
		b, err := d.world.UpdateVelocity(c.Target, ev)
		if err != nil {
			d.metrics.CommandRejected(metrics.ReasonUnknownTarget)
			d.log.Warn("unknown event target", "event", c.Event, "target", c.Target)
			return false
		}
		d.metrics.CommandApplied(c.Kind())
		d.log.Debug("event applied", "event", c.Event, "target", c.Target, "velocity", b.Velocity())

	default:
		d.log.Warn("unsupported command", "command", c)
	}
	return false
}
