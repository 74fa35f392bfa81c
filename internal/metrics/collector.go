package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Rejection reasons reported through CommandRejected.
const (
	ReasonInvalidTimeScale = "invalid_time_scale"
	ReasonUnknownTarget    = "unknown_target"
	ReasonUnknownEvent     = "unknown_event"
	ReasonQueueFull        = "queue_full"
	ReasonParse            = "parse_error"
	ReasonRateLimited      = "rate_limited"
)

// Collector holds the driver's Prometheus instruments. All methods are safe
// on a nil *Collector, which records nothing.
type Collector struct {
	ticks          prometheus.Counter
	ticksPerSecond prometheus.Gauge
	timeScale      prometheus.Gauge
	tickSeconds    prometheus.Histogram
	commands       *prometheus.CounterVec
	rejections     *prometheus.CounterVec
}

// NewCollector creates the instruments and registers them with reg. A nil
// reg leaves them unregistered, which is convenient in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbsim_ticks_total",
			Help: "Completed simulation ticks",
		}),
		ticksPerSecond: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbsim_ticks_per_second",
			Help: "Ticks completed during the last wall-clock second",
		}),
		timeScale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbsim_time_scale",
			Help: "Simulated seconds per wall-clock second",
		}),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "orbsim_tick_seconds",
			Help:    "Time spent computing one tick",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbsim_commands_total",
				Help: "Commands applied by the driver",
			},
			[]string{"kind"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orbsim_command_rejections_total",
				Help: "Commands dropped before or during application",
			},
			[]string{"reason"},
		),
	}

	if reg != nil {
		reg.MustRegister(c.ticks, c.ticksPerSecond, c.timeScale, c.tickSeconds, c.commands, c.rejections)
	}
	return c
}

func (c *Collector) ObserveTick(d time.Duration) {
	if c == nil {
		return
	}
	c.ticks.Inc()
	c.tickSeconds.Observe(d.Seconds())
}

func (c *Collector) SetTicksPerSecond(n int) {
	if c == nil {
		return
	}
	c.ticksPerSecond.Set(float64(n))
}

func (c *Collector) SetTimeScale(f float64) {
	if c == nil {
		return
	}
	c.timeScale.Set(f)
}

func (c *Collector) CommandApplied(kind string) {
	if c == nil {
		return
	}
	c.commands.WithLabelValues(kind).Inc()
}

func (c *Collector) CommandRejected(reason string) {
	if c == nil {
		return
	}
	c.rejections.WithLabelValues(reason).Inc()
}
