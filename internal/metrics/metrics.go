// Package metrics collects and exposes Prometheus metrics for pidone.
package metrics

import (
	"net/http"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kahiteam/pidone/internal/signals"
)

// Collector holds all pidone Prometheus metrics. A nil *Collector is valid
// and records nothing, so callers need not check whether metrics are on.
type Collector struct {
	registry *prometheus.Registry

	SignalsReceived  *prometheus.CounterVec
	SignalsForwarded *prometheus.CounterVec
	SignalsDropped   *prometheus.CounterVec
	SignalsIgnored   *prometheus.CounterVec
	ObserverStarts   *prometheus.CounterVec
	Reaped           *prometheus.CounterVec

	ChildPID      prometheus.Gauge
	ChildExitCode prometheus.Gauge
	BuildInfo     *prometheus.GaugeVec
}

// New creates and registers all pidone metrics.
func New() *Collector {
	reg := prometheus.NewRegistry()

	// Register default Go runtime metrics.
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := &Collector{
		registry: reg,

		SignalsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidone_signals_received_total",
				Help: "Total number of signals received by the supervisor.",
			},
			[]string{"signal"},
		),

		SignalsForwarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidone_signals_forwarded_total",
				Help: "Total number of signals delivered to the child, by delivered signal.",
			},
			[]string{"signal"},
		),

		SignalsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidone_signals_dropped_total",
				Help: "Total number of signals swallowed by a drop rewrite.",
			},
			[]string{"signal"},
		),

		SignalsIgnored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidone_signals_ignored_total",
				Help: "Total number of signals swallowed after terminal detachment.",
			},
			[]string{"signal"},
		),

		ObserverStarts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidone_observer_starts_total",
				Help: "Total number of signal observer launches.",
			},
			[]string{"signal", "result"},
		),

		Reaped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pidone_reaped_total",
				Help: "Total number of descendants reaped.",
			},
			[]string{"tracked"},
		),

		ChildPID: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pidone_child_pid",
				Help: "Pid of the supervised child, 0 before it starts.",
			},
		),

		ChildExitCode: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "pidone_child_exit_code",
				Help: "Exit code of the supervised child, -1 while it runs.",
			},
		),

		BuildInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pidone_info",
				Help: "Build information about pidone.",
			},
			[]string{"version", "go_version"},
		),
	}

	c.ChildExitCode.Set(-1)

	reg.MustRegister(
		c.SignalsReceived,
		c.SignalsForwarded,
		c.SignalsDropped,
		c.SignalsIgnored,
		c.ObserverStarts,
		c.Reaped,
		c.ChildPID,
		c.ChildExitCode,
		c.BuildInfo,
	)

	return c
}

// Handler returns an http.Handler that serves the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// SetBuildInfo sets the constant build info gauge.
func (c *Collector) SetBuildInfo(version, goVersion string) {
	if c == nil {
		return
	}
	c.BuildInfo.WithLabelValues(version, goVersion).Set(1)
}

// IncReceived counts a signal taken off the queue.
func (c *Collector) IncReceived(sig syscall.Signal) {
	if c == nil {
		return
	}
	c.SignalsReceived.WithLabelValues(signals.Name(sig)).Inc()
}

// IncForwarded counts a signal delivered to the child.
func (c *Collector) IncForwarded(sig syscall.Signal) {
	if c == nil {
		return
	}
	c.SignalsForwarded.WithLabelValues(signals.Name(sig)).Inc()
}

// IncDropped counts a signal swallowed by the rewrite table.
func (c *Collector) IncDropped(sig syscall.Signal) {
	if c == nil {
		return
	}
	c.SignalsDropped.WithLabelValues(signals.Name(sig)).Inc()
}

// IncIgnored counts a signal swallowed by a one-shot ignore.
func (c *Collector) IncIgnored(sig syscall.Signal) {
	if c == nil {
		return
	}
	c.SignalsIgnored.WithLabelValues(signals.Name(sig)).Inc()
}

// IncObserverStart counts an observer launch for sig.
func (c *Collector) IncObserverStart(sig syscall.Signal, ok bool) {
	if c == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	c.ObserverStarts.WithLabelValues(signals.Name(sig), result).Inc()
}

// IncReaped counts a reaped descendant.
func (c *Collector) IncReaped(tracked bool) {
	if c == nil {
		return
	}
	c.Reaped.WithLabelValues(strconv.FormatBool(tracked)).Inc()
}

// SetChildPID records the supervised child's pid.
func (c *Collector) SetChildPID(pid int) {
	if c == nil {
		return
	}
	c.ChildPID.Set(float64(pid))
}

// SetChildExitCode records the supervised child's exit code.
func (c *Collector) SetChildExitCode(code int) {
	if c == nil {
		return
	}
	c.ChildExitCode.Set(float64(code))
}
