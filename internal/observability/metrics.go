package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/satlink-planner/model"
)

// TimelineCollector bundles Prometheus metrics for the planning engine
// and publishes the summary statistics of the most recent timeline.
type TimelineCollector struct {
	gatherer prometheus.Gatherer

	Computations    *prometheus.CounterVec
	ComputeDuration prometheus.Histogram

	NextConflictSeconds prometheus.Gauge
	DegradedSeconds     prometheus.Gauge
	CriticalSeconds     prometheus.Gauge

	TransportUnavailableSeconds *prometheus.GaugeVec
}

// NewTimelineCollector registers the planner metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewTimelineCollector(reg prometheus.Registerer) (*TimelineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	computations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timeline_computations_total",
		Help: "Total number of timeline computations, labeled by outcome.",
	}, []string{"outcome"})
	computations, err := registerCounterVec(reg, computations, "timeline_computations_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timeline_compute_duration_seconds",
		Help:    "Timeline computation latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "timeline_compute_duration_seconds")
	if err != nil {
		return nil, err
	}

	nextConflict, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timeline_next_conflict_seconds",
		Help: "Countdown to the next non-Nominal segment, in seconds. 0 when the leg is fully Nominal.",
	}), "timeline_next_conflict_seconds")
	if err != nil {
		return nil, err
	}
	degraded, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timeline_degraded_seconds_total",
		Help: "Cumulative Degraded duration of the current timeline, in seconds.",
	}), "timeline_degraded_seconds_total")
	if err != nil {
		return nil, err
	}
	critical, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timeline_critical_seconds_total",
		Help: "Cumulative Critical duration of the current timeline, in seconds.",
	}), "timeline_critical_seconds_total")
	if err != nil {
		return nil, err
	}

	unavailable := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timeline_transport_unavailable_seconds",
		Help: "Per-transport total unavailable duration of the current timeline, in seconds.",
	}, []string{"transport"})
	unavailable, err = registerGaugeVec(reg, unavailable, "timeline_transport_unavailable_seconds")
	if err != nil {
		return nil, err
	}

	return &TimelineCollector{
		gatherer:                    gatherer,
		Computations:                computations,
		ComputeDuration:             duration,
		NextConflictSeconds:         nextConflict,
		DegradedSeconds:             degraded,
		CriticalSeconds:             critical,
		TransportUnavailableSeconds: unavailable,
	}, nil
}

// ObserveComputation records one computation's latency and outcome.
func (c *TimelineCollector) ObserveComputation(elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "input_error"
	}
	if c.Computations != nil {
		c.Computations.WithLabelValues(outcome).Inc()
	}
	if c.ComputeDuration != nil && err == nil {
		c.ComputeDuration.Observe(elapsed.Seconds())
	}
}

// RecordTimeline publishes the summary statistics of a freshly computed
// timeline. now anchors the next-conflict countdown.
func (c *TimelineCollector) RecordTimeline(now time.Time, mt *model.MissionTimeline) {
	if c == nil || mt == nil {
		return
	}

	countdown := 0.0
	if !mt.Summary.NextConflict.IsZero() {
		if until := mt.Summary.NextConflict.Sub(now).Seconds(); until > 0 {
			countdown = until
		}
	}
	if c.NextConflictSeconds != nil {
		c.NextConflictSeconds.Set(countdown)
	}
	if c.DegradedSeconds != nil {
		c.DegradedSeconds.Set(mt.Summary.DegradedTotal.Seconds())
	}
	if c.CriticalSeconds != nil {
		c.CriticalSeconds.Set(mt.Summary.CriticalTotal.Seconds())
	}
	if c.TransportUnavailableSeconds != nil {
		for _, tr := range model.AllTransports() {
			c.TransportUnavailableSeconds.WithLabelValues(string(tr)).
				Set(mt.Summary.UnavailableByTransport[tr].Seconds())
		}
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *TimelineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
