package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/gasgrid/lcv-dispatch/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	plans       prometheus.Counter
	scheduled   *prometheus.CounterVec
	unscheduled prometheus.Counter
	duration    prometheus.Histogram
	fleet       prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_plans_total",
		Help: "Total number of planning runs",
	})
	scheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_requests_scheduled_total",
		Help: "Total number of requests scheduled, by vehicle",
	}, []string{"vehicle_id"})
	unscheduled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_requests_unscheduled_total",
		Help: "Total number of requests dropped for lack of fleet",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_plan_duration_seconds",
		Help:    "Wall time of one planning run",
		Buckets: prometheus.DefBuckets,
	})
	fleet := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_fleet_size",
		Help: "Number of vehicles known to the last planning run",
	})

	s := &PromSink{plans: plans, scheduled: scheduled, unscheduled: unscheduled, duration: duration, fleet: fleet}
	if err := register(reg, plans, func(c prometheus.Collector) { s.plans = c.(prometheus.Counter) }); err != nil {
		return nil, err
	}
	if err := register(reg, scheduled, func(c prometheus.Collector) { s.scheduled = c.(*prometheus.CounterVec) }); err != nil {
		return nil, err
	}
	if err := register(reg, unscheduled, func(c prometheus.Collector) { s.unscheduled = c.(prometheus.Counter) }); err != nil {
		return nil, err
	}
	if err := register(reg, duration, func(c prometheus.Collector) { s.duration = c.(prometheus.Histogram) }); err != nil {
		return nil, err
	}
	if err := register(reg, fleet, func(c prometheus.Collector) { s.fleet = c.(prometheus.Gauge) }); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds the collector, recovering the existing one if it was already
// registered.
func register(reg prometheus.Registerer, c prometheus.Collector, keep func(prometheus.Collector)) error {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			keep(are.ExistingCollector)
			return nil
		}
		return err
	}
	keep(c)
	return nil
}

// RecordPlan updates all plan metrics from one run.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.Inc()
	for _, a := range ev.Assignments {
		s.scheduled.WithLabelValues(a.VehicleID).Inc()
	}
	s.unscheduled.Add(float64(len(ev.Unscheduled)))
	s.duration.Observe(ev.Duration.Seconds())
	s.fleet.Set(float64(ev.FleetSize))
	return nil
}
