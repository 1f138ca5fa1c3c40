// Package metrics defines the sink port plan runs report into.
package metrics

import (
	"time"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

// PlanEvent describes one completed planning run.
type PlanEvent struct {
	RunID       string
	Day         time.Time
	FleetSize   int
	Assignments []model.Assignment
	Unscheduled []string
	Duration    time.Duration
}

// MetricsSink records planning outcomes. Implementations must tolerate being
// called from concurrent runs.
type MetricsSink interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink discards all events.
type NopSink struct{}

// RecordPlan implements MetricsSink.
func (NopSink) RecordPlan(PlanEvent) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}
