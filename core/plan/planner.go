// Package plan orchestrates one scheduling run: greedy dispatch, six-stage
// timeline expansion and result assembly.
package plan

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/gasgrid/lcv-dispatch/core/dispatch"
	"github.com/gasgrid/lcv-dispatch/core/logger"
	"github.com/gasgrid/lcv-dispatch/core/metrics"
	"github.com/gasgrid/lcv-dispatch/core/model"
	"github.com/gasgrid/lcv-dispatch/core/report"
	"github.com/gasgrid/lcv-dispatch/core/simulation"
)

// Config defines planning parameters loaded from configuration.
type Config struct {
	// JitterMinutes bounds the decision jitter of the dispatcher.
	JitterMinutes float64 `json:"jitter_minutes"`
	// Seed fixes the random source for reproducible runs. Zero derives a
	// seed from the clock.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.JitterMinutes == 0 {
		c.JitterMinutes = dispatch.DefaultJitterMinutes
	}
}

// Result is the output contract of one run.
type Result struct {
	RunID              string                 `json:"run_id"`
	OptimalSchedule    []report.ScheduleEntry `json:"optimal_schedule"`
	SimulationTimeline []report.TimelineEntry `json:"simulation_timeline"`
	// UnscheduledRequests lists request ids no vehicle could take. The two
	// arrays above simply omit them, so consumers of the legacy contract
	// are unaffected.
	UnscheduledRequests []string         `json:"unscheduled_requests"`
	FleetKPIs           report.FleetKPIs `json:"fleet_kpis"`
}

// Planner runs the dispatch pipeline. Each Plan call builds its own
// availability tracker and random source, so concurrent runs are fully
// isolated.
type Planner struct {
	cfg  Config
	log  logger.Logger
	sink metrics.MetricsSink
}

// New creates a Planner. A nil sink disables metrics.
func New(cfg Config, log logger.Logger, sink metrics.MetricsSink) *Planner {
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{cfg: cfg, log: log, sink: sink}
}

// Plan schedules the given requests on the fleet for the given day.
// Requests are expected to be deduplicated and filtered to scope already.
func (p *Planner) Plan(day time.Time, requests []model.Request, fleet model.Fleet) Result {
	started := time.Now()
	runID := uuid.NewString()

	seed := p.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	tracker := dispatch.NewAvailabilityTracker(day)
	dispatcher := dispatch.GreedyDispatcher{JitterMinutes: p.cfg.JitterMinutes}
	dres := dispatcher.Dispatch(requests, fleet, tracker, rng)
	timelines := simulation.ExpandAll(dres.Assignments, rng)

	res := Result{
		RunID:               runID,
		OptimalSchedule:     report.ScheduleEntries(dres.Assignments),
		SimulationTimeline:  report.TimelineEntries(timelines),
		UnscheduledRequests: dres.Unscheduled,
		FleetKPIs:           report.ComputeFleetKPIs(dres.Assignments, fleet),
	}

	elapsed := time.Since(started)
	if err := p.sink.RecordPlan(metrics.PlanEvent{
		RunID:       runID,
		Day:         day,
		FleetSize:   len(fleet),
		Assignments: dres.Assignments,
		Unscheduled: dres.Unscheduled,
		Duration:    elapsed,
	}); err != nil {
		p.log.Errorf("record plan metrics: %v", err)
	}
	p.log.Infof("plan %s: %d scheduled, %d unscheduled, fleet=%d in %s",
		runID, len(dres.Assignments), len(dres.Unscheduled), len(fleet), elapsed)
	return res
}
