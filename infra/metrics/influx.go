package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gasgrid/lcv-dispatch/core/metrics"
	"github.com/gasgrid/lcv-dispatch/infra/logger"
)

// InfluxSink writes planning runs to an InfluxDB instance using the official
// client. Each assignment becomes one point; a summary point closes the run.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes the run as line protocol events.
func (s *InfluxSink) RecordPlan(ev coremetrics.PlanEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, a := range ev.Assignments {
		p := write.NewPointWithMeasurement("dispatch_assignment").
			AddTag("run_id", ev.RunID).
			AddTag("vehicle_id", a.VehicleID).
			AddTag("request_id", a.Request.ID).
			AddTag("route_id", a.Request.RouteID).
			AddTag("component", "planner").
			AddField("distance_km", round3(a.Request.DistanceKm)).
			AddField("duration_min", round3(a.Request.DurationMin)).
			AddField("turnaround_min", a.CompletionTime.Sub(a.StartTime).Minutes()).
			SetTime(a.StartTime)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	summary := write.NewPointWithMeasurement("dispatch_plan").
		AddTag("run_id", ev.RunID).
		AddTag("component", "planner").
		AddField("fleet_size", ev.FleetSize).
		AddField("scheduled", len(ev.Assignments)).
		AddField("unscheduled", len(ev.Unscheduled)).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000)).
		SetTime(ev.Day)
	return s.writeAPI.WritePoint(ctx, summary)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
