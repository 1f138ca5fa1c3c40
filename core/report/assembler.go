// Package report shapes dispatch output into the wire format: the optimal
// schedule, the simulation timeline and fleet-level KPIs.
package report

import (
	"fmt"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

// TimeLayout is the fixed textual timestamp format of all output:
// zero-padded, 24-hour, no timezone.
const TimeLayout = "2006-01-02 15:04:05"

// ScheduleEntry is one row of the optimal schedule.
type ScheduleEntry struct {
	RequestID          string `json:"request_id"`
	AssignedVehicleID  string `json:"assigned_vehicle_id"`
	HistoricalRouteID  string `json:"historical_route_id"`
	HistoricalDistance string `json:"historical_distance"`
	HistoricalDuration string `json:"historical_duration"`
	StartTime          string `json:"start_time"`
	CompletionTime     string `json:"completion_time"`
}

// StageTimes carries the six formatted stage timestamps.
type StageTimes struct {
	EnterOrigin string `json:"enter_origin"`
	StartFill   string `json:"start_fill"`
	Filled      string `json:"filled"`
	EnterDest   string `json:"enter_destination"`
	StartEmpty  string `json:"start_empty"`
	Emptied     string `json:"emptied"`
}

// TimelineEntry is one row of the simulation timeline.
type TimelineEntry struct {
	RequestID string     `json:"request_id"`
	VehicleID string     `json:"vehicle_id"`
	Stages    StageTimes `json:"stages"`
}

// ScheduleEntries formats assignments in processing order. Distance and
// duration keep two decimals; timestamps use TimeLayout.
func ScheduleEntries(assignments []model.Assignment) []ScheduleEntry {
	entries := make([]ScheduleEntry, len(assignments))
	for i, a := range assignments {
		entries[i] = ScheduleEntry{
			RequestID:          a.Request.ID,
			AssignedVehicleID:  a.VehicleID,
			HistoricalRouteID:  a.Request.RouteID,
			HistoricalDistance: fmt.Sprintf("%.2f", a.Request.DistanceKm),
			HistoricalDuration: fmt.Sprintf("%.2f", a.Request.DurationMin),
			StartTime:          formatTime(a.StartTime),
			CompletionTime:     formatTime(a.CompletionTime),
		}
	}
	return entries
}

// TimelineEntries formats stage timelines in processing order.
func TimelineEntries(timelines []model.StageTimeline) []TimelineEntry {
	entries := make([]TimelineEntry, len(timelines))
	for i, tl := range timelines {
		entries[i] = TimelineEntry{
			RequestID: tl.RequestID,
			VehicleID: tl.VehicleID,
			Stages: StageTimes{
				EnterOrigin: formatTime(tl.EnterOrigin),
				StartFill:   formatTime(tl.StartFill),
				Filled:      formatTime(tl.Filled),
				EnterDest:   formatTime(tl.EnterDest),
				StartEmpty:  formatTime(tl.StartEmpty),
				Emptied:     formatTime(tl.Emptied),
			},
		}
	}
	return entries
}

func formatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
