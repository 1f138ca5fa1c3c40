package report

import (
	"testing"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

func TestScheduleEntriesFormatting(t *testing.T) {
	start := time.Date(2025, 3, 14, 8, 5, 0, 0, time.UTC)
	assignments := []model.Assignment{
		{
			Request: model.Request{
				ID:          "r1",
				RouteID:     "route-9",
				DistanceKm:  12.5,
				DurationMin: 30,
				CreateDate:  start,
			},
			VehicleID:      "V1",
			StartTime:      start,
			CompletionTime: start.Add(30 * time.Minute),
		},
		{
			Request: model.Request{
				ID:          "r2",
				RouteID:     "route-10",
				DistanceKm:  7.126,
				DurationMin: 45.5,
				CreateDate:  start,
			},
			VehicleID:      "V2",
			StartTime:      start.Add(time.Minute),
			CompletionTime: start.Add(46 * time.Minute),
		},
	}
	entries := ScheduleEntries(assignments)
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.RequestID != "r1" || e.AssignedVehicleID != "V1" || e.HistoricalRouteID != "route-9" {
		t.Fatalf("bad entry %#v", e)
	}
	if e.HistoricalDistance != "12.50" {
		t.Fatalf("distance = %q", e.HistoricalDistance)
	}
	if e.HistoricalDuration != "30.00" {
		t.Fatalf("duration = %q", e.HistoricalDuration)
	}
	if e.StartTime != "2025-03-14 08:05:00" {
		t.Fatalf("start = %q", e.StartTime)
	}
	if e.CompletionTime != "2025-03-14 08:35:00" {
		t.Fatalf("completion = %q", e.CompletionTime)
	}
	// Rounding, not truncation, on the textual values.
	if entries[1].HistoricalDistance != "7.13" || entries[1].HistoricalDuration != "45.50" {
		t.Fatalf("second entry %q / %q", entries[1].HistoricalDistance, entries[1].HistoricalDuration)
	}
	// Processing order is preserved.
	if entries[1].RequestID != "r2" {
		t.Fatalf("order broken")
	}
}

func TestTimelineEntriesFormatting(t *testing.T) {
	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tl := model.StageTimeline{
		RequestID:   "r1",
		VehicleID:   "V1",
		EnterOrigin: base,
		StartFill:   base.Add(5 * time.Minute),
		Filled:      base.Add(35 * time.Minute),
		EnterDest:   base.Add(65 * time.Minute),
		StartEmpty:  base.Add(70 * time.Minute),
		Emptied:     base.Add(100 * time.Minute),
	}
	entries := TimelineEntries([]model.StageTimeline{tl})
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	got := entries[0].Stages
	if got.EnterOrigin != "2025-03-14 09:00:00" || got.StartFill != "2025-03-14 09:05:00" ||
		got.Filled != "2025-03-14 09:35:00" || got.EnterDest != "2025-03-14 10:05:00" ||
		got.StartEmpty != "2025-03-14 10:10:00" || got.Emptied != "2025-03-14 10:40:00" {
		t.Fatalf("bad stages %#v", got)
	}
}

func TestEntriesEmptyInput(t *testing.T) {
	if got := ScheduleEntries(nil); len(got) != 0 {
		t.Fatalf("schedule entries from nil: %v", got)
	}
	if got := TimelineEntries(nil); len(got) != 0 {
		t.Fatalf("timeline entries from nil: %v", got)
	}
}
