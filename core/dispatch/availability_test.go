package dispatch

import (
	"testing"
	"time"
)

func TestAvailabilityDefaultsToDayStart(t *testing.T) {
	day := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	tr := NewAvailabilityTracker(day)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !tr.Baseline().Equal(want) {
		t.Fatalf("baseline = %v, want %v", tr.Baseline(), want)
	}
	if got := tr.Get("LCV-1"); !got.Equal(want) {
		t.Fatalf("unseen vehicle = %v, want baseline %v", got, want)
	}
}

func TestAvailabilitySetOverwrites(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	tr := NewAvailabilityTracker(day)
	first := day.Add(2 * time.Hour)
	second := day.Add(5 * time.Hour)
	tr.Set("LCV-1", first)
	if got := tr.Get("LCV-1"); !got.Equal(first) {
		t.Fatalf("after first set: %v, want %v", got, first)
	}
	tr.Set("LCV-1", second)
	if got := tr.Get("LCV-1"); !got.Equal(second) {
		t.Fatalf("after second set: %v, want %v", got, second)
	}
	// Other vehicles stay at the baseline.
	if got := tr.Get("LCV-2"); !got.Equal(day) {
		t.Fatalf("other vehicle moved: %v", got)
	}
}
