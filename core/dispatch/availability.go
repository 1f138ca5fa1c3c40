package dispatch

import "time"

// AvailabilityTracker holds the next-free timestamp of every vehicle for one
// planning run. Vehicles never seen default to the start-of-day baseline.
// Once set, a vehicle's value must not move backwards; the dispatcher only
// ever writes completion times, which are monotone by construction.
type AvailabilityTracker struct {
	baseline time.Time
	nextFree map[string]time.Time
}

// NewAvailabilityTracker creates a tracker with every vehicle free at
// midnight of the given scheduling date.
func NewAvailabilityTracker(day time.Time) *AvailabilityTracker {
	base := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return &AvailabilityTracker{
		baseline: base,
		nextFree: make(map[string]time.Time),
	}
}

// Baseline returns the start-of-day timestamp used for unseen vehicles.
func (t *AvailabilityTracker) Baseline() time.Time {
	return t.baseline
}

// Get returns the current next-free time for the vehicle.
func (t *AvailabilityTracker) Get(vehicleID string) time.Time {
	if ts, ok := t.nextFree[vehicleID]; ok {
		return ts
	}
	return t.baseline
}

// Set overwrites the next-free time for the vehicle.
func (t *AvailabilityTracker) Set(vehicleID string, ts time.Time) {
	t.nextFree[vehicleID] = ts
}
