package model

import "time"

// Assignment binds a request to the vehicle chosen for it. StartTime is the
// later of the vehicle's availability and the request creation time;
// CompletionTime is exactly StartTime plus the truncated historical duration.
// The jitter used to pick the vehicle is never recorded here.
type Assignment struct {
	Request        Request
	VehicleID      string
	StartTime      time.Time
	CompletionTime time.Time
}

// StageTimeline is the six-checkpoint operational trace derived from an
// assignment. Timestamps are non-decreasing by construction.
type StageTimeline struct {
	RequestID string
	VehicleID string

	EnterOrigin time.Time // vehicle enters the MGS
	StartFill   time.Time
	Filled      time.Time
	EnterDest   time.Time // vehicle enters the DBS
	StartEmpty  time.Time
	Emptied     time.Time
}
