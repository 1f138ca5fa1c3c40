package model

import (
	"fmt"
	"time"
)

// Request represents one transport demand between an origin gas station (MGS)
// and a daughter booster station (DBS). Fields are fixed and already
// normalized by the ingestion layer; the core never sees raw column names.
type Request struct {
	ID          string
	RouteID     string
	OriginSite  string // MGS
	DestSite    string // DBS
	CreateDate  time.Time
	DistanceKm  float64
	DurationMin float64 // historical trip duration in minutes
}

// DurationMinutes returns the trip duration truncated to whole minutes,
// which is the value all scheduling math operates on.
func (r Request) DurationMinutes() int {
	return int(r.DurationMin)
}

// Duration returns the truncated trip duration as a time.Duration.
func (r Request) Duration() time.Duration {
	return time.Duration(r.DurationMinutes()) * time.Minute
}

// Validate checks that the request carries sane values. Ingestion is expected
// to reject bad rows before they reach the dispatcher.
func (r Request) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("request id is required")
	}
	if r.CreateDate.IsZero() {
		return fmt.Errorf("request %s: create date is required", r.ID)
	}
	if r.DistanceKm < 0 {
		return fmt.Errorf("request %s: distance must be non-negative", r.ID)
	}
	if r.DurationMin < 0 {
		return fmt.Errorf("request %s: duration must be non-negative", r.ID)
	}
	return nil
}
