// Package ingest defines how request records reach the planner. Sources load
// the full dataset; scope filtering narrows it to one date, origin site and
// request-id list the way the boundary contract requires.
package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

// Boundary errors surfaced by scope filtering. The transport layer maps them
// to response codes; the planner itself never sees an empty scope as a
// failure.
var (
	ErrNoDataForDate      = errors.New("no data found for the selected date")
	ErrNoDataForSite      = errors.New("no data found for the selected site and date")
	ErrNoMatchingRequests = errors.New("no requests found with the provided ids")
)

// Dataset is a fully loaded, normalized request table plus the fleet derived
// from it. The fleet covers the whole dataset, not just any one scope: a
// vehicle that drove last week is still dispatchable today.
type Dataset struct {
	Requests []model.Request
	Fleet    model.Fleet
}

// Source loads a dataset from a backing store.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}

// Scope narrows a dataset to one planning run.
type Scope struct {
	Date       time.Time
	OriginSite string
	RequestIDs []string
}

// Filter applies the scope in three narrowing steps, returning a distinct
// error for the step that came up empty. Duplicate request ids keep their
// first occurrence.
func (d Dataset) Filter(scope Scope) ([]model.Request, error) {
	byDate := make([]model.Request, 0, len(d.Requests))
	for _, r := range d.Requests {
		if sameDay(r.CreateDate, scope.Date) {
			byDate = append(byDate, r)
		}
	}
	if len(byDate) == 0 {
		return nil, ErrNoDataForDate
	}

	bySite := byDate[:0:0]
	for _, r := range byDate {
		if r.OriginSite == scope.OriginSite {
			bySite = append(bySite, r)
		}
	}
	if len(bySite) == 0 {
		return nil, ErrNoDataForSite
	}

	wanted := make(map[string]struct{}, len(scope.RequestIDs))
	for _, id := range scope.RequestIDs {
		wanted[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(wanted))
	matched := make([]model.Request, 0, len(wanted))
	for _, r := range bySite {
		if _, ok := wanted[r.ID]; !ok {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		matched = append(matched, r)
	}
	if len(matched) == 0 {
		return nil, ErrNoMatchingRequests
	}
	return matched, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
