// Package simulation expands assignments into the six-stage operational
// timeline: enter origin, start filling, filled, enter destination, start
// emptying, emptied.
package simulation

import (
	"math/rand"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

// Stage gap bounds in minutes, inclusive. Site entry to fill/empty start
// takes 4-6 minutes; a full fill or empty cycle takes 28-32.
const (
	minEntryGapMin    = 4
	maxEntryGapMin    = 6
	minTransferGapMin = 28
	maxTransferGapMin = 32
)

// Expand derives the stage timeline for one assignment. Each gap draw is
// independent; the origin-to-destination leg reuses the request's historical
// duration instead of a new draw, so the timeline stays consistent with the
// recorded schedule.
func Expand(a model.Assignment, rng *rand.Rand) model.StageTimeline {
	tl := model.StageTimeline{
		RequestID: a.Request.ID,
		VehicleID: a.VehicleID,
	}
	tl.EnterOrigin = a.StartTime
	tl.StartFill = tl.EnterOrigin.Add(randGap(rng, minEntryGapMin, maxEntryGapMin))
	tl.Filled = tl.StartFill.Add(randGap(rng, minTransferGapMin, maxTransferGapMin))
	tl.EnterDest = tl.Filled.Add(a.Request.Duration())
	tl.StartEmpty = tl.EnterDest.Add(randGap(rng, minEntryGapMin, maxEntryGapMin))
	tl.Emptied = tl.StartEmpty.Add(randGap(rng, minTransferGapMin, maxTransferGapMin))
	return tl
}

// ExpandAll expands every assignment in order, one timeline each.
func ExpandAll(assignments []model.Assignment, rng *rand.Rand) []model.StageTimeline {
	timelines := make([]model.StageTimeline, len(assignments))
	for i, a := range assignments {
		timelines[i] = Expand(a, rng)
	}
	return timelines
}

// randGap draws an integer minute count uniformly from [lo, hi].
func randGap(rng *rand.Rand, lo, hi int) time.Duration {
	return time.Duration(lo+rng.Intn(hi-lo+1)) * time.Minute
}
