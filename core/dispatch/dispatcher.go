package dispatch

import (
	"math/rand"
	"sort"
	"time"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

// DefaultJitterMinutes is the upper bound of the decision jitter added to
// candidate completion times.
const DefaultJitterMinutes = 5.0

// GreedyDispatcher assigns each request to the vehicle whose jittered
// completion time is smallest. The jitter models minor unpredictability in
// real travel and service time; it only breaks the decision and is discarded
// afterwards, so the recorded schedule stays deterministic given the
// assignment itself. Complexity is O(requests x vehicles) with no
// backtracking or reassignment.
type GreedyDispatcher struct {
	// JitterMinutes bounds the uniform jitter drawn per candidate.
	// Zero means DefaultJitterMinutes.
	JitterMinutes float64
}

// Result holds the outcome of one dispatch pass.
type Result struct {
	Assignments []model.Assignment
	// Unscheduled lists request ids that no vehicle could take, in
	// processing order. It is only non-empty when the fleet is empty.
	Unscheduled []string
}

// Dispatch processes requests in ascending creation-time order (stable on
// ties) and greedily binds each one to a vehicle, updating the tracker with
// the non-jittered completion time of the winner. The caller owns the random
// source; a fresh one per run keeps concurrent runs isolated and tests
// reproducible.
func (d GreedyDispatcher) Dispatch(requests []model.Request, fleet model.Fleet, tracker *AvailabilityTracker, rng *rand.Rand) Result {
	jitter := d.JitterMinutes
	if jitter == 0 {
		jitter = DefaultJitterMinutes
	}

	ordered := make([]model.Request, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreateDate.Before(ordered[j].CreateDate)
	})

	res := Result{Assignments: make([]model.Assignment, 0, len(ordered))}
	for _, req := range ordered {
		var (
			bestVehicle    string
			bestStart      time.Time
			bestCompletion time.Time
			bestScored     time.Time
			found          bool
		)
		for _, vehicleID := range fleet {
			start := tracker.Get(vehicleID)
			if req.CreateDate.After(start) {
				start = req.CreateDate
			}
			completion := start.Add(req.Duration())
			scored := completion.Add(time.Duration(rng.Float64() * jitter * float64(time.Minute)))
			// Strict comparison: on an exact tie the earliest vehicle in
			// iteration order keeps the win.
			if !found || scored.Before(bestScored) {
				found = true
				bestVehicle = vehicleID
				bestStart = start
				bestCompletion = completion
				bestScored = scored
			}
		}
		if !found {
			res.Unscheduled = append(res.Unscheduled, req.ID)
			continue
		}
		res.Assignments = append(res.Assignments, model.Assignment{
			Request:        req,
			VehicleID:      bestVehicle,
			StartTime:      bestStart,
			CompletionTime: bestCompletion,
		})
		tracker.Set(bestVehicle, bestCompletion)
	}
	return res
}
