package report

import (
	"gonum.org/v1/gonum/stat"

	"github.com/gasgrid/lcv-dispatch/core/model"
)

// FleetKPIs summarizes vehicle load for one run. Busy minutes are the sum of
// truncated trip durations assigned to a vehicle; idle fleet members count as
// zero so the statistics reflect the whole fleet, not just the winners.
type FleetKPIs struct {
	FleetSize       int     `json:"fleet_size"`
	VehiclesUsed    int     `json:"vehicles_used"`
	MeanBusyMinutes float64 `json:"mean_busy_minutes"`
	StdBusyMinutes  float64 `json:"std_busy_minutes"`
	MaxBusyMinutes  float64 `json:"max_busy_minutes"`
	// Utilization is the fraction of the fleet that received at least one
	// assignment.
	Utilization float64 `json:"utilization"`
}

// ComputeFleetKPIs derives load statistics from a finished dispatch pass.
func ComputeFleetKPIs(assignments []model.Assignment, fleet model.Fleet) FleetKPIs {
	kpis := FleetKPIs{FleetSize: len(fleet)}
	if len(fleet) == 0 {
		return kpis
	}

	busyByVehicle := make(map[string]float64, len(fleet))
	for _, a := range assignments {
		busyByVehicle[a.VehicleID] += float64(a.Request.DurationMinutes())
	}
	kpis.VehiclesUsed = len(busyByVehicle)
	kpis.Utilization = float64(kpis.VehiclesUsed) / float64(len(fleet))

	busy := make([]float64, len(fleet))
	for i, id := range fleet {
		busy[i] = busyByVehicle[id]
		if busy[i] > kpis.MaxBusyMinutes {
			kpis.MaxBusyMinutes = busy[i]
		}
	}
	kpis.MeanBusyMinutes = stat.Mean(busy, nil)
	if len(busy) > 1 {
		kpis.StdBusyMinutes = stat.StdDev(busy, nil)
	}
	return kpis
}
