package sim

import (
	"sort"

	"simvator/src/types"
)

// computeMetrics aggregates the KPIs on demand. Passengers are visited in
// ascending id so floating-point sums are reproducible.
func computeMetrics(state *types.SimulationState) types.Metrics {
	ids := make([]int, 0, len(state.Passengers))
	for id := range state.Passengers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var floorWaits, arrivalWaits []int
	completed := 0
	for _, id := range ids {
		passenger := state.Passengers[id]
		if passenger.Status() != types.PassengerCompleted {
			continue
		}
		completed++
		floorWaits = append(floorWaits, passenger.FloorWaitTime())
		arrivalWaits = append(arrivalWaits, passenger.ArrivalWaitTime())
	}

	metrics := types.Metrics{
		CompletedPassengers: completed,
		TotalPassengers:     len(state.Passengers),
	}
	if metrics.TotalPassengers > 0 {
		metrics.CompletionRate = float64(completed) / float64(metrics.TotalPassengers)
	}
	metrics.AverageFloorWaitTime = mean(floorWaits)
	metrics.AverageArrivalWaitTime = mean(arrivalWaits)
	metrics.P95FloorWaitTime = trimmedMean95(floorWaits)
	metrics.P95ArrivalWaitTime = trimmedMean95(arrivalWaits)
	for _, elevator := range state.Elevators {
		metrics.TotalEnergyConsumption += elevator.EnergyConsumed
	}
	return metrics
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// trimmedMean95 is the wire-compatible "p95": the mean of the shortest 95%
// of the samples, i.e. a trimmed mean excluding the worst 5%, not a 95th
// order statistic.
func trimmedMean95(values []int) float64 {
	keep := len(values) * 95 / 100
	if keep == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	return mean(sorted[:keep])
}
