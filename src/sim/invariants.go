package sim

import (
	"fmt"

	"simvator/src/config"
	"simvator/src/types"
)

// checkInvariants validates the cross-entity invariants after a tick. Any
// violation is a programming error: the running Step call aborts rather
// than return partial output.
func (e *Engine) checkInvariants() error {
	state := e.state
	floors := state.FloorsCount()

	queued := map[int]int{}
	for _, floor := range state.Floors {
		for _, pid := range floor.UpQueue {
			queued[pid]++
		}
		for _, pid := range floor.DownQueue {
			queued[pid]++
		}
	}

	carried := map[int]int{}
	inCars := 0
	for _, elevator := range state.Elevators {
		if len(elevator.Passengers) > elevator.MaxCapacity {
			return fmt.Errorf("elevator %d over capacity (%d/%d): %w",
				elevator.ID, len(elevator.Passengers), elevator.MaxCapacity, ErrInternal)
		}
		if elevator.Position.CurrentFloor < 0 || elevator.Position.CurrentFloor >= floors ||
			elevator.Position.TargetFloor < 0 || elevator.Position.TargetFloor >= floors {
			return fmt.Errorf("elevator %d out of floor range: %w", elevator.ID, ErrInternal)
		}
		if elevator.Position.FloorUpPosition < 0 || elevator.Position.FloorUpPosition >= config.FloorUnits {
			return fmt.Errorf("elevator %d position not normalized (%d): %w",
				elevator.ID, elevator.Position.FloorUpPosition, ErrInternal)
		}
		inCars += len(elevator.Passengers)
		for _, pid := range elevator.Passengers {
			carried[pid]++
		}
	}

	waiting, riding, settled := 0, 0, 0
	for id, passenger := range state.Passengers {
		switch passenger.Status() {
		case types.PassengerWaiting:
			waiting++
			if queued[id] != 1 {
				return fmt.Errorf("waiting passenger %d queued %d times: %w", id, queued[id], ErrInternal)
			}
			wantUp := passenger.Destination > passenger.Origin
			queue := state.Floors[passenger.Origin].DownQueue
			if wantUp {
				queue = state.Floors[passenger.Origin].UpQueue
			}
			if !containsID(queue, id) {
				return fmt.Errorf("waiting passenger %d not in its direction queue: %w", id, ErrInternal)
			}
		case types.PassengerInElevator:
			riding++
			if carried[id] != 1 {
				return fmt.Errorf("riding passenger %d carried %d times: %w", id, carried[id], ErrInternal)
			}
			if passenger.ElevatorID == nil ||
				!containsID(state.Elevators[*passenger.ElevatorID].Passengers, id) {
				return fmt.Errorf("riding passenger %d missing from its car: %w", id, ErrInternal)
			}
		default:
			settled++
		}
	}

	if inCars != riding {
		return fmt.Errorf("car occupancy %d != riding passengers %d: %w", inCars, riding, ErrInternal)
	}
	if inCars+waiting+settled != len(state.Passengers) {
		return fmt.Errorf("passenger conservation broken (%d+%d+%d != %d): %w",
			inCars, waiting, settled, len(state.Passengers), ErrInternal)
	}
	return nil
}

func containsID(queue []int, id int) bool {
	for _, pid := range queue {
		if pid == id {
			return true
		}
	}
	return false
}
