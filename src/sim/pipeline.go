package sim

import (
	"log/slog"
	"sort"

	"simvator/src/types"
)

// tick runs one pipeline iteration: Phase A status update, Phase B
// arrivals, Phase C movement, Phase D stops. Elevators are always visited
// in ascending id so event order is reproducible.
func (e *Engine) tick() {
	state := e.state
	state.Tick++

	// Phase A: status transitions and target adoption.
	for _, elevator := range state.Elevators {
		e.updateStatus(elevator)
	}

	// Phase B: materialize due traffic entries.
	e.processArrivals()

	// Phase C: movement. The observed direction per elevator feeds the
	// last-tick-direction update in Phase D.
	moved := make([]types.Direction, len(state.Elevators))
	for i, elevator := range state.Elevators {
		moved[i] = e.moveElevator(elevator)
	}

	// Phase D: stops. Alight, board, idle notification.
	for i, elevator := range state.Elevators {
		if elevator.RunStatus == types.RunStopped {
			e.handleStop(elevator)
		}
		elevator.LastTickDirection = moved[i]
	}

	if e.duration > 0 && state.Tick >= e.duration {
		e.forceComplete()
	}
}

// processArrivals pops every traffic entry due at or before the current
// tick, creates the passenger and presses the hall button.
func (e *Engine) processArrivals() {
	state := e.state
	for len(e.queue) > 0 && e.queue[0].Tick <= state.Tick {
		entry := e.queue[0]
		e.queue = e.queue[1:]

		passenger := &types.Passenger{
			ID:          entry.ID,
			Origin:      entry.Origin,
			Destination: entry.Destination,
			ArriveTick:  state.Tick,
		}
		state.Passengers[passenger.ID] = passenger

		direction := passenger.Direction()
		state.Floors[passenger.Origin].Enqueue(passenger.ID, direction)
		state.Events = append(state.Events,
			types.NewButtonPressedEvent(state.Tick, direction, passenger.Origin, passenger.ID))
		slog.Debug("passenger arrived",
			"passenger", passenger.ID,
			"floor", passenger.Origin,
			"direction", direction)
	}
}

// moveElevator is Phase C for one elevator. Returns the direction it
// actually moved, or stopped. The advance is clamped to the remaining
// distance so a retargeted car can never overshoot its floor.
func (e *Engine) moveElevator(elevator *types.Elevator) types.Direction {
	state := e.state
	direction := elevator.TargetDirection()
	if direction == types.DirectionStopped {
		return types.DirectionStopped
	}
	speed := elevator.RunStatus.Speed()
	if speed == 0 {
		return types.DirectionStopped
	}
	if remaining := elevator.Position.DistanceToTarget(); speed > remaining {
		speed = remaining
	}

	oldFloor := elevator.Position.CurrentFloor
	from := elevator.Position.CurrentFloorFloat()
	delta := speed
	if direction == types.DirectionDown {
		delta = -speed
	}
	elevator.Position.Advance(delta)
	to := elevator.Position.CurrentFloorFloat()

	state.Events = append(state.Events,
		types.NewElevatorMoveEvent(state.Tick, elevator.ID, from, to, direction, elevator.RunStatus))
	elevator.EnergyConsumed += elevator.EnergyRate

	// Deceleration is armed one unit out and takes effect next tick; this
	// tick already moved at constant speed.
	if elevator.RunStatus == types.RunConstantSpeed && elevator.Position.DistanceToTarget() == 1 {
		elevator.RunStatus = types.RunStartDown
	}

	if elevator.Position.CurrentFloor != oldFloor &&
		elevator.Position.CurrentFloor != elevator.Position.TargetFloor {
		state.Events = append(state.Events,
			types.NewPassingFloorEvent(state.Tick, elevator.ID, elevator.Position.CurrentFloor, direction))
	}

	if elevator.RunStatus == types.RunStartDown &&
		!elevator.Position.IsAtTarget() &&
		elevator.Position.DistanceToTarget() <= 1 {
		state.Events = append(state.Events,
			types.NewElevatorApproachingEvent(state.Tick, elevator.ID, elevator.Position.TargetFloor, direction))
	}

	if elevator.Position.IsAtTarget() {
		elevator.RunStatus = types.RunStopped
		state.Events = append(state.Events,
			types.NewStoppedAtFloorEvent(state.Tick, elevator.ID, elevator.Position.CurrentFloor, "move_reached"))
		slog.Debug("stopped at floor",
			"elevator", elevator.ID,
			"floor", elevator.Position.CurrentFloor)
	}
	return direction
}

// handleStop is Phase D for one stopped elevator: alight passengers at
// their destination, board from the floor queues, and raise a single IDLE
// notification when the car runs out of work.
func (e *Engine) handleStop(elevator *types.Elevator) {
	state := e.state
	floor := elevator.Position.CurrentFloor

	// Alight in car order.
	onBoard := append([]int(nil), elevator.Passengers...)
	for _, pid := range onBoard {
		passenger := state.Passengers[pid]
		if passenger.Destination != floor {
			continue
		}
		elevator.RemovePassenger(pid)
		passenger.DropoffTick = state.Tick
		state.Events = append(state.Events,
			types.NewPassengerAlightEvent(state.Tick, elevator.ID, floor, pid))
	}

	// Board from the queue matching the last tick's travel direction, or
	// both queues when the car is idle with nothing queued.
	if elevator.IsIdle() {
		e.boardPassengers(elevator, types.DirectionUp)
		e.boardPassengers(elevator, types.DirectionDown)
	} else if elevator.LastTickDirection != types.DirectionStopped {
		e.boardPassengers(elevator, elevator.LastTickDirection)
	}

	if elevator.TargetDirection() == types.DirectionStopped &&
		elevator.NextTargetFloor == nil &&
		!elevator.IdleNotified {
		state.Events = append(state.Events, types.NewIdleEvent(state.Tick, elevator.ID, floor))
		elevator.IdleNotified = true
	}
}

// boardPassengers moves waiting passengers from one directional queue into
// the car, FIFO, while capacity allows.
func (e *Engine) boardPassengers(elevator *types.Elevator, direction types.Direction) {
	state := e.state
	floor := state.Floors[elevator.Position.CurrentFloor]
	queue := &floor.UpQueue
	if direction == types.DirectionDown {
		queue = &floor.DownQueue
	}

	for len(*queue) > 0 && !elevator.IsFull() {
		pid := (*queue)[0]
		*queue = (*queue)[1:]

		passenger := state.Passengers[pid]
		elevator.Passengers = append(elevator.Passengers, pid)
		elevator.PassengerDestinations[pid] = passenger.Destination
		passenger.PickupTick = state.Tick
		carID := elevator.ID
		passenger.ElevatorID = &carID
		state.Events = append(state.Events,
			types.NewPassengerBoardEvent(state.Tick, elevator.ID, floor.FloorNumber, pid))
		slog.Debug("passenger boarded",
			"passenger", pid,
			"elevator", elevator.ID,
			"floor", floor.FloorNumber)
	}
}

// forceComplete cancels every unfinished passenger once the scenario
// duration is reached. Cancelled passengers leave the queues and cars so
// the conservation accounting stays exact; they keep their tick stamps but
// are excluded from wait statistics.
func (e *Engine) forceComplete() {
	state := e.state

	ids := make([]int, 0, len(state.Passengers))
	for id := range state.Passengers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	cancelled := 0
	for _, id := range ids {
		passenger := state.Passengers[id]
		if passenger.DropoffTick != 0 {
			continue
		}
		passenger.Cancelled = true
		passenger.DropoffTick = state.Tick
		cancelled++
	}
	if cancelled == 0 {
		return
	}

	for _, floor := range state.Floors {
		floor.UpQueue = filterActive(state, floor.UpQueue)
		floor.DownQueue = filterActive(state, floor.DownQueue)
	}
	for _, elevator := range state.Elevators {
		kept := elevator.Passengers[:0]
		for _, pid := range elevator.Passengers {
			if state.Passengers[pid].Cancelled {
				delete(elevator.PassengerDestinations, pid)
				continue
			}
			kept = append(kept, pid)
		}
		elevator.Passengers = kept
	}
	slog.Info("scenario duration reached, cancelling unfinished passengers",
		"tick", state.Tick,
		"cancelled", cancelled)
}

func filterActive(state *types.SimulationState, queue []int) []int {
	kept := queue[:0]
	for _, pid := range queue {
		if !state.Passengers[pid].Cancelled {
			kept = append(kept, pid)
		}
	}
	return kept
}
