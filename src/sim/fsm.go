package sim

import (
	"log/slog"

	"simvator/src/types"
)

// updateStatus is Phase A for one elevator: adopt a queued target if the
// current run is finished, then advance the speed phase. StartUp/StartDown
// are acceleration/deceleration phases; vertical direction lives only in
// the position's target direction.
func (e *Engine) updateStatus(elevator *types.Elevator) {
	if elevator.TargetDirection() == types.DirectionStopped {
		if elevator.NextTargetFloor == nil {
			return
		}
		e.adoptNextTarget(elevator)
	}

	switch elevator.RunStatus {
	case types.RunStopped:
		if elevator.TargetDirection() != types.DirectionStopped {
			elevator.RunStatus = types.RunStartUp
			elevator.IdleNotified = false
		}
	case types.RunStartUp:
		elevator.RunStatus = types.RunConstantSpeed
	case types.RunStartDown:
		// A retarget while decelerating can leave the stop far away again;
		// re-enter constant speed and decelerate on a fresh approach.
		if elevator.Position.DistanceToTarget() > 1 {
			elevator.RunStatus = types.RunConstantSpeed
		}
	}
}

// adoptNextTarget promotes the queued floor to the live target and admits
// waiting passengers whose travel direction matches the new run. This is
// the idle-turnaround boarding: a stopped car picking up a new assignment
// while people are still standing at its floor.
func (e *Engine) adoptNextTarget(elevator *types.Elevator) {
	elevator.Position.TargetFloor = *elevator.NextTargetFloor
	elevator.NextTargetFloor = nil
	elevator.IdleNotified = false
	slog.Debug("target adopted",
		"elevator", elevator.ID,
		"target", elevator.Position.TargetFloor)

	newDirection := elevator.TargetDirection()
	if newDirection == types.DirectionStopped {
		return
	}
	e.boardPassengers(elevator, newDirection)
}
