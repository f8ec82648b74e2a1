package types

import "sort"

// Elevator is the full per-car state. NextTargetFloor is the queued target
// adopted once the current one is reached; nil means nothing queued.
type Elevator struct {
	ID                    int         `json:"id"`
	Position              Position    `json:"position"`
	NextTargetFloor       *int        `json:"next_target_floor"`
	Passengers            []int       `json:"passengers"`
	MaxCapacity           int         `json:"max_capacity"`
	RunStatus             RunStatus   `json:"run_status"`
	LastTickDirection     Direction   `json:"last_tick_direction"`
	PassengerDestinations map[int]int `json:"passenger_destinations"`
	EnergyConsumed        float64     `json:"energy_consumed"`
	EnergyRate            float64     `json:"energy_rate"`

	// IdleNotified suppresses repeated IDLE emissions while the elevator
	// sits without work; cleared whenever it receives a target.
	IdleNotified bool `json:"-"`
}

func NewElevator(id, maxCapacity int, energyRate float64) *Elevator {
	return &Elevator{
		ID:                    id,
		MaxCapacity:           maxCapacity,
		EnergyRate:            energyRate,
		Passengers:            []int{},
		PassengerDestinations: map[int]int{},
	}
}

// TargetDirection is the vertical direction towards the current target.
func (e *Elevator) TargetDirection() Direction {
	return e.Position.TargetDirection()
}

// IsIdle reports a stopped elevator with no current and no queued target.
func (e *Elevator) IsIdle() bool {
	return e.RunStatus == RunStopped &&
		e.NextTargetFloor == nil &&
		e.TargetDirection() == DirectionStopped
}

func (e *Elevator) IsFull() bool {
	return len(e.Passengers) >= e.MaxCapacity
}

func (e *Elevator) LoadFactor() float64 {
	if e.MaxCapacity == 0 {
		return 0
	}
	return float64(len(e.Passengers)) / float64(e.MaxCapacity)
}

// PressedFloors returns the distinct destination floors of the passengers
// on board, ascending. This backs the in-car indicator lights.
func (e *Elevator) PressedFloors() []int {
	seen := map[int]bool{}
	for _, floor := range e.PassengerDestinations {
		seen[floor] = true
	}
	floors := make([]int, 0, len(seen))
	for floor := range seen {
		floors = append(floors, floor)
	}
	sort.Ints(floors)
	return floors
}

// RemovePassenger drops a passenger id from the car, keeping order.
func (e *Elevator) RemovePassenger(id int) {
	for i, pid := range e.Passengers {
		if pid == id {
			e.Passengers = append(e.Passengers[:i], e.Passengers[i+1:]...)
			break
		}
	}
	delete(e.PassengerDestinations, id)
}
