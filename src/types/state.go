package types

// Metrics are aggregate KPIs over the current simulation. The p95 values
// are trimmed means excluding the worst 5% of wait times, kept for wire
// compatibility with the existing consumers.
type Metrics struct {
	CompletedPassengers    int     `json:"completed_passengers"`
	TotalPassengers        int     `json:"total_passengers"`
	CompletionRate         float64 `json:"completion_rate"`
	AverageFloorWaitTime   float64 `json:"average_floor_wait_time"`
	AverageArrivalWaitTime float64 `json:"average_arrival_wait_time"`
	P95FloorWaitTime       float64 `json:"p95_floor_wait_time"`
	P95ArrivalWaitTime     float64 `json:"p95_arrival_wait_time"`
	TotalEnergyConsumption float64 `json:"total_energy_consumption"`
}

// SimulationState is the whole world. It is owned by the engine and only
// ever mutated under the engine mutex; callers get deep copies.
type SimulationState struct {
	Tick       int                `json:"tick"`
	Elevators  []*Elevator        `json:"elevators"`
	Floors     []*Floor           `json:"floors"`
	Passengers map[int]*Passenger `json:"passengers"`
	Events     []SimulationEvent  `json:"events"`
	Metrics    Metrics            `json:"metrics"`
}

// NewSimulationState builds the initial world: all elevators at floor 0,
// stopped, empty queues, empty journal.
func NewSimulationState(floorsCount, elevatorsCount, maxCapacity int, energyRates []float64) *SimulationState {
	state := &SimulationState{
		Elevators:  make([]*Elevator, 0, elevatorsCount),
		Floors:     make([]*Floor, 0, floorsCount),
		Passengers: map[int]*Passenger{},
		Events:     []SimulationEvent{},
	}
	for id := 0; id < elevatorsCount; id++ {
		rate := 1.0
		if id < len(energyRates) {
			rate = energyRates[id]
		}
		state.Elevators = append(state.Elevators, NewElevator(id, maxCapacity, rate))
	}
	for number := 0; number < floorsCount; number++ {
		state.Floors = append(state.Floors, NewFloor(number))
	}
	return state
}

// FloorsCount returns the number of floors in the building.
func (s *SimulationState) FloorsCount() int {
	return len(s.Floors)
}
