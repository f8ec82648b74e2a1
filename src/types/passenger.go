package types

import "encoding/json"

// Passenger lifecycle is carried by tick stamps: zero is the "not yet"
// sentinel for PickupTick and DropoffTick.
type Passenger struct {
	ID          int  `json:"id"`
	Origin      int  `json:"origin"`
	Destination int  `json:"destination"`
	ArriveTick  int  `json:"arrive_tick"`
	PickupTick  int  `json:"pickup_tick"`
	DropoffTick int  `json:"dropoff_tick"`
	ElevatorID  *int `json:"elevator_id"`
	Cancelled   bool `json:"cancelled"`
}

// Direction is the travel direction implied by origin and destination.
func (p *Passenger) Direction() Direction {
	if p.Destination > p.Origin {
		return DirectionUp
	}
	return DirectionDown
}

// Status derives the lifecycle stage; it is never stored.
func (p *Passenger) Status() PassengerStatus {
	switch {
	case p.Cancelled:
		return PassengerCancelled
	case p.DropoffTick > 0:
		return PassengerCompleted
	case p.PickupTick > 0:
		return PassengerInElevator
	default:
		return PassengerWaiting
	}
}

// FloorWaitTime is ticks from arrival to boarding, for completed journeys.
func (p *Passenger) FloorWaitTime() int {
	return p.PickupTick - p.ArriveTick
}

// ArrivalWaitTime is ticks from arrival to delivery at the destination.
func (p *Passenger) ArrivalWaitTime() int {
	return p.DropoffTick - p.ArriveTick
}

func (p *Passenger) MarshalJSON() ([]byte, error) {
	type alias Passenger
	return json.Marshal(struct {
		*alias
		Status PassengerStatus `json:"status"`
	}{(*alias)(p), p.Status()})
}
