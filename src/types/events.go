package types

import (
	"encoding/json"
	"fmt"
)

// EventType enumerates the journal event kinds. Wire values are the
// lowercase snake_case names.
type EventType int

const (
	EventUpButtonPressed EventType = iota
	EventDownButtonPressed
	EventPassingFloor
	EventStoppedAtFloor
	EventElevatorApproaching
	EventIdle
	EventPassengerBoard
	EventPassengerAlight
	EventElevatorMove
)

var eventTypeNames = map[EventType]string{
	EventUpButtonPressed:     "up_button_pressed",
	EventDownButtonPressed:   "down_button_pressed",
	EventPassingFloor:        "passing_floor",
	EventStoppedAtFloor:      "stopped_at_floor",
	EventElevatorApproaching: "elevator_approaching",
	EventIdle:                "idle",
	EventPassengerBoard:      "passenger_board",
	EventPassengerAlight:     "passenger_alight",
	EventElevatorMove:        "elevator_move",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for typ, name := range eventTypeNames {
		if name == s {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown event type %q", s)
}

// SimulationEvent is one journal entry. Data keys are part of the external
// contract and are fixed per event type.
type SimulationEvent struct {
	Tick int            `json:"tick"`
	Type EventType      `json:"type"`
	Data map[string]any `json:"data"`
}

func NewButtonPressedEvent(tick int, direction Direction, floor, passenger int) SimulationEvent {
	typ := EventUpButtonPressed
	if direction == DirectionDown {
		typ = EventDownButtonPressed
	}
	return SimulationEvent{Tick: tick, Type: typ, Data: map[string]any{
		"floor":     floor,
		"passenger": passenger,
	}}
}

func NewPassingFloorEvent(tick, elevator, floor int, direction Direction) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventPassingFloor, Data: map[string]any{
		"elevator":  elevator,
		"floor":     floor,
		"direction": direction.String(),
	}}
}

func NewStoppedAtFloorEvent(tick, elevator, floor int, reason string) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventStoppedAtFloor, Data: map[string]any{
		"elevator": elevator,
		"floor":    floor,
		"reason":   reason,
	}}
}

func NewElevatorApproachingEvent(tick, elevator, floor int, direction Direction) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventElevatorApproaching, Data: map[string]any{
		"elevator":  elevator,
		"floor":     floor,
		"direction": direction.String(),
	}}
}

func NewIdleEvent(tick, elevator, floor int) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventIdle, Data: map[string]any{
		"elevator": elevator,
		"floor":    floor,
	}}
}

func NewPassengerBoardEvent(tick, elevator, floor, passenger int) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventPassengerBoard, Data: map[string]any{
		"elevator":  elevator,
		"floor":     floor,
		"passenger": passenger,
	}}
}

func NewPassengerAlightEvent(tick, elevator, floor, passenger int) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventPassengerAlight, Data: map[string]any{
		"elevator":  elevator,
		"floor":     floor,
		"passenger": passenger,
	}}
}

func NewElevatorMoveEvent(tick, elevator int, from, to float64, direction Direction, status RunStatus) SimulationEvent {
	return SimulationEvent{Tick: tick, Type: EventElevatorMove, Data: map[string]any{
		"elevator":      elevator,
		"from_position": from,
		"to_position":   to,
		"direction":     direction.String(),
		"status":        status.String(),
	}}
}
