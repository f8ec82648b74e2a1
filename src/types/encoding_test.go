package types

import (
	"encoding/json"
	"testing"
)

func TestEnumWireValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"direction up", DirectionUp, `"up"`},
		{"direction down", DirectionDown, `"down"`},
		{"direction stopped", DirectionStopped, `"stopped"`},
		{"run stopped", RunStopped, `"stopped"`},
		{"run start_up", RunStartUp, `"start_up"`},
		{"run constant_speed", RunConstantSpeed, `"constant_speed"`},
		{"run start_down", RunStartDown, `"start_down"`},
		{"event type", EventElevatorMove, `"elevator_move"`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.value)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(raw) != tc.want {
				t.Errorf("marshal = %s, want %s", raw, tc.want)
			}
		})
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, dir := range []Direction{DirectionUp, DirectionDown, DirectionStopped} {
		raw, err := json.Marshal(dir)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var back Direction
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != dir {
			t.Errorf("round trip %v -> %s -> %v", dir, raw, back)
		}
	}
	var dir Direction
	if err := json.Unmarshal([]byte(`"sideways"`), &dir); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestEventPayloadKeys(t *testing.T) {
	event := NewElevatorMoveEvent(7, 0, 1.2, 1.4, DirectionUp, RunConstantSpeed)
	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Tick int            `json:"tick"`
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Tick != 7 || decoded.Type != "elevator_move" {
		t.Errorf("envelope = %+v", decoded)
	}
	for _, key := range []string{"elevator", "from_position", "to_position", "direction", "status"} {
		if _, ok := decoded.Data[key]; !ok {
			t.Errorf("missing data key %q in %s", key, raw)
		}
	}
	if decoded.Data["status"] != "constant_speed" || decoded.Data["direction"] != "up" {
		t.Errorf("enum payloads not strings: %v", decoded.Data)
	}
}

func TestPassengerStatusDerivation(t *testing.T) {
	p := &Passenger{ID: 1, Origin: 0, Destination: 3, ArriveTick: 2}
	if p.Status() != PassengerWaiting {
		t.Errorf("fresh passenger status = %v", p.Status())
	}
	p.PickupTick = 5
	if p.Status() != PassengerInElevator {
		t.Errorf("picked-up passenger status = %v", p.Status())
	}
	p.DropoffTick = 9
	if p.Status() != PassengerCompleted {
		t.Errorf("dropped-off passenger status = %v", p.Status())
	}
	p.Cancelled = true
	if p.Status() != PassengerCancelled {
		t.Errorf("cancelled passenger status = %v", p.Status())
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["status"] != "cancelled" {
		t.Errorf("serialized status = %v, want cancelled", decoded["status"])
	}
}

func TestPressedFloors(t *testing.T) {
	elevator := NewElevator(0, 4, 1.0)
	elevator.PassengerDestinations = map[int]int{1: 5, 2: 3, 3: 5}
	got := elevator.PressedFloors()
	want := []int{3, 5}
	if len(got) != len(want) {
		t.Fatalf("PressedFloors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PressedFloors() = %v, want %v", got, want)
		}
	}
}
