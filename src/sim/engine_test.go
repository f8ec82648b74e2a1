package sim

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"simvator/src/traffic"
	"simvator/src/types"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func testBuilding(floors, elevators, capacity, duration int) traffic.Building {
	return traffic.Building{
		Floors:           floors,
		Elevators:        elevators,
		ElevatorCapacity: capacity,
		Scenario:         "test",
		Duration:         duration,
	}
}

func newTestEngine(t *testing.T, building traffic.Building, entries []traffic.Entry) *Engine {
	t.Helper()
	pattern, err := traffic.NewPattern("test", building, entries)
	if err != nil {
		t.Fatalf("NewPattern: %v", err)
	}
	source, err := traffic.NewSource([]*traffic.Pattern{pattern})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	return New(source)
}

func mustStep(t *testing.T, e *Engine, ticks int) []types.SimulationEvent {
	t.Helper()
	_, events, err := e.Step(ticks)
	if err != nil {
		t.Fatalf("Step(%d): %v", ticks, err)
	}
	return events
}

func TestStepRejectsNonPositiveTicks(t *testing.T) {
	engine := newTestEngine(t, testBuilding(4, 1, 4, 0), nil)
	for _, ticks := range []int{0, -1} {
		if _, _, err := engine.Step(ticks); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Step(%d) = %v, want ErrInvalidArgument", ticks, err)
		}
	}
}

func TestGoToFloorValidation(t *testing.T) {
	engine := newTestEngine(t, testBuilding(4, 2, 4, 0), nil)
	if err := engine.GoToFloor(5, 1, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown elevator = %v, want ErrNotFound", err)
	}
	if err := engine.GoToFloor(-1, 1, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("negative elevator = %v, want ErrNotFound", err)
	}
	if err := engine.GoToFloor(0, 4, false); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("out-of-range floor = %v, want ErrInvalidArgument", err)
	}
	if err := engine.GoToFloor(0, -1, true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative floor = %v, want ErrInvalidArgument", err)
	}

	// Failed commands must not mutate state.
	state, err := engine.GetState()
	if err != nil {
		t.Fatal(err)
	}
	for _, elevator := range state.Elevators {
		if elevator.NextTargetFloor != nil || elevator.Position.TargetFloor != 0 {
			t.Errorf("elevator %d mutated by rejected command", elevator.ID)
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	engine := newTestEngine(t, testBuilding(4, 1, 4, 0),
		[]traffic.Entry{{ID: 1, Origin: 0, Destination: 3, Tick: 0}})
	mustStep(t, engine, 1)

	first, err := engine.GetState()
	if err != nil {
		t.Fatal(err)
	}
	// Tampering with the snapshot must not reach the engine.
	first.Elevators[0].Position.CurrentFloor = 3
	first.Passengers[1].Destination = 0
	first.Floors[0].UpQueue = append(first.Floors[0].UpQueue, 99)

	second, err := engine.GetState()
	if err != nil {
		t.Fatal(err)
	}
	if second.Elevators[0].Position.CurrentFloor != 0 {
		t.Error("snapshot mutation leaked into elevator state")
	}
	if second.Passengers[1].Destination != 3 {
		t.Error("snapshot mutation leaked into passenger state")
	}
	if len(second.Floors[0].UpQueue) != 0 {
		t.Errorf("snapshot mutation leaked into floor queue: %v", second.Floors[0].UpQueue)
	}
}

func TestStepReturnsOnlyNewEvents(t *testing.T) {
	engine := newTestEngine(t, testBuilding(4, 1, 4, 0),
		[]traffic.Entry{
			{ID: 1, Origin: 0, Destination: 3, Tick: 1},
			{ID: 2, Origin: 1, Destination: 0, Tick: 2},
		})

	tick, events, err := engine.Step(2)
	if err != nil {
		t.Fatal(err)
	}
	if tick != 2 {
		t.Errorf("tick = %d, want 2", tick)
	}
	for _, event := range events {
		if event.Tick < 1 || event.Tick > 2 {
			t.Errorf("event tick %d outside (0,2]", event.Tick)
		}
	}

	more := mustStep(t, engine, 1)
	for _, event := range more {
		if event.Tick != 3 {
			t.Errorf("second step returned event from tick %d", event.Tick)
		}
	}
}

func TestTickMonotonic(t *testing.T) {
	engine := newTestEngine(t, testBuilding(4, 1, 4, 0), nil)
	last := 0
	for i := 0; i < 5; i++ {
		tick, _, err := engine.Step(1)
		if err != nil {
			t.Fatal(err)
		}
		if tick != last+1 {
			t.Fatalf("tick jumped from %d to %d", last, tick)
		}
		last = tick
	}
}

func TestReset(t *testing.T) {
	engine := newTestEngine(t, testBuilding(4, 1, 4, 0),
		[]traffic.Entry{{ID: 1, Origin: 0, Destination: 3, Tick: 0}})
	if err := engine.GoToFloor(0, 3, true); err != nil {
		t.Fatal(err)
	}
	mustStep(t, engine, 5)

	if err := engine.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	state, err := engine.GetState()
	if err != nil {
		t.Fatal(err)
	}
	if state.Tick != 0 || len(state.Passengers) != 0 || len(state.Events) != 0 {
		t.Errorf("reset state: tick=%d passengers=%d events=%d",
			state.Tick, len(state.Passengers), len(state.Events))
	}
	elevator := state.Elevators[0]
	if elevator.Position.CurrentFloor != 0 || elevator.RunStatus != types.RunStopped {
		t.Errorf("elevator not reset: %+v", elevator)
	}

	// The same traffic plays again after reset.
	events := mustStep(t, engine, 1)
	if !hasEvent(events, types.EventUpButtonPressed) {
		t.Error("traffic did not replay after reset")
	}
}

func TestNextTrafficRound(t *testing.T) {
	first, err := traffic.NewPattern("first", testBuilding(4, 1, 4, 100),
		[]traffic.Entry{{ID: 1, Origin: 0, Destination: 3, Tick: 1}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := traffic.NewPattern("second", testBuilding(4, 1, 4, 200),
		[]traffic.Entry{{ID: 2, Origin: 1, Destination: 3, Tick: 1}})
	if err != nil {
		t.Fatal(err)
	}
	source, err := traffic.NewSource([]*traffic.Pattern{first, second})
	if err != nil {
		t.Fatal(err)
	}
	engine := New(source)
	mustStep(t, engine, 3)

	// Queue-only rotation keeps the clock and the world.
	if err := engine.NextTrafficRound(false); err != nil {
		t.Fatalf("NextTrafficRound: %v", err)
	}
	state, err := engine.GetState()
	if err != nil {
		t.Fatal(err)
	}
	if state.Tick != 3 {
		t.Errorf("tick reset on queue-only rotation: %d", state.Tick)
	}
	if len(state.Passengers) != 1 {
		t.Errorf("world rebuilt on queue-only rotation: %d passengers", len(state.Passengers))
	}

	info := engine.TrafficInfo()
	if info.CurrentIndex != 1 || info.TotalFiles != 2 || info.MaxTick != 200 {
		t.Errorf("info = %+v", info)
	}

	if err := engine.NextTrafficRound(true); !errors.Is(err, traffic.ErrNoMoreScenarios) {
		t.Errorf("rotation past end = %v, want ErrNoMoreScenarios", err)
	}
}

func TestNextTrafficRoundFullReset(t *testing.T) {
	first, err := traffic.NewPattern("first", testBuilding(4, 1, 4, 100),
		[]traffic.Entry{{ID: 1, Origin: 0, Destination: 3, Tick: 1}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := traffic.NewPattern("second", testBuilding(6, 2, 8, 200), nil)
	if err != nil {
		t.Fatal(err)
	}
	source, err := traffic.NewSource([]*traffic.Pattern{first, second})
	if err != nil {
		t.Fatal(err)
	}
	engine := New(source)
	mustStep(t, engine, 3)

	if err := engine.NextTrafficRound(true); err != nil {
		t.Fatalf("NextTrafficRound: %v", err)
	}
	state, err := engine.GetState()
	if err != nil {
		t.Fatal(err)
	}
	if state.Tick != 0 || len(state.Passengers) != 0 {
		t.Errorf("full reset kept old world: tick=%d passengers=%d", state.Tick, len(state.Passengers))
	}
	if len(state.Elevators) != 2 || state.FloorsCount() != 6 {
		t.Errorf("full reset did not apply new building: %d elevators, %d floors",
			len(state.Elevators), state.FloorsCount())
	}
}

// Two runs with the same building, traffic and command log must produce
// byte-identical event streams and final state.
func TestDeterminism(t *testing.T) {
	entries := []traffic.Entry{
		{ID: 1, Origin: 0, Destination: 4, Tick: 1},
		{ID: 2, Origin: 2, Destination: 0, Tick: 3},
		{ID: 3, Origin: 1, Destination: 4, Tick: 3},
		{ID: 4, Origin: 4, Destination: 0, Tick: 8},
	}
	run := func() ([]types.SimulationEvent, *types.SimulationState) {
		engine := newTestEngine(t, testBuilding(5, 2, 3, 0), entries)
		var journal []types.SimulationEvent
		journal = append(journal, mustStep(t, engine, 2)...)
		if err := engine.GoToFloor(0, 4, true); err != nil {
			t.Fatal(err)
		}
		journal = append(journal, mustStep(t, engine, 5)...)
		if err := engine.GoToFloor(1, 2, false); err != nil {
			t.Fatal(err)
		}
		journal = append(journal, mustStep(t, engine, 30)...)
		state, err := engine.GetState()
		if err != nil {
			t.Fatal(err)
		}
		return journal, state
	}

	eventsA, stateA := run()
	eventsB, stateB := run()

	rawEventsA, _ := json.Marshal(eventsA)
	rawEventsB, _ := json.Marshal(eventsB)
	if string(rawEventsA) != string(rawEventsB) {
		t.Error("event streams diverged between identical runs")
	}
	rawStateA, _ := json.Marshal(stateA)
	rawStateB, _ := json.Marshal(stateB)
	if string(rawStateA) != string(rawStateB) {
		t.Error("final states diverged between identical runs")
	}
}

func hasEvent(events []types.SimulationEvent, typ types.EventType) bool {
	for _, event := range events {
		if event.Type == typ {
			return true
		}
	}
	return false
}

func eventsOfType(events []types.SimulationEvent, typ types.EventType) []types.SimulationEvent {
	var matched []types.SimulationEvent
	for _, event := range events {
		if event.Type == typ {
			matched = append(matched, event)
		}
	}
	return matched
}
