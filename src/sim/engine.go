// Package sim is the discrete-event elevator engine: a deterministic,
// tick-driven state machine behind a mutex-serialized command surface.
package sim

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/tiendc/go-deepcopy"

	"simvator/src/traffic"
	"simvator/src/types"
)

// Engine owns one SimulationState and advances it tick by tick. Every
// public operation holds the mutex for its full duration, so concurrent
// callers see serializable execution. The engine does no I/O and never
// observes wall-clock time.
type Engine struct {
	mu       sync.Mutex
	runID    string
	source   *traffic.Source
	state    *types.SimulationState
	queue    []traffic.Entry
	duration int
}

// New builds an engine from the first scenario of the traffic source.
func New(source *traffic.Source) *Engine {
	e := &Engine{
		runID:  uuid.NewString(),
		source: source,
	}
	e.rebuild()
	slog.Info("engine initialized",
		"run_id", e.runID,
		"scenario", source.Current().Name,
		"floors", source.Current().Building.Floors,
		"elevators", source.Current().Building.Elevators)
	return e
}

// RunID identifies this engine instance in logs and diagnostics.
func (e *Engine) RunID() string {
	return e.runID
}

// rebuild reconstructs the world from the current pattern. Caller holds the
// mutex (or is the constructor).
func (e *Engine) rebuild() {
	pattern := e.source.Current()
	e.state = types.NewSimulationState(
		pattern.Building.Floors,
		pattern.Building.Elevators,
		pattern.Building.ElevatorCapacity,
		pattern.EnergyRates,
	)
	e.queue = append([]traffic.Entry(nil), pattern.Entries...)
	e.duration = pattern.Duration
}

// GetState returns a deep-copied snapshot with metrics filled in. The copy
// is taken under the mutex so all cross-entity invariants hold in it.
func (e *Engine) GetState() (*types.SimulationState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := new(types.SimulationState)
	if err := deepcopy.Copy(snapshot, e.state); err != nil {
		return nil, fmt.Errorf("snapshot state: %w", ErrInternal)
	}
	snapshot.Metrics = computeMetrics(e.state)
	return snapshot, nil
}

// Step advances the world by ticks pipeline iterations and returns the new
// tick plus the events produced during this call.
func (e *Engine) Step(ticks int) (int, []types.SimulationEvent, error) {
	if ticks < 1 {
		return 0, nil, fmt.Errorf("ticks must be >= 1, got %d: %w", ticks, ErrInvalidArgument)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	eventsStart := len(e.state.Events)
	for i := 0; i < ticks; i++ {
		e.tick()
		if err := e.checkInvariants(); err != nil {
			return 0, nil, err
		}
	}

	produced := new([]types.SimulationEvent)
	if err := deepcopy.Copy(produced, e.state.Events[eventsStart:]); err != nil {
		return 0, nil, fmt.Errorf("copy events: %w", ErrInternal)
	}
	slog.Debug("step complete", "tick", e.state.Tick, "events", len(*produced))
	return e.state.Tick, *produced, nil
}

// GoToFloor assigns a target to an elevator. With immediate the current
// target is overwritten in place; otherwise the floor is queued and adopted
// once the elevator finishes its current run.
func (e *Engine) GoToFloor(elevatorID, floor int, immediate bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if elevatorID < 0 || elevatorID >= len(e.state.Elevators) {
		return fmt.Errorf("elevator %d: %w", elevatorID, ErrNotFound)
	}
	if floor < 0 || floor >= e.state.FloorsCount() {
		return fmt.Errorf("floor %d out of range [0,%d): %w", floor, e.state.FloorsCount(), ErrInvalidArgument)
	}

	elevator := e.state.Elevators[elevatorID]
	if immediate {
		elevator.Position.TargetFloor = floor
	} else {
		queued := floor
		elevator.NextTargetFloor = &queued
	}
	elevator.IdleNotified = false
	slog.Debug("go_to_floor",
		"elevator", elevatorID,
		"floor", floor,
		"immediate", immediate)
	return nil
}

// Reset reinitializes the simulation from the current traffic scenario.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rebuild()
	slog.Info("simulation reset", "scenario", e.source.Current().Name)
	return nil
}

// NextTrafficRound advances to the next scenario. With fullReset the whole
// world is rebuilt; otherwise only the traffic queue is replaced and the
// tick counter keeps running.
func (e *Engine) NextTrafficRound(fullReset bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.source.Advance(); err != nil {
		return err
	}
	pattern := e.source.Current()
	if fullReset {
		e.rebuild()
	} else {
		e.queue = append([]traffic.Entry(nil), pattern.Entries...)
		e.duration = pattern.Duration
	}
	slog.Info("traffic round advanced",
		"scenario", pattern.Name,
		"full_reset", fullReset,
		"tick", e.state.Tick)
	return nil
}

// TrafficInfo reports the rotation position.
func (e *Engine) TrafficInfo() traffic.Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.source.Info()
}
