// Package traffic loads passenger traffic scenarios and hands them to the
// engine one round at a time.
package traffic

import (
	"errors"
	"fmt"
	"sort"

	"simvator/src/config"
)

// ErrNoMoreScenarios is returned when rotation is requested past the last
// configured traffic file.
var ErrNoMoreScenarios = errors.New("no more scenarios")

// Entry is a single future passenger: who appears, where, and when.
type Entry struct {
	ID          int `json:"id"`
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
	Tick        int `json:"tick"`
}

// Building is the building configuration carried by a traffic file.
type Building struct {
	Floors              int       `json:"floors"`
	Elevators           int       `json:"elevators"`
	ElevatorCapacity    int       `json:"elevator_capacity"`
	ElevatorEnergyRates []float64 `json:"elevator_energy_rates"`
	Scenario            string    `json:"scenario"`
	Duration            int       `json:"duration"`
}

// Pattern is one loaded scenario. Entries are stable-sorted by (tick, id);
// input files are never assumed to be pre-sorted.
type Pattern struct {
	Name        string
	Description string
	Building    Building
	Entries     []Entry
	EnergyRates []float64
	Duration    int
	Metadata    map[string]any
}

// NewPattern builds a validated pattern: entries are stable-sorted by
// (tick, id), energy rates default to 1.0 per elevator, floor ranges are
// checked against the building.
func NewPattern(name string, building Building, entries []Entry) (*Pattern, error) {
	pattern := &Pattern{
		Name:        name,
		Description: building.Scenario,
		Building:    building,
		Entries:     entries,
		EnergyRates: building.ElevatorEnergyRates,
		Metadata:    map[string]any{},
	}
	if err := pattern.normalize(); err != nil {
		return nil, err
	}
	return pattern, nil
}

// normalize sorts entries, fills defaulted energy rates and validates floor
// ranges against the building.
func (p *Pattern) normalize() error {
	sort.SliceStable(p.Entries, func(i, j int) bool {
		if p.Entries[i].Tick != p.Entries[j].Tick {
			return p.Entries[i].Tick < p.Entries[j].Tick
		}
		return p.Entries[i].ID < p.Entries[j].ID
	})

	if p.Building.Floors < 2 {
		return fmt.Errorf("building needs at least 2 floors, got %d", p.Building.Floors)
	}
	if p.Building.Elevators < 1 {
		return fmt.Errorf("building needs at least 1 elevator, got %d", p.Building.Elevators)
	}
	if p.Building.ElevatorCapacity < 1 {
		return fmt.Errorf("elevator capacity must be positive, got %d", p.Building.ElevatorCapacity)
	}
	for _, entry := range p.Entries {
		if entry.Origin < 0 || entry.Origin >= p.Building.Floors ||
			entry.Destination < 0 || entry.Destination >= p.Building.Floors {
			return fmt.Errorf("traffic entry %d out of floor range [0,%d)", entry.ID, p.Building.Floors)
		}
		if entry.Origin == entry.Destination {
			return fmt.Errorf("traffic entry %d has origin == destination (%d)", entry.ID, entry.Origin)
		}
	}

	if len(p.EnergyRates) == 0 {
		p.EnergyRates = make([]float64, p.Building.Elevators)
		for i := range p.EnergyRates {
			p.EnergyRates[i] = config.DefaultEnergyRate
		}
	}
	p.Duration = p.Building.Duration
	return nil
}

// Source rotates through the configured traffic patterns.
type Source struct {
	patterns []*Pattern
	index    int
}

func NewSource(patterns []*Pattern) (*Source, error) {
	if len(patterns) == 0 {
		return nil, errors.New("traffic source needs at least one pattern")
	}
	return &Source{patterns: patterns}, nil
}

// Current returns the active pattern.
func (s *Source) Current() *Pattern {
	return s.patterns[s.index]
}

// Advance moves to the next pattern, or ErrNoMoreScenarios past the end.
func (s *Source) Advance() error {
	if s.index+1 >= len(s.patterns) {
		return ErrNoMoreScenarios
	}
	s.index++
	return nil
}

// Info describes the rotation position for the traffic_info query.
type Info struct {
	CurrentIndex int `json:"current_index"`
	TotalFiles   int `json:"total_files"`
	MaxTick      int `json:"max_tick"`
}

func (s *Source) Info() Info {
	return Info{
		CurrentIndex: s.index,
		TotalFiles:   len(s.patterns),
		MaxTick:      s.Current().Duration,
	}
}
