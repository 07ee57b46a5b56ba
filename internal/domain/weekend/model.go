package weekend

import (
	"errors"
	"fmt"
	"time"
)

var ErrDuplicateEntry = errors.New("duplicate entry in race weekend")

// BreakdownItem is one applied scoring term. Order in a breakdown follows the
// fixed evaluation order of the scorer, so reports stay stable between runs.
type BreakdownItem struct {
	Rule   string
	Points int
}

// DriverPerformance holds one driver's facts for a race weekend plus the
// score attached by a scoring pass. Nil positions mean the driver did not set
// a time (qualifying) or was not classified (race).
type DriverPerformance struct {
	DriverID      string
	ConstructorID string

	QualifyingPosition *int
	GridPosition       int
	RacePosition       *int

	Q2Appearance bool
	Q3Appearance bool
	FinishedRace bool
	FastestLap   bool
	DriverOfDay  bool
	Disqualified bool

	BeatTeammateQualifying bool
	BeatTeammateRace       bool

	// Price in tenths of a million, effective for this weekend.
	Price int64

	TotalPoints int
	Breakdown   []BreakdownItem
}

// ConstructorPerformance references its two drivers by id; the weekend
// aggregate owns the driver records themselves.
type ConstructorPerformance struct {
	ConstructorID string
	DriverIDs     []string

	FastestPitStop bool
	PitStopRecord  bool

	Price int64

	TotalPoints int
	Breakdown   []BreakdownItem
}

// Results owns every performance record of one race weekend. Entries are
// keyed by id and kept in insertion order for deterministic iteration.
type Results struct {
	RaceID   string
	Season   int
	Round    int
	RaceName string
	Circuit  string
	Date     time.Time

	driverOrder      []string
	drivers          map[string]*DriverPerformance
	constructorOrder []string
	constructors     map[string]*ConstructorPerformance
}

func NewResults(raceID string, season, round int, raceName, circuit string, date time.Time) *Results {
	return &Results{
		RaceID:       raceID,
		Season:       season,
		Round:        round,
		RaceName:     raceName,
		Circuit:      circuit,
		Date:         date,
		drivers:      make(map[string]*DriverPerformance),
		constructors: make(map[string]*ConstructorPerformance),
	}
}

func (r *Results) AddDriverPerformance(perf DriverPerformance) error {
	if perf.DriverID == "" {
		return fmt.Errorf("driver id is required")
	}
	if _, exists := r.drivers[perf.DriverID]; exists {
		return fmt.Errorf("%w: driver %s", ErrDuplicateEntry, perf.DriverID)
	}

	stored := perf
	r.drivers[perf.DriverID] = &stored
	r.driverOrder = append(r.driverOrder, perf.DriverID)
	return nil
}

func (r *Results) AddConstructorPerformance(perf ConstructorPerformance) error {
	if perf.ConstructorID == "" {
		return fmt.Errorf("constructor id is required")
	}
	if _, exists := r.constructors[perf.ConstructorID]; exists {
		return fmt.Errorf("%w: constructor %s", ErrDuplicateEntry, perf.ConstructorID)
	}

	stored := perf
	stored.DriverIDs = append([]string(nil), perf.DriverIDs...)
	r.constructors[perf.ConstructorID] = &stored
	r.constructorOrder = append(r.constructorOrder, perf.ConstructorID)
	return nil
}

func (r *Results) DriverByID(driverID string) (DriverPerformance, bool) {
	perf, ok := r.drivers[driverID]
	if !ok {
		return DriverPerformance{}, false
	}
	return *perf, true
}

func (r *Results) ConstructorByID(constructorID string) (ConstructorPerformance, bool) {
	perf, ok := r.constructors[constructorID]
	if !ok {
		return ConstructorPerformance{}, false
	}
	return *perf, true
}

// Drivers returns copies of all driver performances in insertion order.
func (r *Results) Drivers() []DriverPerformance {
	out := make([]DriverPerformance, 0, len(r.driverOrder))
	for _, id := range r.driverOrder {
		out = append(out, *r.drivers[id])
	}
	return out
}

// Constructors returns copies of all constructor performances in insertion order.
func (r *Results) Constructors() []ConstructorPerformance {
	out := make([]ConstructorPerformance, 0, len(r.constructorOrder))
	for _, id := range r.constructorOrder {
		out = append(out, *r.constructors[id])
	}
	return out
}

// ApplyDriverScore overwrites the scored fields of one driver record. A
// second scoring pass replaces, never accumulates.
func (r *Results) ApplyDriverScore(driverID string, total int, breakdown []BreakdownItem) error {
	perf, ok := r.drivers[driverID]
	if !ok {
		return fmt.Errorf("driver %s is not part of this weekend", driverID)
	}
	perf.TotalPoints = total
	perf.Breakdown = append([]BreakdownItem(nil), breakdown...)
	return nil
}

func (r *Results) ApplyConstructorScore(constructorID string, total int, breakdown []BreakdownItem) error {
	perf, ok := r.constructors[constructorID]
	if !ok {
		return fmt.Errorf("constructor %s is not part of this weekend", constructorID)
	}
	perf.TotalPoints = total
	perf.Breakdown = append([]BreakdownItem(nil), breakdown...)
	return nil
}

// SetDriverPrice attaches the effective weekend price before scoring.
func (r *Results) SetDriverPrice(driverID string, price int64) error {
	perf, ok := r.drivers[driverID]
	if !ok {
		return fmt.Errorf("driver %s is not part of this weekend", driverID)
	}
	perf.Price = price
	return nil
}

func (r *Results) SetConstructorPrice(constructorID string, price int64) error {
	perf, ok := r.constructors[constructorID]
	if !ok {
		return fmt.Errorf("constructor %s is not part of this weekend", constructorID)
	}
	perf.Price = price
	return nil
}

// Scored reports whether a scoring pass has run over every performance.
func (r *Results) Scored() bool {
	if len(r.driverOrder) == 0 || len(r.constructorOrder) == 0 {
		return false
	}
	for _, id := range r.driverOrder {
		if r.drivers[id].Breakdown == nil {
			return false
		}
	}
	for _, id := range r.constructorOrder {
		if r.constructors[id].Breakdown == nil {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, so stored weekends stay isolated from callers.
func (r *Results) Clone() *Results {
	out := NewResults(r.RaceID, r.Season, r.Round, r.RaceName, r.Circuit, r.Date)
	for _, id := range r.driverOrder {
		perf := *r.drivers[id]
		perf.Breakdown = append([]BreakdownItem(nil), perf.Breakdown...)
		if perf.QualifyingPosition != nil {
			position := *perf.QualifyingPosition
			perf.QualifyingPosition = &position
		}
		if perf.RacePosition != nil {
			position := *perf.RacePosition
			perf.RacePosition = &position
		}
		out.drivers[id] = &perf
		out.driverOrder = append(out.driverOrder, id)
	}
	for _, id := range r.constructorOrder {
		perf := *r.constructors[id]
		perf.DriverIDs = append([]string(nil), perf.DriverIDs...)
		perf.Breakdown = append([]BreakdownItem(nil), perf.Breakdown...)
		out.constructors[id] = &perf
		out.constructorOrder = append(out.constructorOrder, id)
	}
	return out
}

// DeriveTeammateComparisons fills the beat-teammate booleans from each
// constructor pairing. A classified position always beats a missing one; two
// missing positions leave both flags unset.
func (r *Results) DeriveTeammateComparisons() {
	for _, constructorID := range r.constructorOrder {
		ids := r.constructors[constructorID].DriverIDs
		if len(ids) != 2 {
			continue
		}
		first, firstOK := r.drivers[ids[0]]
		second, secondOK := r.drivers[ids[1]]
		if !firstOK || !secondOK {
			continue
		}

		first.BeatTeammateQualifying = positionBeats(first.QualifyingPosition, second.QualifyingPosition)
		second.BeatTeammateQualifying = positionBeats(second.QualifyingPosition, first.QualifyingPosition)
		first.BeatTeammateRace = positionBeats(first.RacePosition, second.RacePosition)
		second.BeatTeammateRace = positionBeats(second.RacePosition, first.RacePosition)
	}
}

func positionBeats(own, other *int) bool {
	if own == nil {
		return false
	}
	if other == nil {
		return true
	}
	return *own < *other
}
