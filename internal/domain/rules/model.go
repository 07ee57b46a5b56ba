package rules

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrUnknownSeason   = errors.New("unknown season")
)

// minGridCoverage is the smallest contiguous position range a rule set must
// price explicitly; positions beyond the table are worth zero by contract.
const minGridCoverage = 20

// PointsTable maps finishing order to points. Index zero holds position 1.
type PointsTable struct {
	points []int
}

func NewPointsTable(points ...int) PointsTable {
	out := make([]int, len(points))
	copy(out, points)
	return PointsTable{points: out}
}

// PointsFor returns the points for a race or qualifying position. Positions
// past the covered range score zero; positions below 1 are a caller bug.
func (t PointsTable) PointsFor(position int) (int, error) {
	if position < 1 {
		return 0, fmt.Errorf("%w: position must be >= 1, got %d", ErrInvalidPosition, position)
	}
	if position > len(t.points) {
		return 0, nil
	}
	return t.points[position-1], nil
}

func (t PointsTable) Coverage() int {
	return len(t.points)
}

// ScoringRuleSet holds one season's immutable scoring parameters. Penalties
// carry their sign, so a breakdown term is always rule value times occurrence.
type ScoringRuleSet struct {
	Season int

	QualifyingPositionPoints PointsTable
	RacePositionPoints       PointsTable

	Q3AppearanceBonus int
	Q2AppearanceBonus int
	FastestLapBonus   int
	DriverOfDayBonus  int

	FinishBonus             int
	DNFPenalty              int
	DisqualificationPenalty int

	BeatTeammateQualifyingBonus int
	BeatTeammateRaceBonus       int

	PositionsGainedPerPlace int
	PositionsLostPerPlace   int
	PositionChangeCap       int

	FastestPitStopBonus      int
	PitStopRecordBonus       int
	BothDriversFinishBonus   int
	BothDriversInPointsBonus int
}

func (rs ScoringRuleSet) Validate() error {
	if rs.Season <= 0 {
		return fmt.Errorf("rule set season must be greater than zero")
	}
	if rs.QualifyingPositionPoints.Coverage() < minGridCoverage {
		return fmt.Errorf("qualifying position table must cover positions 1..%d, got %d", minGridCoverage, rs.QualifyingPositionPoints.Coverage())
	}
	if rs.RacePositionPoints.Coverage() < minGridCoverage {
		return fmt.Errorf("race position table must cover positions 1..%d, got %d", minGridCoverage, rs.RacePositionPoints.Coverage())
	}
	if rs.PositionChangeCap < 0 {
		return fmt.Errorf("position change cap cannot be negative")
	}
	return nil
}

// Season2025 returns the published 2025 F1 Fantasy rule curve.
func Season2025() ScoringRuleSet {
	return ScoringRuleSet{
		Season: 2025,
		QualifyingPositionPoints: NewPointsTable(
			10, 9, 8, 7, 6, 5, 4, 3, 2, 1,
			0, 0, 0, 0, 0,
			-1, -1, -1, -1, -1,
			-2,
		),
		RacePositionPoints: NewPointsTable(
			25, 18, 15, 12, 10, 8, 6, 4, 2, 1,
			0, 0, 0, 0, 0,
			-1, -1, -1, -1, -1,
			-2,
		),
		Q3AppearanceBonus:           2,
		Q2AppearanceBonus:           1,
		FastestLapBonus:             5,
		DriverOfDayBonus:            10,
		FinishBonus:                 1,
		DNFPenalty:                  -15,
		DisqualificationPenalty:     -20,
		BeatTeammateQualifyingBonus: 2,
		BeatTeammateRaceBonus:       3,
		PositionsGainedPerPlace:     2,
		PositionsLostPerPlace:       -2,
		PositionChangeCap:           10,
		FastestPitStopBonus:         5,
		PitStopRecordBonus:          5,
		BothDriversFinishBonus:      3,
		BothDriversInPointsBonus:    5,
	}
}
