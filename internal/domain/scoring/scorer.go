package scoring

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
)

var ErrIncompleteData = errors.New("incomplete performance data")

// Breakdown rule names. These are part of the API payload shape, keep stable.
const (
	RuleQualifyingPosition     = "qualifying_position"
	RuleQ3Appearance           = "q3_appearance"
	RuleQ2Appearance           = "q2_appearance"
	RuleRacePosition           = "race_position"
	RuleFastestLap             = "fastest_lap"
	RuleDriverOfDay            = "driver_of_day"
	RulePositionsGained        = "positions_gained"
	RulePositionsLost          = "positions_lost"
	RuleFinishedRace           = "finished_race"
	RuleDNF                    = "dnf"
	RuleDisqualified           = "disqualified"
	RuleBeatTeammateQualifying = "beat_teammate_qualifying"
	RuleBeatTeammateRace       = "beat_teammate_race"
	RuleDriverPoints           = "driver_points"
	RuleFastestPitStop         = "fastest_pit_stop"
	RulePitStopRecord          = "pit_stop_record"
	RuleBothDriversFinish      = "both_drivers_finish"
	RuleBothDriversInPoints    = "both_drivers_in_points"
)

// ScoreDriver computes a driver's weekend total and line-item breakdown. It
// is pure: same facts and rule set always produce the same output. Terms are
// evaluated in a fixed order; a nil position degrades to zero for that term
// instead of failing.
func ScoreDriver(perf weekend.DriverPerformance, ruleSet rules.ScoringRuleSet) (int, []weekend.BreakdownItem, error) {
	if perf.DriverID == "" {
		return 0, nil, fmt.Errorf("%w: driver id is required", ErrIncompleteData)
	}
	if perf.ConstructorID == "" {
		return 0, nil, fmt.Errorf("%w: constructor id is required for driver %s", ErrIncompleteData, perf.DriverID)
	}
	if perf.Price <= 0 {
		return 0, nil, fmt.Errorf("%w: price is required for driver %s", ErrIncompleteData, perf.DriverID)
	}

	breakdown := make([]weekend.BreakdownItem, 0, 8)
	total := 0
	add := func(rule string, points int) {
		breakdown = append(breakdown, weekend.BreakdownItem{Rule: rule, Points: points})
		total += points
	}

	if perf.QualifyingPosition != nil {
		points, err := ruleSet.QualifyingPositionPoints.PointsFor(*perf.QualifyingPosition)
		if err != nil {
			return 0, nil, fmt.Errorf("qualifying points for driver %s: %w", perf.DriverID, err)
		}
		add(RuleQualifyingPosition, points)
	}

	// Q3 implies Q2; only the higher bonus is awarded.
	if perf.Q3Appearance {
		add(RuleQ3Appearance, ruleSet.Q3AppearanceBonus)
	} else if perf.Q2Appearance {
		add(RuleQ2Appearance, ruleSet.Q2AppearanceBonus)
	}

	classified := perf.RacePosition != nil && !perf.Disqualified
	if classified {
		points, err := ruleSet.RacePositionPoints.PointsFor(*perf.RacePosition)
		if err != nil {
			return 0, nil, fmt.Errorf("race points for driver %s: %w", perf.DriverID, err)
		}
		add(RuleRacePosition, points)
	}

	// A fastest lap only counts for a classified finisher.
	if perf.FastestLap && perf.FinishedRace && !perf.Disqualified {
		add(RuleFastestLap, ruleSet.FastestLapBonus)
	}

	if perf.DriverOfDay {
		add(RuleDriverOfDay, ruleSet.DriverOfDayBonus)
	}

	if classified && perf.FinishedRace {
		gained, lost := positionsChanged(perf.GridPosition, *perf.RacePosition)
		if gained > 0 {
			add(RulePositionsGained, ruleSet.PositionsGainedPerPlace*capInt(gained, ruleSet.PositionChangeCap))
		} else if lost > 0 {
			add(RulePositionsLost, ruleSet.PositionsLostPerPlace*capInt(lost, ruleSet.PositionChangeCap))
		}
	}

	switch {
	case perf.Disqualified:
		add(RuleDisqualified, ruleSet.DisqualificationPenalty)
	case perf.FinishedRace:
		add(RuleFinishedRace, ruleSet.FinishBonus)
	default:
		add(RuleDNF, ruleSet.DNFPenalty)
	}

	if perf.BeatTeammateQualifying {
		add(RuleBeatTeammateQualifying, ruleSet.BeatTeammateQualifyingBonus)
	}
	if perf.BeatTeammateRace {
		add(RuleBeatTeammateRace, ruleSet.BeatTeammateRaceBonus)
	}

	return total, breakdown, nil
}

// ScoreConstructor computes a constructor total from its two already scored
// drivers plus team bonuses. Driver performances must carry their weekend
// scores; scoring order is enforced by ScoreWeekend.
func ScoreConstructor(perf weekend.ConstructorPerformance, drivers []weekend.DriverPerformance, ruleSet rules.ScoringRuleSet) (int, []weekend.BreakdownItem, error) {
	if perf.ConstructorID == "" {
		return 0, nil, fmt.Errorf("%w: constructor id is required", ErrIncompleteData)
	}
	if perf.Price <= 0 {
		return 0, nil, fmt.Errorf("%w: price is required for constructor %s", ErrIncompleteData, perf.ConstructorID)
	}
	if len(drivers) != 2 {
		return 0, nil, fmt.Errorf("%w: constructor %s needs exactly 2 drivers, got %d", ErrIncompleteData, perf.ConstructorID, len(drivers))
	}

	breakdown := make([]weekend.BreakdownItem, 0, 4)
	total := 0
	add := func(rule string, points int) {
		breakdown = append(breakdown, weekend.BreakdownItem{Rule: rule, Points: points})
		total += points
	}

	driverPoints := drivers[0].TotalPoints + drivers[1].TotalPoints
	add(RuleDriverPoints, driverPoints)

	if perf.FastestPitStop {
		add(RuleFastestPitStop, ruleSet.FastestPitStopBonus)
	}
	if perf.PitStopRecord {
		add(RulePitStopRecord, ruleSet.PitStopRecordBonus)
	}

	if bothFinished(drivers) && ruleSet.BothDriversFinishBonus != 0 {
		add(RuleBothDriversFinish, ruleSet.BothDriversFinishBonus)
	}

	inPoints, err := bothInPoints(drivers, ruleSet)
	if err != nil {
		return 0, nil, err
	}
	if inPoints && ruleSet.BothDriversInPointsBonus != 0 {
		add(RuleBothDriversInPoints, ruleSet.BothDriversInPointsBonus)
	}

	return total, breakdown, nil
}

// ScoreWeekend scores every driver, then every constructor. Constructors
// depend on their drivers' totals, so the ordering is a hard precondition.
// Re-invoking recomputes and overwrites every score.
func ScoreWeekend(results *weekend.Results, ruleSet rules.ScoringRuleSet) error {
	if results == nil {
		return fmt.Errorf("weekend results are required")
	}
	if err := ruleSet.Validate(); err != nil {
		return fmt.Errorf("invalid rule set: %w", err)
	}

	results.DeriveTeammateComparisons()

	for _, perf := range results.Drivers() {
		total, breakdown, err := ScoreDriver(perf, ruleSet)
		if err != nil {
			return fmt.Errorf("score driver %s: %w", perf.DriverID, err)
		}
		if err := results.ApplyDriverScore(perf.DriverID, total, breakdown); err != nil {
			return err
		}
	}

	for _, perf := range results.Constructors() {
		drivers := make([]weekend.DriverPerformance, 0, len(perf.DriverIDs))
		for _, driverID := range perf.DriverIDs {
			driverPerf, ok := results.DriverByID(driverID)
			if !ok {
				return fmt.Errorf("%w: constructor %s references unknown driver %s", ErrIncompleteData, perf.ConstructorID, driverID)
			}
			drivers = append(drivers, driverPerf)
		}

		total, breakdown, err := ScoreConstructor(perf, drivers, ruleSet)
		if err != nil {
			return fmt.Errorf("score constructor %s: %w", perf.ConstructorID, err)
		}
		if err := results.ApplyConstructorScore(perf.ConstructorID, total, breakdown); err != nil {
			return err
		}
	}

	return nil
}

func positionsChanged(gridPosition, racePosition int) (gained, lost int) {
	delta := gridPosition - racePosition
	if delta > 0 {
		return delta, 0
	}
	return 0, -delta
}

func capInt(value, cap int) int {
	if cap > 0 && value > cap {
		return cap
	}
	return value
}

func bothFinished(drivers []weekend.DriverPerformance) bool {
	for _, d := range drivers {
		if !d.FinishedRace || d.Disqualified {
			return false
		}
	}
	return true
}

func bothInPoints(drivers []weekend.DriverPerformance, ruleSet rules.ScoringRuleSet) (bool, error) {
	for _, d := range drivers {
		if d.RacePosition == nil || d.Disqualified {
			return false, nil
		}
		points, err := ruleSet.RacePositionPoints.PointsFor(*d.RacePosition)
		if err != nil {
			return false, fmt.Errorf("race points for driver %s: %w", d.DriverID, err)
		}
		if points <= 0 {
			return false, nil
		}
	}
	return true, nil
}
