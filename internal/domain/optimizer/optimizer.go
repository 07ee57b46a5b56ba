package optimizer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
)

type Mode string

const (
	ModeExact  Mode = "exact"
	ModeGreedy Mode = "greedy"
)

var (
	ErrInfeasible = errors.New("no feasible team within budget")
	// ErrInvariantViolation means the search produced a structurally invalid
	// team. That is a defect in the optimizer, never a user input problem.
	ErrInvariantViolation = errors.New("optimizer produced an invalid team")
	ErrUnknownMode        = errors.New("unknown optimizer mode")
)

type candidate struct {
	id     string
	points int
	price  int64
}

// FindOptimalTeam selects the best 5-driver, 2-constructor team from a scored
// weekend within the budget (tenths of a million).
//
// Exact mode enumerates C(n,5) x C(m,2) with budget pruning. That is only
// acceptable for real grid sizes (<=24 drivers, <=12 constructors); the cost
// grows combinatorially beyond that. The search checks ctx between driver
// combinations, so long runs can be cancelled externally.
//
// Greedy mode ranks by value ratio (points per price) and is feasible, not
// necessarily maximal: its points never exceed exact mode's for the same
// inputs. Ties break deterministically in both modes.
func FindOptimalTeam(ctx context.Context, results *weekend.Results, budget int64, mode Mode) (fantasyteam.Team, error) {
	if results == nil {
		return fantasyteam.Team{}, fmt.Errorf("weekend results are required")
	}
	if budget <= 0 {
		return fantasyteam.Team{}, fmt.Errorf("budget must be greater than zero")
	}

	drivers, err := driverCandidates(results)
	if err != nil {
		return fantasyteam.Team{}, err
	}
	constructors, err := constructorCandidates(results)
	if err != nil {
		return fantasyteam.Team{}, err
	}
	if len(drivers) < fantasyteam.DriverCount || len(constructors) < fantasyteam.ConstructorCount {
		return fantasyteam.Team{}, fmt.Errorf("%w: field has %d drivers and %d constructors", ErrInfeasible, len(drivers), len(constructors))
	}

	var team fantasyteam.Team
	switch mode {
	case ModeExact:
		team, err = findExact(ctx, drivers, constructors, budget)
	case ModeGreedy:
		team, err = findGreedy(drivers, constructors, budget)
	default:
		return fantasyteam.Team{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return fantasyteam.Team{}, err
	}

	if err := team.Validate(budget); err != nil {
		return fantasyteam.Team{}, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return team, nil
}

func findExact(ctx context.Context, drivers, constructors []candidate, budget int64) (fantasyteam.Team, error) {
	var (
		best      fantasyteam.Team
		bestFound bool
		bestIDs   []string
	)

	driverCombos := newCombinations(len(drivers), fantasyteam.DriverCount)
	for driverIdx, ok := driverCombos.next(); ok; driverIdx, ok = driverCombos.next() {
		// Cooperative cancellation between candidate evaluations.
		if err := ctx.Err(); err != nil {
			return fantasyteam.Team{}, fmt.Errorf("optimal team search cancelled: %w", err)
		}

		var driverCost int64
		driverPoints := 0
		for _, i := range driverIdx {
			driverCost += drivers[i].price
			driverPoints += drivers[i].points
		}
		if driverCost > budget {
			continue
		}

		constructorCombos := newCombinations(len(constructors), fantasyteam.ConstructorCount)
		for constructorIdx, ok := constructorCombos.next(); ok; constructorIdx, ok = constructorCombos.next() {
			totalCost := driverCost
			totalPoints := driverPoints
			for _, j := range constructorIdx {
				totalCost += constructors[j].price
				totalPoints += constructors[j].points
			}
			if totalCost > budget {
				continue
			}

			ids := idTuple(drivers, driverIdx, constructors, constructorIdx)
			if bestFound && !better(totalPoints, totalCost, ids, best.TotalPoints, best.TotalCost, bestIDs) {
				continue
			}

			best = fantasyteam.Team{
				DriverIDs:      pickIDs(drivers, driverIdx),
				ConstructorIDs: pickIDs(constructors, constructorIdx),
				TotalCost:      totalCost,
				TotalPoints:    totalPoints,
			}
			bestIDs = ids
			bestFound = true
		}
	}

	if !bestFound {
		return fantasyteam.Team{}, fmt.Errorf("%w: budget=%d", ErrInfeasible, budget)
	}
	return best, nil
}

func findGreedy(drivers, constructors []candidate, budget int64) (fantasyteam.Team, error) {
	chosenDrivers, remaining := greedyPick(drivers, fantasyteam.DriverCount, budget)
	if len(chosenDrivers) < fantasyteam.DriverCount {
		return fantasyteam.Team{}, fmt.Errorf("%w: could only fit %d of %d drivers", ErrInfeasible, len(chosenDrivers), fantasyteam.DriverCount)
	}

	chosenConstructors, remaining := greedyPick(constructors, fantasyteam.ConstructorCount, remaining)
	if len(chosenConstructors) < fantasyteam.ConstructorCount {
		return fantasyteam.Team{}, fmt.Errorf("%w: could only fit %d of %d constructors", ErrInfeasible, len(chosenConstructors), fantasyteam.ConstructorCount)
	}

	team := fantasyteam.Team{
		DriverIDs:      make([]string, 0, fantasyteam.DriverCount),
		ConstructorIDs: make([]string, 0, fantasyteam.ConstructorCount),
		TotalCost:      budget - remaining,
	}
	for _, c := range chosenDrivers {
		team.DriverIDs = append(team.DriverIDs, c.id)
		team.TotalPoints += c.points
	}
	for _, c := range chosenConstructors {
		team.ConstructorIDs = append(team.ConstructorIDs, c.id)
		team.TotalPoints += c.points
	}
	sort.Strings(team.DriverIDs)
	sort.Strings(team.ConstructorIDs)
	return team, nil
}

// greedyPick takes the next highest-value candidate that still fits, skipping
// over-budget ones rather than aborting. If the value pass cannot fill the
// slots, a cheapest-first pass tries again before giving up.
func greedyPick(pool []candidate, count int, budget int64) ([]candidate, int64) {
	byValue := make([]candidate, len(pool))
	copy(byValue, pool)
	sort.SliceStable(byValue, func(i, j int) bool {
		ri := valueRatio(byValue[i])
		rj := valueRatio(byValue[j])
		if ri != rj {
			return ri > rj
		}
		if byValue[i].points != byValue[j].points {
			return byValue[i].points > byValue[j].points
		}
		if byValue[i].price != byValue[j].price {
			return byValue[i].price < byValue[j].price
		}
		return byValue[i].id < byValue[j].id
	})

	chosen, remaining := takeFitting(byValue, count, budget)
	if len(chosen) == count {
		return chosen, remaining
	}

	byPrice := make([]candidate, len(pool))
	copy(byPrice, pool)
	sort.SliceStable(byPrice, func(i, j int) bool {
		if byPrice[i].price != byPrice[j].price {
			return byPrice[i].price < byPrice[j].price
		}
		return byPrice[i].id < byPrice[j].id
	})
	return takeFitting(byPrice, count, budget)
}

func takeFitting(ranked []candidate, count int, budget int64) ([]candidate, int64) {
	chosen := make([]candidate, 0, count)
	remaining := budget
	for _, c := range ranked {
		if len(chosen) == count {
			break
		}
		if c.price > remaining {
			continue
		}
		chosen = append(chosen, c)
		remaining -= c.price
	}
	return chosen, remaining
}

func valueRatio(c candidate) float64 {
	return float64(c.points) / float64(c.price)
}

// better reports whether candidate a beats candidate b: more points, then
// lower cost, then lowest id tuple. Deterministic and reproducible.
func better(aPoints int, aCost int64, aIDs []string, bPoints int, bCost int64, bIDs []string) bool {
	if aPoints != bPoints {
		return aPoints > bPoints
	}
	if aCost != bCost {
		return aCost < bCost
	}
	for i := range aIDs {
		if aIDs[i] != bIDs[i] {
			return aIDs[i] < bIDs[i]
		}
	}
	return false
}

func driverCandidates(results *weekend.Results) ([]candidate, error) {
	perfs := results.Drivers()
	out := make([]candidate, 0, len(perfs))
	for _, p := range perfs {
		if p.Price <= 0 {
			return nil, fmt.Errorf("driver %s has no price; score the weekend first", p.DriverID)
		}
		out = append(out, candidate{id: p.DriverID, points: p.TotalPoints, price: p.Price})
	}
	sortByID(out)
	return out, nil
}

func constructorCandidates(results *weekend.Results) ([]candidate, error) {
	perfs := results.Constructors()
	out := make([]candidate, 0, len(perfs))
	for _, p := range perfs {
		if p.Price <= 0 {
			return nil, fmt.Errorf("constructor %s has no price; score the weekend first", p.ConstructorID)
		}
		out = append(out, candidate{id: p.ConstructorID, points: p.TotalPoints, price: p.Price})
	}
	sortByID(out)
	return out, nil
}

func sortByID(candidates []candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].id < candidates[j].id
	})
}

func pickIDs(pool []candidate, indexes []int) []string {
	out := make([]string, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, pool[i].id)
	}
	return out
}

func idTuple(drivers []candidate, driverIdx []int, constructors []candidate, constructorIdx []int) []string {
	out := make([]string, 0, len(driverIdx)+len(constructorIdx))
	for _, i := range driverIdx {
		out = append(out, drivers[i].id)
	}
	for _, j := range constructorIdx {
		out = append(out, constructors[j].id)
	}
	return out
}
