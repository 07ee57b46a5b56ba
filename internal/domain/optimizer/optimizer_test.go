package optimizer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
)

func scoredWeekend(t *testing.T, driverCount, constructorCount int) *weekend.Results {
	t.Helper()

	results := weekend.NewResults("2025-01", 2025, 1, "Australian Grand Prix", "Albert Park", time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC))
	for i := 0; i < driverCount; i++ {
		perf := weekend.DriverPerformance{
			DriverID:      fmt.Sprintf("d%02d", i+1),
			ConstructorID: fmt.Sprintf("c%02d", i/2+1),
			Price:         int64(100 + 25*i),
			TotalPoints:   40 - 3*i,
		}
		if err := results.AddDriverPerformance(perf); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < constructorCount; i++ {
		perf := weekend.ConstructorPerformance{
			ConstructorID: fmt.Sprintf("c%02d", i+1),
			DriverIDs:     []string{fmt.Sprintf("d%02d", 2*i+1), fmt.Sprintf("d%02d", 2*i+2)},
			Price:         int64(120 + 30*i),
			TotalPoints:   50 - 5*i,
		}
		if err := results.AddConstructorPerformance(perf); err != nil {
			t.Fatal(err)
		}
	}
	return results
}

func TestFindOptimalTeamExactBeatsOrMatchesGreedy(t *testing.T) {
	results := scoredWeekend(t, 10, 5)
	ctx := context.Background()

	for _, budget := range []int64{1100, 1300, 1600} {
		exact, err := FindOptimalTeam(ctx, results, budget, ModeExact)
		if err != nil {
			t.Fatalf("exact budget=%d: %v", budget, err)
		}
		greedy, err := FindOptimalTeam(ctx, results, budget, ModeGreedy)
		if err != nil {
			t.Fatalf("greedy budget=%d: %v", budget, err)
		}
		if greedy.TotalPoints > exact.TotalPoints {
			t.Errorf("budget=%d greedy points %d exceed exact points %d", budget, greedy.TotalPoints, exact.TotalPoints)
		}
	}
}

func TestFindOptimalTeamStructuralInvariant(t *testing.T) {
	results := scoredWeekend(t, 12, 6)
	ctx := context.Background()

	for _, mode := range []Mode{ModeExact, ModeGreedy} {
		team, err := FindOptimalTeam(ctx, results, 1400, mode)
		if err != nil {
			t.Fatalf("mode=%s: %v", mode, err)
		}
		if err := team.Validate(1400); err != nil {
			t.Errorf("mode=%s returned invalid team: %v", mode, err)
		}
		if team.TotalCost > 1400 {
			t.Errorf("mode=%s total cost %d over budget", mode, team.TotalCost)
		}
	}
}

func TestFindOptimalTeamExactIsDeterministic(t *testing.T) {
	results := scoredWeekend(t, 10, 5)
	ctx := context.Background()

	first, err := FindOptimalTeam(ctx, results, 1200, ModeExact)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FindOptimalTeam(ctx, results, 1200, ModeExact)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("exact search is not deterministic: %v vs %v", first, second)
	}
}

func TestFindOptimalTeamTieBreaksOnCost(t *testing.T) {
	// Two interchangeable constructors with equal points but different
	// prices; the cheaper one must win the tie.
	results := weekend.NewResults("2025-02", 2025, 2, "Chinese Grand Prix", "Shanghai", time.Now().UTC())
	for i := 0; i < 5; i++ {
		if err := results.AddDriverPerformance(weekend.DriverPerformance{
			DriverID:      fmt.Sprintf("d%d", i+1),
			ConstructorID: "c1",
			Price:         100,
			TotalPoints:   10,
		}); err != nil {
			t.Fatal(err)
		}
	}
	for _, cons := range []weekend.ConstructorPerformance{
		{ConstructorID: "c1", DriverIDs: []string{"d1", "d2"}, Price: 150, TotalPoints: 20},
		{ConstructorID: "c2", DriverIDs: []string{"d3", "d4"}, Price: 100, TotalPoints: 20},
		{ConstructorID: "c3", DriverIDs: []string{"d5", "d1"}, Price: 120, TotalPoints: 20},
	} {
		if err := results.AddConstructorPerformance(cons); err != nil {
			t.Fatal(err)
		}
	}

	team, err := FindOptimalTeam(context.Background(), results, 2000, ModeExact)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"c2", "c3"}
	if !reflect.DeepEqual(team.ConstructorIDs, want) {
		t.Errorf("ConstructorIDs = %v, want cheapest tie-broken pair %v", team.ConstructorIDs, want)
	}
}

func TestFindOptimalTeamInfeasibleBudget(t *testing.T) {
	results := scoredWeekend(t, 8, 4)

	// Cheapest possible 5+2 costs well above this budget.
	_, err := FindOptimalTeam(context.Background(), results, 500, ModeExact)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("exact error = %v, want ErrInfeasible", err)
	}

	_, err = FindOptimalTeam(context.Background(), results, 500, ModeGreedy)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("greedy error = %v, want ErrInfeasible", err)
	}
}

func TestFindOptimalTeamFieldTooSmall(t *testing.T) {
	results := scoredWeekend(t, 4, 2)

	_, err := FindOptimalTeam(context.Background(), results, 2000, ModeExact)
	if !errors.Is(err, ErrInfeasible) {
		t.Errorf("error = %v, want ErrInfeasible for a 4-driver field", err)
	}
}

func TestFindOptimalTeamUnknownMode(t *testing.T) {
	results := scoredWeekend(t, 10, 5)

	_, err := FindOptimalTeam(context.Background(), results, 1000, Mode("annealing"))
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestFindOptimalTeamHonorsCancellation(t *testing.T) {
	results := scoredWeekend(t, 20, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindOptimalTeam(ctx, results, 2000, ModeExact)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGreedySkipsUnaffordableAndContinues(t *testing.T) {
	results := weekend.NewResults("2025-03", 2025, 3, "Japanese Grand Prix", "Suzuka", time.Now().UTC())

	// One superstar priced out of reach; greedy must skip it and still
	// assemble a full team from the remaining field.
	drivers := []weekend.DriverPerformance{
		{DriverID: "star", ConstructorID: "c1", Price: 900, TotalPoints: 60},
		{DriverID: "d1", ConstructorID: "c1", Price: 100, TotalPoints: 20},
		{DriverID: "d2", ConstructorID: "c2", Price: 100, TotalPoints: 18},
		{DriverID: "d3", ConstructorID: "c2", Price: 100, TotalPoints: 16},
		{DriverID: "d4", ConstructorID: "c3", Price: 100, TotalPoints: 14},
		{DriverID: "d5", ConstructorID: "c3", Price: 100, TotalPoints: 12},
	}
	for _, d := range drivers {
		if err := results.AddDriverPerformance(d); err != nil {
			t.Fatal(err)
		}
	}
	for _, cons := range []weekend.ConstructorPerformance{
		{ConstructorID: "c1", DriverIDs: []string{"star", "d1"}, Price: 150, TotalPoints: 30},
		{ConstructorID: "c2", DriverIDs: []string{"d2", "d3"}, Price: 150, TotalPoints: 25},
		{ConstructorID: "c3", DriverIDs: []string{"d4", "d5"}, Price: 150, TotalPoints: 20},
	} {
		if err := results.AddConstructorPerformance(cons); err != nil {
			t.Fatal(err)
		}
	}

	team, err := FindOptimalTeam(context.Background(), results, 1000, ModeGreedy)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range team.DriverIDs {
		if id == "star" {
			t.Fatal("greedy picked an unaffordable driver")
		}
	}
	if err := team.Validate(1000); err != nil {
		t.Errorf("greedy team invalid: %v", err)
	}
}

func TestCombinationsEnumeratesLexicographically(t *testing.T) {
	combos := newCombinations(4, 2)

	var got [][]int
	for idx, ok := combos.next(); ok; idx, ok = combos.next() {
		got = append(got, append([]int(nil), idx...))
	}

	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("combinations = %v, want %v", got, want)
	}
}

func TestCombinationsDegenerateCases(t *testing.T) {
	if _, ok := newCombinations(3, 5).next(); ok {
		t.Error("k > n should yield nothing")
	}
	if _, ok := newCombinations(3, 0).next(); ok {
		t.Error("k = 0 should yield nothing")
	}

	combos := newCombinations(3, 3)
	idx, ok := combos.next()
	if !ok || !reflect.DeepEqual(idx, []int{0, 1, 2}) {
		t.Errorf("k = n first combination = %v ok=%t, want [0 1 2] true", idx, ok)
	}
	if _, ok := combos.next(); ok {
		t.Error("k = n should yield exactly one combination")
	}
}
