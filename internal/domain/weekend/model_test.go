package weekend

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int {
	return &v
}

func newTestResults() *Results {
	return NewResults("2025-05", 2025, 5, "Miami Grand Prix", "Miami International Autodrome", time.Date(2025, 5, 4, 0, 0, 0, 0, time.UTC))
}

func TestAddDriverPerformanceRejectsDuplicates(t *testing.T) {
	results := newTestResults()

	perf := DriverPerformance{DriverID: "norris", ConstructorID: "mclaren", Price: 290}
	if err := results.AddDriverPerformance(perf); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := results.AddDriverPerformance(perf); !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("second add error = %v, want ErrDuplicateEntry", err)
	}
}

func TestAddConstructorPerformanceRejectsDuplicates(t *testing.T) {
	results := newTestResults()

	perf := ConstructorPerformance{ConstructorID: "mclaren", DriverIDs: []string{"norris", "piastri"}, Price: 300}
	if err := results.AddConstructorPerformance(perf); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := results.AddConstructorPerformance(perf); !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("second add error = %v, want ErrDuplicateEntry", err)
	}
}

func TestDriversPreserveInsertionOrder(t *testing.T) {
	results := newTestResults()

	ids := []string{"zeta", "alpha", "mid"}
	for _, id := range ids {
		if err := results.AddDriverPerformance(DriverPerformance{DriverID: id, ConstructorID: "c", Price: 100}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	got := results.Drivers()
	for i, want := range ids {
		if got[i].DriverID != want {
			t.Errorf("Drivers()[%d] = %s, want %s", i, got[i].DriverID, want)
		}
	}
}

func TestDeriveTeammateComparisons(t *testing.T) {
	tests := []struct {
		name                   string
		firstQual, secondQual  *int
		firstRace, secondRace  *int
		wantFirstBeatsQual     bool
		wantSecondBeatsQual    bool
		wantFirstBeatsRace     bool
		wantSecondBeatsRace    bool
	}{
		{
			name:      "clear sweep",
			firstQual: intPtr(1), secondQual: intPtr(4),
			firstRace: intPtr(2), secondRace: intPtr(7),
			wantFirstBeatsQual: true, wantFirstBeatsRace: true,
		},
		{
			name:      "split sessions",
			firstQual: intPtr(3), secondQual: intPtr(2),
			firstRace: intPtr(1), secondRace: intPtr(5),
			wantSecondBeatsQual: true, wantFirstBeatsRace: true,
		},
		{
			name:      "classified beats missing",
			firstQual: intPtr(6), secondQual: nil,
			firstRace: intPtr(9), secondRace: nil,
			wantFirstBeatsQual: true, wantFirstBeatsRace: true,
		},
		{
			name:      "both missing race",
			firstQual: intPtr(6), secondQual: intPtr(8),
			firstRace: nil, secondRace: nil,
			wantFirstBeatsQual: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results := newTestResults()
			first := DriverPerformance{DriverID: "a", ConstructorID: "c1", QualifyingPosition: tc.firstQual, RacePosition: tc.firstRace, Price: 100}
			second := DriverPerformance{DriverID: "b", ConstructorID: "c1", QualifyingPosition: tc.secondQual, RacePosition: tc.secondRace, Price: 100}
			if err := results.AddDriverPerformance(first); err != nil {
				t.Fatal(err)
			}
			if err := results.AddDriverPerformance(second); err != nil {
				t.Fatal(err)
			}
			if err := results.AddConstructorPerformance(ConstructorPerformance{ConstructorID: "c1", DriverIDs: []string{"a", "b"}, Price: 100}); err != nil {
				t.Fatal(err)
			}

			results.DeriveTeammateComparisons()

			gotFirst, _ := results.DriverByID("a")
			gotSecond, _ := results.DriverByID("b")
			if gotFirst.BeatTeammateQualifying != tc.wantFirstBeatsQual {
				t.Errorf("first BeatTeammateQualifying = %t, want %t", gotFirst.BeatTeammateQualifying, tc.wantFirstBeatsQual)
			}
			if gotSecond.BeatTeammateQualifying != tc.wantSecondBeatsQual {
				t.Errorf("second BeatTeammateQualifying = %t, want %t", gotSecond.BeatTeammateQualifying, tc.wantSecondBeatsQual)
			}
			if gotFirst.BeatTeammateRace != tc.wantFirstBeatsRace {
				t.Errorf("first BeatTeammateRace = %t, want %t", gotFirst.BeatTeammateRace, tc.wantFirstBeatsRace)
			}
			if gotSecond.BeatTeammateRace != tc.wantSecondBeatsRace {
				t.Errorf("second BeatTeammateRace = %t, want %t", gotSecond.BeatTeammateRace, tc.wantSecondBeatsRace)
			}
		})
	}
}

func TestApplyDriverScoreOverwrites(t *testing.T) {
	results := newTestResults()
	if err := results.AddDriverPerformance(DriverPerformance{DriverID: "d1", ConstructorID: "c1", Price: 100}); err != nil {
		t.Fatal(err)
	}

	if err := results.ApplyDriverScore("d1", 10, []BreakdownItem{{Rule: "race_position", Points: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := results.ApplyDriverScore("d1", 7, []BreakdownItem{{Rule: "race_position", Points: 7}}); err != nil {
		t.Fatal(err)
	}

	got, _ := results.DriverByID("d1")
	if got.TotalPoints != 7 || len(got.Breakdown) != 1 {
		t.Errorf("score did not overwrite: total=%d breakdown=%v", got.TotalPoints, got.Breakdown)
	}
}

func TestApplyDriverScoreUnknownDriver(t *testing.T) {
	results := newTestResults()
	if err := results.ApplyDriverScore("ghost", 1, nil); err == nil {
		t.Fatal("ApplyDriverScore for unknown driver returned nil error")
	}
}
