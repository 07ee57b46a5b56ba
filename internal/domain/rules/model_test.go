package rules

import (
	"errors"
	"testing"
)

func TestSeason2025Curves(t *testing.T) {
	rs := Season2025()

	if err := rs.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	qualifyingWant := map[int]int{1: 10, 2: 9, 5: 6, 10: 1, 11: 0, 15: 0, 16: -1, 20: -1, 21: -2}
	for position, want := range qualifyingWant {
		got, err := rs.QualifyingPositionPoints.PointsFor(position)
		if err != nil {
			t.Fatalf("qualifying PointsFor(%d) error: %v", position, err)
		}
		if got != want {
			t.Errorf("qualifying PointsFor(%d) = %d, want %d", position, got, want)
		}
	}

	raceWant := map[int]int{1: 25, 2: 18, 3: 15, 5: 10, 10: 1, 11: 0, 16: -1, 21: -2}
	for position, want := range raceWant {
		got, err := rs.RacePositionPoints.PointsFor(position)
		if err != nil {
			t.Fatalf("race PointsFor(%d) error: %v", position, err)
		}
		if got != want {
			t.Errorf("race PointsFor(%d) = %d, want %d", position, got, want)
		}
	}
}

func TestPointsTableCoversGridContiguously(t *testing.T) {
	rs := Season2025()

	for position := 1; position <= 20; position++ {
		if _, err := rs.QualifyingPositionPoints.PointsFor(position); err != nil {
			t.Errorf("qualifying position %d not covered: %v", position, err)
		}
		if _, err := rs.RacePositionPoints.PointsFor(position); err != nil {
			t.Errorf("race position %d not covered: %v", position, err)
		}
	}
}

func TestPointsForBeyondCoverageIsZero(t *testing.T) {
	table := NewPointsTable(5, 3, 1)

	got, err := table.PointsFor(4)
	if err != nil {
		t.Fatalf("PointsFor(4) error: %v", err)
	}
	if got != 0 {
		t.Errorf("PointsFor(4) = %d, want 0", got)
	}

	got, err = table.PointsFor(1000)
	if err != nil {
		t.Fatalf("PointsFor(1000) error: %v", err)
	}
	if got != 0 {
		t.Errorf("PointsFor(1000) = %d, want 0", got)
	}
}

func TestPointsForRejectsPositionsBelowOne(t *testing.T) {
	table := NewPointsTable(5, 3, 1)

	for _, position := range []int{0, -1, -20} {
		if _, err := table.PointsFor(position); !errors.Is(err, ErrInvalidPosition) {
			t.Errorf("PointsFor(%d) error = %v, want ErrInvalidPosition", position, err)
		}
	}
}

func TestValidateRejectsShortTables(t *testing.T) {
	rs := Season2025()
	rs.RacePositionPoints = NewPointsTable(25, 18, 15)

	if err := rs.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for short race table")
	}
}
