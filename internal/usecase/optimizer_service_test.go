package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/f1-fantasy/internal/domain/optimizer"
	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/memory"
)

func TestOptimizerService_OptimalTeam_ExactMode(t *testing.T) {
	weekendSvc, _ := newSeededWeekendService()
	svc := NewOptimizerService(weekendSvc, 0, nil)

	team, err := svc.OptimalTeam(t.Context(), memory.RaceIDBahrain, 0, optimizer.ModeExact)
	if err != nil {
		t.Fatalf("optimal team failed: %v", err)
	}

	if len(team.DriverIDs) != 5 || len(team.ConstructorIDs) != 2 {
		t.Fatalf("unexpected team shape: %d drivers, %d constructors", len(team.DriverIDs), len(team.ConstructorIDs))
	}
	if team.TotalCost > DefaultBudget {
		t.Fatalf("team cost %d exceeds budget %d", team.TotalCost, DefaultBudget)
	}
}

func TestOptimizerService_OptimalTeam_ExactBeatsGreedy(t *testing.T) {
	weekendSvc, _ := newSeededWeekendService()
	svc := NewOptimizerService(weekendSvc, 0, nil)

	exact, err := svc.OptimalTeam(t.Context(), memory.RaceIDBahrain, 0, optimizer.ModeExact)
	if err != nil {
		t.Fatalf("exact mode failed: %v", err)
	}
	greedy, err := svc.OptimalTeam(t.Context(), memory.RaceIDBahrain, 0, optimizer.ModeGreedy)
	if err != nil {
		t.Fatalf("greedy mode failed: %v", err)
	}

	if greedy.TotalPoints > exact.TotalPoints {
		t.Fatalf("greedy %d outscored exact %d", greedy.TotalPoints, exact.TotalPoints)
	}
}

func TestOptimizerService_OptimalTeam_InfeasibleBudget(t *testing.T) {
	weekendSvc, _ := newSeededWeekendService()
	svc := NewOptimizerService(weekendSvc, 0, nil)

	_, err := svc.OptimalTeam(t.Context(), memory.RaceIDBahrain, 100, optimizer.ModeExact)
	if !errors.Is(err, optimizer.ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestOptimizerService_OptimalTeam_UnknownRace(t *testing.T) {
	weekendSvc, _ := newSeededWeekendService()
	svc := NewOptimizerService(weekendSvc, 0, nil)

	_, err := svc.OptimalTeam(t.Context(), "2025-never-held", 0, optimizer.ModeExact)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
