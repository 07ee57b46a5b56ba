package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/memory"
)

func TestSeasonRecomputeService_Recompute_SeededSeason(t *testing.T) {
	weekendRepo := memory.NewWeekendRepository(memory.SeedWeekends())
	rulesRepo := memory.NewRulesRepository(memory.SeedRuleSets())
	priceRepo := memory.NewPriceRepository(memory.SeedPrices())
	weekendSvc := NewWeekendService(weekendRepo, rulesRepo, priceRepo, nil, nil)

	svc := NewSeasonRecomputeService(weekendRepo, weekendSvc, nil)

	result, err := svc.Recompute(t.Context(), RecomputeSeasonInput{Season: memory.SeedSeason})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	if result.RaceCount != 1 || result.SuccessCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Races) != 1 || result.Races[0].RaceID != memory.RaceIDBahrain {
		t.Fatalf("unexpected race rows: %+v", result.Races)
	}
	if result.Races[0].Status != recomputeStatusSuccess {
		t.Fatalf("unexpected race status: %s", result.Races[0].Status)
	}

	stored, ok, err := weekendRepo.GetByRaceID(t.Context(), memory.RaceIDBahrain)
	if err != nil || !ok {
		t.Fatalf("recomputed weekend missing: ok=%v err=%v", ok, err)
	}
	if !stored.Scored() {
		t.Fatal("recomputed weekend should carry scores")
	}
}

func TestSeasonRecomputeService_Recompute_ReportsFailedRounds(t *testing.T) {
	weekendRepo := memory.NewWeekendRepository(memory.SeedWeekends())
	rulesRepo := memory.NewRulesRepository(memory.SeedRuleSets())
	priceRepo := memory.NewPriceRepository(memory.SeedPrices())
	weekendSvc := NewWeekendService(weekendRepo, rulesRepo, priceRepo, nil, nil)

	svc := NewSeasonRecomputeService(weekendRepo, weekendSvc, nil)

	result, err := svc.Recompute(t.Context(), RecomputeSeasonInput{
		Season:  memory.SeedSeason,
		RaceIDs: []string{memory.RaceIDBahrain, "2025-never-held"},
	})
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	if result.SuccessCount != 1 || result.FailedCount != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestSeasonRecomputeService_Recompute_InvalidSeason(t *testing.T) {
	weekendRepo := memory.NewWeekendRepository(nil)
	svc := NewSeasonRecomputeService(weekendRepo, NewWeekendService(weekendRepo, memory.NewRulesRepository(nil), memory.NewPriceRepository(nil), nil, nil), nil)

	_, err := svc.Recompute(t.Context(), RecomputeSeasonInput{Season: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
