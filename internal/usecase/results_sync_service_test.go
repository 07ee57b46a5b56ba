package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/memory"
)

type stubRaceDataProvider struct {
	schedule   []ExternalRace
	qualifying []ExternalQualifyingResult
	race       []ExternalRaceResult
	pitStops   []ExternalPitStopSummary

	raceErr error
}

func (p *stubRaceDataProvider) FetchSchedule(_ context.Context, _ int) ([]ExternalRace, error) {
	return p.schedule, nil
}

func (p *stubRaceDataProvider) FetchQualifyingResults(_ context.Context, _, _ int) ([]ExternalQualifyingResult, error) {
	return p.qualifying, nil
}

func (p *stubRaceDataProvider) FetchRaceResults(_ context.Context, _, _ int) ([]ExternalRaceResult, error) {
	if p.raceErr != nil {
		return nil, p.raceErr
	}
	return p.race, nil
}

func (p *stubRaceDataProvider) FetchPitStopSummaries(_ context.Context, _, _ int) ([]ExternalPitStopSummary, error) {
	return p.pitStops, nil
}

func intPtr(v int) *int { return &v }

func newStubProvider() *stubRaceDataProvider {
	return &stubRaceDataProvider{
		schedule: []ExternalRace{
			{
				Season:   2025,
				Round:    2,
				RaceID:   "2025-saudi-arabia",
				RaceName: "Saudi Arabian Grand Prix",
				Circuit:  "Jeddah Corniche Circuit",
				Date:     time.Date(2025, 4, 20, 17, 0, 0, 0, time.UTC),
			},
		},
		qualifying: []ExternalQualifyingResult{
			{DriverID: "piastri", ConstructorID: "mclaren", Position: 1, Q2Time: "1:27.7", Q3Time: "1:27.0"},
			{DriverID: "norris", ConstructorID: "mclaren", Position: 2, Q2Time: "1:27.9", Q3Time: "1:27.2"},
			{DriverID: "ocon", ConstructorID: "haas", Position: 13, Q2Time: "1:28.9"},
			{DriverID: "bearman", ConstructorID: "haas", Position: 18},
		},
		race: []ExternalRaceResult{
			{DriverID: "piastri", ConstructorID: "mclaren", GridPosition: 1, Position: intPtr(1), Status: "Finished", FastestLap: true},
			{DriverID: "norris", ConstructorID: "mclaren", GridPosition: 2, Position: intPtr(2), Status: "Finished"},
			{DriverID: "ocon", ConstructorID: "haas", GridPosition: 13, Position: intPtr(14), Status: "+1 Lap"},
			{DriverID: "bearman", ConstructorID: "haas", GridPosition: 18, Status: "Accident"},
		},
		pitStops: []ExternalPitStopSummary{
			{ConstructorID: "mclaren", FastestStop: 2200 * time.Millisecond},
			{ConstructorID: "haas", FastestStop: 1980 * time.Millisecond, IsSeasonRecord: true},
		},
	}
}

func TestResultsSyncService_SyncRound_AssemblesWeekend(t *testing.T) {
	weekendRepo := memory.NewWeekendRepository(nil)
	svc := NewResultsSyncService(newStubProvider(), weekendRepo, nil)

	results, err := svc.SyncRound(t.Context(), 2025, 2)
	if err != nil {
		t.Fatalf("sync round failed: %v", err)
	}

	if results.RaceID != "2025-saudi-arabia" {
		t.Fatalf("unexpected race id: %s", results.RaceID)
	}
	if len(results.Drivers()) != 4 {
		t.Fatalf("unexpected driver count: %d", len(results.Drivers()))
	}

	piastri, _ := results.DriverByID("piastri")
	if piastri.QualifyingPosition == nil || *piastri.QualifyingPosition != 1 {
		t.Fatal("piastri qualifying position not mapped")
	}
	if !piastri.Q3Appearance || !piastri.FastestLap || !piastri.FinishedRace {
		t.Fatalf("piastri session flags not mapped: %+v", piastri)
	}

	// Lapped cars are still classified finishers.
	ocon, _ := results.DriverByID("ocon")
	if !ocon.FinishedRace {
		t.Fatal("lapped car must count as finished")
	}
	if !ocon.Q2Appearance || ocon.Q3Appearance {
		t.Fatal("ocon should be Q2-only")
	}

	bearman, _ := results.DriverByID("bearman")
	if bearman.FinishedRace || bearman.RacePosition != nil {
		t.Fatal("retired car must be unclassified")
	}

	haas, _ := results.ConstructorByID("haas")
	if !haas.FastestPitStop || !haas.PitStopRecord {
		t.Fatalf("haas pit stop flags not mapped: %+v", haas)
	}
	mclaren, _ := results.ConstructorByID("mclaren")
	if mclaren.FastestPitStop {
		t.Fatal("only the fastest stop of the race gets the flag")
	}

	_, ok, err := weekendRepo.GetByRaceID(t.Context(), "2025-saudi-arabia")
	if err != nil || !ok {
		t.Fatalf("synced weekend not persisted: ok=%v err=%v", ok, err)
	}
}

func TestResultsSyncService_SyncRound_UnknownRound(t *testing.T) {
	svc := NewResultsSyncService(newStubProvider(), memory.NewWeekendRepository(nil), nil)

	_, err := svc.SyncRound(t.Context(), 2025, 24)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResultsSyncService_SyncRound_ProviderFailure(t *testing.T) {
	provider := newStubProvider()
	provider.raceErr = errors.New("upstream 503")
	svc := NewResultsSyncService(provider, memory.NewWeekendRepository(nil), nil)

	_, err := svc.SyncRound(t.Context(), 2025, 2)
	if err == nil {
		t.Fatal("expected provider failure to surface")
	}
}

func TestResultsSyncService_SyncRound_InvalidInput(t *testing.T) {
	svc := NewResultsSyncService(newStubProvider(), memory.NewWeekendRepository(nil), nil)

	_, err := svc.SyncRound(t.Context(), 0, 1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
