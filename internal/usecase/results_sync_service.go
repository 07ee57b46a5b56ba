package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
)

// External session payloads as the F1 data provider reports them. The sync
// service owns mapping these onto weekend facts.

type ExternalRace struct {
	Season   int
	Round    int
	RaceID   string
	RaceName string
	Circuit  string
	Date     time.Time
}

type ExternalQualifyingResult struct {
	DriverID      string
	ConstructorID string
	Position      int
	Q2Time        string
	Q3Time        string
}

type ExternalRaceResult struct {
	DriverID      string
	ConstructorID string
	GridPosition  int
	Position      *int
	Status        string
	FastestLap    bool
}

type ExternalPitStopSummary struct {
	ConstructorID  string
	FastestStop    time.Duration
	IsSeasonRecord bool
}

// RaceDataProvider fetches race weekend data from the external F1 API.
type RaceDataProvider interface {
	FetchSchedule(ctx context.Context, season int) ([]ExternalRace, error)
	FetchQualifyingResults(ctx context.Context, season, round int) ([]ExternalQualifyingResult, error)
	FetchRaceResults(ctx context.Context, season, round int) ([]ExternalRaceResult, error)
	FetchPitStopSummaries(ctx context.Context, season, round int) ([]ExternalPitStopSummary, error)
}

// ResultsSyncService pulls one round's sessions from the provider and upserts
// the raw weekend facts. Scoring is a separate pass.
type ResultsSyncService struct {
	provider    RaceDataProvider
	weekendRepo weekend.Repository
	logger      *logging.Logger
}

func NewResultsSyncService(provider RaceDataProvider, weekendRepo weekend.Repository, logger *logging.Logger) *ResultsSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultsSyncService{
		provider:    provider,
		weekendRepo: weekendRepo,
		logger:      logger,
	}
}

// SyncRound fetches qualifying, race and pit stop data for one round in
// parallel and stores the assembled weekend.
func (s *ResultsSyncService) SyncRound(ctx context.Context, season, round int) (*weekend.Results, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsSyncService.SyncRound")
	defer span.End()

	if s.provider == nil {
		return nil, fmt.Errorf("%w: race data provider is not configured", ErrDependencyUnavailable)
	}
	if season <= 0 || round <= 0 {
		return nil, fmt.Errorf("%w: season and round must be greater than zero", ErrInvalidInput)
	}

	schedule, err := s.provider.FetchSchedule(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule season=%d: %w", season, err)
	}
	race, ok := findRace(schedule, round)
	if !ok {
		return nil, fmt.Errorf("%w: season %d has no round %d", ErrNotFound, season, round)
	}

	var (
		qualifying []ExternalQualifyingResult
		raceRes    []ExternalRaceResult
		pitStops   []ExternalPitStopSummary
	)

	// The three session fetches are independent; fail fast on the first error.
	group := pool.New().WithContext(ctx).WithCancelOnError()
	group.Go(func(ctx context.Context) error {
		var err error
		qualifying, err = s.provider.FetchQualifyingResults(ctx, season, round)
		return err
	})
	group.Go(func(ctx context.Context) error {
		var err error
		raceRes, err = s.provider.FetchRaceResults(ctx, season, round)
		return err
	})
	group.Go(func(ctx context.Context) error {
		var err error
		pitStops, err = s.provider.FetchPitStopSummaries(ctx, season, round)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("fetch sessions season=%d round=%d: %w", season, round, err)
	}

	results, err := assembleWeekend(race, qualifying, raceRes, pitStops)
	if err != nil {
		return nil, fmt.Errorf("assemble weekend season=%d round=%d: %w", season, round, err)
	}

	if err := s.weekendRepo.Upsert(ctx, results); err != nil {
		return nil, fmt.Errorf("persist weekend %s: %w", results.RaceID, err)
	}

	s.logger.InfoContext(ctx, "round synced",
		"race_id", results.RaceID,
		"season", season,
		"round", round,
		"drivers", len(results.Drivers()),
	)
	return results, nil
}

func findRace(schedule []ExternalRace, round int) (ExternalRace, bool) {
	for _, race := range schedule {
		if race.Round == round {
			return race, true
		}
	}
	return ExternalRace{}, false
}

func assembleWeekend(
	race ExternalRace,
	qualifying []ExternalQualifyingResult,
	raceResults []ExternalRaceResult,
	pitStops []ExternalPitStopSummary,
) (*weekend.Results, error) {
	results := weekend.NewResults(race.RaceID, race.Season, race.Round, race.RaceName, race.Circuit, race.Date)

	qualifyingByDriver := make(map[string]ExternalQualifyingResult, len(qualifying))
	for _, q := range qualifying {
		qualifyingByDriver[q.DriverID] = q
	}

	driversByConstructor := make(map[string][]string)
	for _, r := range raceResults {
		perf := weekend.DriverPerformance{
			DriverID:      r.DriverID,
			ConstructorID: r.ConstructorID,
			GridPosition:  r.GridPosition,
			FinishedRace:  isFinishedStatus(r.Status),
			FastestLap:    r.FastestLap,
			Disqualified:  isDisqualifiedStatus(r.Status),
		}
		if r.Position != nil {
			position := *r.Position
			perf.RacePosition = &position
		}
		if q, ok := qualifyingByDriver[r.DriverID]; ok {
			position := q.Position
			perf.QualifyingPosition = &position
			perf.Q2Appearance = strings.TrimSpace(q.Q2Time) != ""
			perf.Q3Appearance = strings.TrimSpace(q.Q3Time) != ""
		}
		// Driver-of-the-day votes are not published through the results
		// API; the flag stays false until set by a manual correction.
		if err := results.AddDriverPerformance(perf); err != nil {
			return nil, err
		}
		driversByConstructor[r.ConstructorID] = append(driversByConstructor[r.ConstructorID], r.DriverID)
	}

	fastestConstructor, recordConstructor := fastestPitStop(pitStops)

	constructorIDs := make([]string, 0, len(driversByConstructor))
	for constructorID := range driversByConstructor {
		constructorIDs = append(constructorIDs, constructorID)
	}
	sort.Strings(constructorIDs)

	for _, constructorID := range constructorIDs {
		perf := weekend.ConstructorPerformance{
			ConstructorID:  constructorID,
			DriverIDs:      driversByConstructor[constructorID],
			FastestPitStop: constructorID == fastestConstructor,
			PitStopRecord:  constructorID == recordConstructor,
		}
		if err := results.AddConstructorPerformance(perf); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func fastestPitStop(pitStops []ExternalPitStopSummary) (fastestID, recordID string) {
	var fastest time.Duration
	for _, p := range pitStops {
		if p.FastestStop <= 0 {
			continue
		}
		if fastestID == "" || p.FastestStop < fastest {
			fastestID = p.ConstructorID
			fastest = p.FastestStop
		}
		if p.IsSeasonRecord {
			recordID = p.ConstructorID
		}
	}
	return fastestID, recordID
}

func isFinishedStatus(status string) bool {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized == "finished" {
		return true
	}
	// Lapped cars are classified finishers, e.g. "+1 Lap" / "+2 Laps".
	return strings.HasPrefix(normalized, "+") && strings.HasSuffix(normalized, "lap") ||
		strings.HasPrefix(normalized, "+") && strings.HasSuffix(normalized, "laps")
}

func isDisqualifiedStatus(status string) bool {
	normalized := strings.ToLower(strings.TrimSpace(status))
	return normalized == "disqualified" || normalized == "dsq"
}
