package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
)

type RecomputeSeasonInput struct {
	Season     int
	MaxWorkers int
	// RaceIDs narrows the recompute to specific rounds; empty means the whole season.
	RaceIDs []string
}

type RecomputeSeasonResult struct {
	Season       int                   `json:"season"`
	RaceCount    int                   `json:"race_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	WorkerCount  int                   `json:"worker_count"`
	Races        []RecomputeRaceResult `json:"races"`
}

type RecomputeRaceResult struct {
	RaceID     string `json:"race_id"`
	Status     string `json:"status"`
	Points     int    `json:"points"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	recomputeStatusSuccess = "success"
	recomputeStatusFailed  = "failed"
)

// SeasonRecomputeService re-runs the scoring pass over every round of a
// season, e.g. after a rule correction or a price backfill. Rounds are
// independent, so they score on a bounded worker pool.
type SeasonRecomputeService struct {
	weekendRepo    weekend.Repository
	weekendService *WeekendService
	logger         *logging.Logger
}

func NewSeasonRecomputeService(
	weekendRepo weekend.Repository,
	weekendService *WeekendService,
	logger *logging.Logger,
) *SeasonRecomputeService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonRecomputeService{
		weekendRepo:    weekendRepo,
		weekendService: weekendService,
		logger:         logger,
	}
}

func (s *SeasonRecomputeService) Recompute(ctx context.Context, input RecomputeSeasonInput) (RecomputeSeasonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonRecomputeService.Recompute")
	defer span.End()

	if s.weekendService == nil {
		return RecomputeSeasonResult{}, fmt.Errorf("%w: weekend service is not configured", ErrDependencyUnavailable)
	}
	if input.Season <= 0 {
		return RecomputeSeasonResult{}, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	raceIDs := input.RaceIDs
	if len(raceIDs) == 0 {
		var err error
		raceIDs, err = s.weekendRepo.ListRaceIDsBySeason(ctx, input.Season)
		if err != nil {
			return RecomputeSeasonResult{}, fmt.Errorf("list races for season %d: %w", input.Season, err)
		}
	}

	workerCount := normalizeRecomputeWorkerCount(input.MaxWorkers, len(raceIDs))
	result := RecomputeSeasonResult{
		Season:      input.Season,
		RaceCount:   len(raceIDs),
		WorkerCount: workerCount,
		Races:       make([]RecomputeRaceResult, 0, len(raceIDs)),
	}
	if len(raceIDs) == 0 {
		return result, nil
	}

	rows := make(chan RecomputeRaceResult, len(raceIDs))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeSeasonResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, raceID := range raceIDs {
		raceID := raceID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RecomputeRaceResult{RaceID: raceID}

			results, err := s.weekendService.ScoreWeekend(ctx, raceID)
			if err != nil {
				row.Status = recomputeStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = recomputeStatusSuccess
				row.Points = totalWeekendPoints(results)
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			rows <- row
		}); err != nil {
			workers.Done()
			return RecomputeSeasonResult{}, fmt.Errorf("submit race to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Races = append(result.Races, row)
	}
	sort.SliceStable(result.Races, func(i, j int) bool {
		return result.Races[i].RaceID < result.Races[j].RaceID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "season recompute finished",
		"season", input.Season,
		"races", result.RaceCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)
	return result, nil
}

func totalWeekendPoints(results *weekend.Results) int {
	total := 0
	for _, perf := range results.Drivers() {
		total += perf.TotalPoints
	}
	for _, perf := range results.Constructors() {
		total += perf.TotalPoints
	}
	return total
}

func normalizeRecomputeWorkerCount(value int, raceCount int) int {
	if raceCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 4
	}
	if value > 8 {
		value = 8
	}
	if value > raceCount {
		value = raceCount
	}
	return value
}
