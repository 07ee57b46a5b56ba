package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
	"github.com/riskibarqy/f1-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
	"github.com/riskibarqy/f1-fantasy/internal/platform/cache"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
)

// WeekendService loads race weekend facts, resolves effective prices and rule
// sets, and runs the scoring pass. All price and rule lookups happen here so
// the scorer itself stays pure and I/O free.
type WeekendService struct {
	weekendRepo weekend.Repository
	rulesRepo   rules.Repository
	priceRepo   pricing.Repository
	ruleCache   *cache.Store
	logger      *logging.Logger
}

func NewWeekendService(
	weekendRepo weekend.Repository,
	rulesRepo rules.Repository,
	priceRepo pricing.Repository,
	ruleCache *cache.Store,
	logger *logging.Logger,
) *WeekendService {
	if logger == nil {
		logger = logging.Default()
	}

	return &WeekendService{
		weekendRepo: weekendRepo,
		rulesRepo:   rulesRepo,
		priceRepo:   priceRepo,
		ruleCache:   ruleCache,
		logger:      logger,
	}
}

// GetWeekend returns the stored results for one race, scored or not.
func (s *WeekendService) GetWeekend(ctx context.Context, raceID string) (*weekend.Results, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekendService.GetWeekend")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return nil, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}

	results, ok, err := s.weekendRepo.GetByRaceID(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("get weekend %s: %w", raceID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: race %s", ErrNotFound, raceID)
	}
	return results, nil
}

// ScoreWeekend prices and scores every performance of one race weekend and
// persists the result. Re-running replaces previous scores. A record that
// fails validation rejects the whole pass; nothing is silently skipped.
func (s *WeekendService) ScoreWeekend(ctx context.Context, raceID string) (*weekend.Results, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekendService.ScoreWeekend")
	defer span.End()

	results, err := s.GetWeekend(ctx, raceID)
	if err != nil {
		return nil, err
	}

	ruleSet, err := s.RuleSet(ctx, results.Season)
	if err != nil {
		return nil, err
	}

	if err := s.attachPrices(ctx, results); err != nil {
		return nil, err
	}

	if err := scoring.ScoreWeekend(results, ruleSet); err != nil {
		return nil, fmt.Errorf("score weekend %s: %w", raceID, err)
	}

	if err := s.weekendRepo.Upsert(ctx, results); err != nil {
		return nil, fmt.Errorf("persist scored weekend %s: %w", raceID, err)
	}

	s.logger.InfoContext(ctx, "weekend scored",
		"race_id", results.RaceID,
		"season", results.Season,
		"drivers", len(results.Drivers()),
		"constructors", len(results.Constructors()),
	)
	return results, nil
}

// EnsureScored returns the weekend with scores attached, scoring it first if
// a previous pass has not run yet.
func (s *WeekendService) EnsureScored(ctx context.Context, raceID string) (*weekend.Results, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekendService.EnsureScored")
	defer span.End()

	results, err := s.GetWeekend(ctx, raceID)
	if err != nil {
		return nil, err
	}
	if results.Scored() {
		return results, nil
	}
	return s.ScoreWeekend(ctx, raceID)
}

// RuleSet returns the season's immutable rule set, cached per season.
func (s *WeekendService) RuleSet(ctx context.Context, season int) (rules.ScoringRuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekendService.RuleSet")
	defer span.End()

	if season <= 0 {
		return rules.ScoringRuleSet{}, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	load := func(ctx context.Context) (any, error) {
		ruleSet, ok, err := s.rulesRepo.GetBySeason(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("load rule set for season %d: %w", season, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: season %d", rules.ErrUnknownSeason, season)
		}
		if err := ruleSet.Validate(); err != nil {
			return nil, fmt.Errorf("rule set for season %d: %w", season, err)
		}
		return ruleSet, nil
	}

	if s.ruleCache == nil {
		value, err := load(ctx)
		if err != nil {
			return rules.ScoringRuleSet{}, err
		}
		return value.(rules.ScoringRuleSet), nil
	}

	value, err := s.ruleCache.GetOrLoad(ctx, fmt.Sprintf("rules:season:%d", season), load)
	if err != nil {
		return rules.ScoringRuleSet{}, err
	}
	return value.(rules.ScoringRuleSet), nil
}

func (s *WeekendService) attachPrices(ctx context.Context, results *weekend.Results) error {
	for _, perf := range results.Drivers() {
		price, ok, err := s.priceRepo.PriceAt(ctx, perf.DriverID, results.Date)
		if err != nil {
			return fmt.Errorf("price for driver %s: %w", perf.DriverID, err)
		}
		if !ok {
			return fmt.Errorf("%w: driver %s as of %s", pricing.ErrNoPriceData, perf.DriverID, results.Date.Format("2006-01-02"))
		}
		if err := results.SetDriverPrice(perf.DriverID, price); err != nil {
			return err
		}
	}

	for _, perf := range results.Constructors() {
		price, ok, err := s.priceRepo.PriceAt(ctx, perf.ConstructorID, results.Date)
		if err != nil {
			return fmt.Errorf("price for constructor %s: %w", perf.ConstructorID, err)
		}
		if !ok {
			return fmt.Errorf("%w: constructor %s as of %s", pricing.ErrNoPriceData, perf.ConstructorID, results.Date.Format("2006-01-02"))
		}
		if err := results.SetConstructorPrice(perf.ConstructorID, price); err != nil {
			return err
		}
	}

	return nil
}
