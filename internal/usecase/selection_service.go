package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
	"github.com/riskibarqy/f1-fantasy/internal/domain/selection"
	idgen "github.com/riskibarqy/f1-fantasy/internal/platform/id"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
)

// SubmitSelectionInput is a user-picked team for one race weekend.
type SubmitSelectionInput struct {
	RaceID         string
	DriverIDs      []string
	ConstructorIDs []string
	Budget         int64
}

type SelectionService struct {
	selectionRepo  selection.Repository
	weekendService *WeekendService
	idGen          idgen.Generator
	defaultBudget  int64
	logger         *logging.Logger
	now            func() time.Time
}

func NewSelectionService(
	selectionRepo selection.Repository,
	weekendService *WeekendService,
	idGen idgen.Generator,
	defaultBudget int64,
	logger *logging.Logger,
) *SelectionService {
	if defaultBudget <= 0 {
		defaultBudget = DefaultBudget
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SelectionService{
		selectionRepo:  selectionRepo,
		weekendService: weekendService,
		idGen:          idGen,
		defaultBudget:  defaultBudget,
		logger:         logger,
		now:            time.Now,
	}
}

// Submit prices and scores a user team against the weekend it was picked
// for, validates the 5+2 budget invariant, and persists it.
func (s *SelectionService) Submit(ctx context.Context, input SubmitSelectionInput) (selection.TeamSelection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Submit")
	defer span.End()

	input.RaceID = strings.TrimSpace(input.RaceID)
	if input.RaceID == "" {
		return selection.TeamSelection{}, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}
	budget := input.Budget
	if budget <= 0 {
		budget = s.defaultBudget
	}

	results, err := s.weekendService.EnsureScored(ctx, input.RaceID)
	if err != nil {
		return selection.TeamSelection{}, err
	}

	team := fantasyteam.Team{
		DriverIDs:      append([]string(nil), input.DriverIDs...),
		ConstructorIDs: append([]string(nil), input.ConstructorIDs...),
	}
	for _, driverID := range team.DriverIDs {
		perf, ok := results.DriverByID(driverID)
		if !ok {
			return selection.TeamSelection{}, fmt.Errorf("%w: driver %s did not race in %s", ErrInvalidInput, driverID, input.RaceID)
		}
		team.TotalCost += perf.Price
		team.TotalPoints += perf.TotalPoints
	}
	for _, constructorID := range team.ConstructorIDs {
		perf, ok := results.ConstructorByID(constructorID)
		if !ok {
			return selection.TeamSelection{}, fmt.Errorf("%w: constructor %s did not race in %s", ErrInvalidInput, constructorID, input.RaceID)
		}
		team.TotalCost += perf.Price
		team.TotalPoints += perf.TotalPoints
	}

	if err := team.Validate(budget); err != nil {
		return selection.TeamSelection{}, err
	}

	selectionID, err := s.idGen.NewID()
	if err != nil {
		return selection.TeamSelection{}, fmt.Errorf("generate selection id: %w", err)
	}

	item := selection.TeamSelection{
		ID:        selectionID,
		RaceID:    input.RaceID,
		Team:      team,
		CreatedAt: s.now().UTC(),
	}
	if err := s.selectionRepo.Insert(ctx, item); err != nil {
		return selection.TeamSelection{}, fmt.Errorf("insert team selection: %w", err)
	}

	s.logger.InfoContext(ctx, "team selection submitted",
		"selection_id", item.ID,
		"race_id", item.RaceID,
		"total_cost", team.TotalCost,
		"total_points", team.TotalPoints,
	)
	return item, nil
}

func (s *SelectionService) GetByID(ctx context.Context, selectionID string) (selection.TeamSelection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.GetByID")
	defer span.End()

	selectionID = strings.TrimSpace(selectionID)
	if selectionID == "" {
		return selection.TeamSelection{}, fmt.Errorf("%w: selection id is required", ErrInvalidInput)
	}

	item, ok, err := s.selectionRepo.GetByID(ctx, selectionID)
	if err != nil {
		return selection.TeamSelection{}, fmt.Errorf("get team selection %s: %w", selectionID, err)
	}
	if !ok {
		return selection.TeamSelection{}, fmt.Errorf("%w: selection %s", ErrNotFound, selectionID)
	}
	return item, nil
}

func (s *SelectionService) ListByRace(ctx context.Context, raceID string) ([]selection.TeamSelection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.ListByRace")
	defer span.End()

	raceID = strings.TrimSpace(raceID)
	if raceID == "" {
		return nil, fmt.Errorf("%w: race id is required", ErrInvalidInput)
	}

	items, err := s.selectionRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("list team selections for race %s: %w", raceID, err)
	}
	return items, nil
}
