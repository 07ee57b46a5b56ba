package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
	"github.com/riskibarqy/f1-fantasy/internal/domain/optimizer"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
)

// DefaultBudget is the $100M season budget in tenths of a million.
const DefaultBudget int64 = 1000

type OptimizerService struct {
	weekendService *WeekendService
	defaultBudget  int64
	logger         *logging.Logger
}

func NewOptimizerService(weekendService *WeekendService, defaultBudget int64, logger *logging.Logger) *OptimizerService {
	if defaultBudget <= 0 {
		defaultBudget = DefaultBudget
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &OptimizerService{
		weekendService: weekendService,
		defaultBudget:  defaultBudget,
		logger:         logger,
	}
}

// OptimalTeam finds the best 5+2 selection for a scored weekend. The weekend
// is scored first if needed. An infeasible budget is a legitimate outcome and
// surfaces as optimizer.ErrInfeasible, not as a defect.
func (s *OptimizerService) OptimalTeam(ctx context.Context, raceID string, budget int64, mode optimizer.Mode) (fantasyteam.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OptimizerService.OptimalTeam")
	defer span.End()

	if budget <= 0 {
		budget = s.defaultBudget
	}

	results, err := s.weekendService.EnsureScored(ctx, raceID)
	if err != nil {
		return fantasyteam.Team{}, err
	}

	team, err := optimizer.FindOptimalTeam(ctx, results, budget, mode)
	if err != nil {
		return fantasyteam.Team{}, fmt.Errorf("find optimal team for race %s: %w", raceID, err)
	}

	s.logger.InfoContext(ctx, "optimal team computed",
		"race_id", raceID,
		"mode", string(mode),
		"budget", budget,
		"total_cost", team.TotalCost,
		"total_points", team.TotalPoints,
	)
	return team, nil
}
