package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
	"github.com/riskibarqy/f1-fantasy/internal/domain/optimizer"
	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

type breakdownItemResponse struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

type driverPerformanceResponse struct {
	DriverID           string `json:"driverId"`
	ConstructorID      string `json:"constructorId"`
	QualifyingPosition *int   `json:"qualifyingPosition,omitempty"`
	GridPosition       int    `json:"gridPosition"`
	RacePosition       *int   `json:"racePosition,omitempty"`

	Q2Appearance bool `json:"q2Appearance"`
	Q3Appearance bool `json:"q3Appearance"`
	FinishedRace bool `json:"finishedRace"`
	FastestLap   bool `json:"fastestLap"`
	DriverOfDay  bool `json:"driverOfDay"`
	Disqualified bool `json:"disqualified"`

	Price       int64                   `json:"price"`
	TotalPoints int                     `json:"totalPoints"`
	Breakdown   []breakdownItemResponse `json:"breakdown,omitempty"`
}

type constructorPerformanceResponse struct {
	ConstructorID  string   `json:"constructorId"`
	DriverIDs      []string `json:"driverIds"`
	FastestPitStop bool     `json:"fastestPitStop"`
	PitStopRecord  bool     `json:"pitStopRecord"`

	Price       int64                   `json:"price"`
	TotalPoints int                     `json:"totalPoints"`
	Breakdown   []breakdownItemResponse `json:"breakdown,omitempty"`
}

type weekendResponse struct {
	RaceID       string                           `json:"raceId"`
	Season       int                              `json:"season"`
	Round        int                              `json:"round"`
	RaceName     string                           `json:"raceName"`
	Circuit      string                           `json:"circuit,omitempty"`
	Date         time.Time                        `json:"date"`
	Scored       bool                             `json:"scored"`
	Drivers      []driverPerformanceResponse      `json:"drivers"`
	Constructors []constructorPerformanceResponse `json:"constructors"`
}

type teamResponse struct {
	DriverIDs      []string `json:"driverIds"`
	ConstructorIDs []string `json:"constructorIds"`
	TotalCost      int64    `json:"totalCost"`
	TotalPoints    int      `json:"totalPoints"`
}

type optimalTeamResponse struct {
	RaceID string       `json:"raceId"`
	Mode   string       `json:"mode"`
	Budget int64        `json:"budget"`
	Team   teamResponse `json:"team"`
}

func toWeekendResponse(results *weekend.Results) weekendResponse {
	drivers := results.Drivers()
	constructors := results.Constructors()

	out := weekendResponse{
		RaceID:       results.RaceID,
		Season:       results.Season,
		Round:        results.Round,
		RaceName:     results.RaceName,
		Circuit:      results.Circuit,
		Date:         results.Date,
		Scored:       results.Scored(),
		Drivers:      make([]driverPerformanceResponse, 0, len(drivers)),
		Constructors: make([]constructorPerformanceResponse, 0, len(constructors)),
	}
	for _, perf := range drivers {
		out.Drivers = append(out.Drivers, driverPerformanceResponse{
			DriverID:           perf.DriverID,
			ConstructorID:      perf.ConstructorID,
			QualifyingPosition: perf.QualifyingPosition,
			GridPosition:       perf.GridPosition,
			RacePosition:       perf.RacePosition,
			Q2Appearance:       perf.Q2Appearance,
			Q3Appearance:       perf.Q3Appearance,
			FinishedRace:       perf.FinishedRace,
			FastestLap:         perf.FastestLap,
			DriverOfDay:        perf.DriverOfDay,
			Disqualified:       perf.Disqualified,
			Price:              perf.Price,
			TotalPoints:        perf.TotalPoints,
			Breakdown:          toBreakdownResponse(perf.Breakdown),
		})
	}
	for _, perf := range constructors {
		out.Constructors = append(out.Constructors, constructorPerformanceResponse{
			ConstructorID:  perf.ConstructorID,
			DriverIDs:      perf.DriverIDs,
			FastestPitStop: perf.FastestPitStop,
			PitStopRecord:  perf.PitStopRecord,
			Price:          perf.Price,
			TotalPoints:    perf.TotalPoints,
			Breakdown:      toBreakdownResponse(perf.Breakdown),
		})
	}
	return out
}

func toBreakdownResponse(items []weekend.BreakdownItem) []breakdownItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]breakdownItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, breakdownItemResponse{Rule: item.Rule, Points: item.Points})
	}
	return out
}

func toTeamResponse(team fantasyteam.Team) teamResponse {
	return teamResponse{
		DriverIDs:      team.DriverIDs,
		ConstructorIDs: team.ConstructorIDs,
		TotalCost:      team.TotalCost,
		TotalPoints:    team.TotalPoints,
	}
}

func (h *Handler) GetWeekend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekend")
	defer span.End()

	results, err := h.weekendService.GetWeekend(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toWeekendResponse(results))
}

func (h *Handler) ScoreWeekend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ScoreWeekend")
	defer span.End()

	results, err := h.weekendService.ScoreWeekend(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toWeekendResponse(results))
}

func (h *Handler) OptimalTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OptimalTeam")
	defer span.End()

	raceID := r.PathValue("raceID")

	mode := optimizer.ModeExact
	if raw := strings.TrimSpace(r.URL.Query().Get("mode")); raw != "" {
		switch optimizer.Mode(raw) {
		case optimizer.ModeExact, optimizer.ModeGreedy:
			mode = optimizer.Mode(raw)
		default:
			writeError(ctx, w, fmt.Errorf("%w: mode must be exact or greedy, got %q", usecase.ErrInvalidInput, raw))
			return
		}
	}

	var budget int64
	if raw := strings.TrimSpace(r.URL.Query().Get("budget")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: budget must be a positive integer in tenths of a million", usecase.ErrInvalidInput))
			return
		}
		budget = parsed
	}

	team, err := h.optimizerService.OptimalTeam(ctx, raceID, budget, mode)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	effectiveBudget := budget
	if effectiveBudget <= 0 {
		effectiveBudget = usecase.DefaultBudget
	}
	writeSuccess(ctx, w, http.StatusOK, optimalTeamResponse{
		RaceID: raceID,
		Mode:   string(mode),
		Budget: effectiveBudget,
		Team:   toTeamResponse(team),
	})
}
