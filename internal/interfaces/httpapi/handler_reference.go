package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

type driverResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	Number        int    `json:"number"`
	ConstructorID string `json:"constructorId"`
}

type constructorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ruleSetResponse struct {
	Season int `json:"season"`

	QualifyingPositionPoints []int `json:"qualifyingPositionPoints"`
	RacePositionPoints       []int `json:"racePositionPoints"`

	Q3AppearanceBonus int `json:"q3AppearanceBonus"`
	Q2AppearanceBonus int `json:"q2AppearanceBonus"`
	FastestLapBonus   int `json:"fastestLapBonus"`
	DriverOfDayBonus  int `json:"driverOfDayBonus"`

	FinishBonus             int `json:"finishBonus"`
	DNFPenalty              int `json:"dnfPenalty"`
	DisqualificationPenalty int `json:"disqualificationPenalty"`

	BeatTeammateQualifyingBonus int `json:"beatTeammateQualifyingBonus"`
	BeatTeammateRaceBonus       int `json:"beatTeammateRaceBonus"`

	PositionsGainedPerPlace int `json:"positionsGainedPerPlace"`
	PositionsLostPerPlace   int `json:"positionsLostPerPlace"`
	PositionChangeCap       int `json:"positionChangeCap"`

	FastestPitStopBonus      int `json:"fastestPitStopBonus"`
	PitStopRecordBonus       int `json:"pitStopRecordBonus"`
	BothDriversFinishBonus   int `json:"bothDriversFinishBonus"`
	BothDriversInPointsBonus int `json:"bothDriversInPointsBonus"`
}

type pricePointResponse struct {
	EntityID      string    `json:"entityId"`
	Price         int64     `json:"price"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

func toRuleSetResponse(ruleSet rules.ScoringRuleSet) ruleSetResponse {
	return ruleSetResponse{
		Season:                      ruleSet.Season,
		QualifyingPositionPoints:    pointsTableSlice(ruleSet.QualifyingPositionPoints),
		RacePositionPoints:          pointsTableSlice(ruleSet.RacePositionPoints),
		Q3AppearanceBonus:           ruleSet.Q3AppearanceBonus,
		Q2AppearanceBonus:           ruleSet.Q2AppearanceBonus,
		FastestLapBonus:             ruleSet.FastestLapBonus,
		DriverOfDayBonus:            ruleSet.DriverOfDayBonus,
		FinishBonus:                 ruleSet.FinishBonus,
		DNFPenalty:                  ruleSet.DNFPenalty,
		DisqualificationPenalty:     ruleSet.DisqualificationPenalty,
		BeatTeammateQualifyingBonus: ruleSet.BeatTeammateQualifyingBonus,
		BeatTeammateRaceBonus:       ruleSet.BeatTeammateRaceBonus,
		PositionsGainedPerPlace:     ruleSet.PositionsGainedPerPlace,
		PositionsLostPerPlace:       ruleSet.PositionsLostPerPlace,
		PositionChangeCap:           ruleSet.PositionChangeCap,
		FastestPitStopBonus:         ruleSet.FastestPitStopBonus,
		PitStopRecordBonus:          ruleSet.PitStopRecordBonus,
		BothDriversFinishBonus:      ruleSet.BothDriversFinishBonus,
		BothDriversInPointsBonus:    ruleSet.BothDriversInPointsBonus,
	}
}

func pointsTableSlice(table rules.PointsTable) []int {
	out := make([]int, table.Coverage())
	for position := 1; position <= table.Coverage(); position++ {
		points, err := table.PointsFor(position)
		if err != nil {
			continue
		}
		out[position-1] = points
	}
	return out
}

func (h *Handler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDrivers")
	defer span.End()

	drivers, err := h.driverRepo.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]driverResponse, 0, len(drivers))
	for _, item := range drivers {
		out = append(out, driverResponse{
			ID:            item.ID,
			Name:          item.Name,
			Code:          item.Code,
			Number:        item.Number,
			ConstructorID: item.ConstructorID,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handler) ListConstructors(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListConstructors")
	defer span.End()

	constructors, err := h.constructorRepo.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]constructorResponse, 0, len(constructors))
	for _, item := range constructors {
		out = append(out, constructorResponse{ID: item.ID, Name: item.Name})
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": out})
}

func (h *Handler) GetSeasonRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonRules")
	defer span.End()

	season, err := strconv.Atoi(r.PathValue("season"))
	if err != nil || season <= 0 {
		writeError(ctx, w, fmt.Errorf("%w: season must be a positive integer", usecase.ErrInvalidInput))
		return
	}

	ruleSet, err := h.weekendService.RuleSet(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toRuleSetResponse(ruleSet))
}

func (h *Handler) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPriceHistory")
	defer span.End()

	entityID := r.PathValue("entityID")
	history, err := h.priceRepo.History(ctx, entityID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if len(history) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: no prices for %s", usecase.ErrNotFound, entityID))
		return
	}

	out := make([]pricePointResponse, 0, len(history))
	for _, point := range history {
		out = append(out, pricePointResponse{
			EntityID:      point.EntityID,
			Price:         point.Price,
			EffectiveDate: point.EffectiveDate,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": out})
}
