package httpapi

import (
	"net/http"

	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

type syncResultsJobRequest struct {
	Season int `json:"season" validate:"required,gt=1949"`
	Round  int `json:"round" validate:"required,gt=0"`
}

type syncResultsJobResponse struct {
	RaceID  string `json:"raceId"`
	Season  int    `json:"season"`
	Round   int    `json:"round"`
	Drivers int    `json:"drivers"`
}

type recomputeSeasonJobRequest struct {
	Season     int      `json:"season" validate:"required,gt=1949"`
	MaxWorkers int      `json:"maxWorkers" validate:"omitempty,gt=0"`
	RaceIDs    []string `json:"raceIds" validate:"omitempty,dive,required"`
}

type scheduleSeasonSyncJobRequest struct {
	Season int  `json:"season" validate:"required,gt=1949"`
	Force  bool `json:"force"`
}

func (h *Handler) RunSyncResultsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncResultsJob")
	defer span.End()

	var req syncResultsJobRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.syncService.SyncRound(ctx, req.Season, req.Round)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, syncResultsJobResponse{
		RaceID:  results.RaceID,
		Season:  results.Season,
		Round:   results.Round,
		Drivers: len(results.Drivers()),
	})
}

func (h *Handler) RunRecomputeSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeSeasonJob")
	defer span.End()

	var req recomputeSeasonJobRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.Recompute(ctx, usecase.RecomputeSeasonInput{
		Season:     req.Season,
		MaxWorkers: req.MaxWorkers,
		RaceIDs:    req.RaceIDs,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunScheduleSeasonSyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScheduleSeasonSyncJob")
	defer span.End()

	var req scheduleSeasonSyncJobRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobOrchestrator.ScheduleSeasonSync(ctx, usecase.JobSyncInput{
		Season: req.Season,
		Force:  req.Force,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
