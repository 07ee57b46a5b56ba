package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/selection"
	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

type submitSelectionRequest struct {
	RaceID         string   `json:"raceId" validate:"required"`
	DriverIDs      []string `json:"driverIds" validate:"required"`
	ConstructorIDs []string `json:"constructorIds" validate:"required"`
	Budget         int64    `json:"budget" validate:"omitempty,gt=0"`
}

type selectionResponse struct {
	ID        string       `json:"id"`
	RaceID    string       `json:"raceId"`
	Team      teamResponse `json:"team"`
	CreatedAt time.Time    `json:"createdAt"`
}

func toSelectionResponse(item selection.TeamSelection) selectionResponse {
	return selectionResponse{
		ID:        item.ID,
		RaceID:    item.RaceID,
		Team:      toTeamResponse(item.Team),
		CreatedAt: item.CreatedAt,
	}
}

func (h *Handler) SubmitSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSelection")
	defer span.End()

	var req submitSelectionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.selectionService.Submit(ctx, usecase.SubmitSelectionInput{
		RaceID:         req.RaceID,
		DriverIDs:      req.DriverIDs,
		ConstructorIDs: req.ConstructorIDs,
		Budget:         req.Budget,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toSelectionResponse(item))
}

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelection")
	defer span.End()

	item, err := h.selectionService.GetByID(ctx, r.PathValue("selectionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toSelectionResponse(item))
}

func (h *Handler) ListSelectionsByRace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSelectionsByRace")
	defer span.End()

	items, err := h.selectionService.ListByRace(ctx, r.PathValue("raceID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]selectionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toSelectionResponse(item))
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{"items": out})
}
