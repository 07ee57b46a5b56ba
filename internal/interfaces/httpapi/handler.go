package httpapi

import (
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/f1-fantasy/internal/domain/constructor"
	"github.com/riskibarqy/f1-fantasy/internal/domain/driver"
	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

// Handler carries every dependency the HTTP surface needs. Route registration
// lives in server_routes.go; each handler method stays a thin decode,
// delegate, encode wrapper around a usecase service.
type Handler struct {
	weekendService   *usecase.WeekendService
	optimizerService *usecase.OptimizerService
	selectionService *usecase.SelectionService
	syncService      *usecase.ResultsSyncService
	recomputeService *usecase.SeasonRecomputeService
	jobOrchestrator  *usecase.JobOrchestratorService

	driverRepo      driver.Repository
	constructorRepo constructor.Repository
	priceRepo       pricing.Repository

	validate *validator.Validate
	logger   *logging.Logger
}

func NewHandler(
	weekendService *usecase.WeekendService,
	optimizerService *usecase.OptimizerService,
	selectionService *usecase.SelectionService,
	syncService *usecase.ResultsSyncService,
	recomputeService *usecase.SeasonRecomputeService,
	jobOrchestrator *usecase.JobOrchestratorService,
	driverRepo driver.Repository,
	constructorRepo constructor.Repository,
	priceRepo pricing.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		weekendService:   weekendService,
		optimizerService: optimizerService,
		selectionService: selectionService,
		syncService:      syncService,
		recomputeService: recomputeService,
		jobOrchestrator:  jobOrchestrator,
		driverRepo:       driverRepo,
		constructorRepo:  constructorRepo,
		priceRepo:        priceRepo,
		validate:         validator.New(),
		logger:           logger,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(payload any) error {
	if err := h.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeJSONBody rejects unknown fields so client typos surface as 400s
// instead of silently ignored parameters. An empty body leaves dst zeroed.
func decodeJSONBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%w: invalid json body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
