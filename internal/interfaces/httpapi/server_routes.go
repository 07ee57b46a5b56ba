package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/drivers", handler.ListDrivers)
	mux.HandleFunc("GET /v1/constructors", handler.ListConstructors)
	mux.HandleFunc("GET /v1/seasons/{season}/rules", handler.GetSeasonRules)
	mux.HandleFunc("GET /v1/prices/{entityID}", handler.GetPriceHistory)

	mux.HandleFunc("GET /v1/weekends/{raceID}", handler.GetWeekend)
	mux.HandleFunc("POST /v1/weekends/{raceID}/score", handler.ScoreWeekend)
	mux.HandleFunc("GET /v1/weekends/{raceID}/optimal-team", handler.OptimalTeam)

	mux.HandleFunc("POST /v1/selections", handler.SubmitSelection)
	mux.HandleFunc("GET /v1/selections/{selectionID}", handler.GetSelection)
	mux.HandleFunc("GET /v1/weekends/{raceID}/selections", handler.ListSelectionsByRace)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncResultsJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputeSeasonJob)))
	mux.Handle("POST /v1/internal/jobs/schedule-season-sync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScheduleSeasonSyncJob)))
}
