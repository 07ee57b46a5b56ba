package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/f1-fantasy/external/jobqueue"
	"github.com/riskibarqy/f1-fantasy/external/jolpica"
	"github.com/riskibarqy/f1-fantasy/internal/config"
	"github.com/riskibarqy/f1-fantasy/internal/domain/constructor"
	"github.com/riskibarqy/f1-fantasy/internal/domain/driver"
	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
	"github.com/riskibarqy/f1-fantasy/internal/domain/selection"
	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
	cacherepo "github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/f1-fantasy/internal/interfaces/httpapi"
	"github.com/riskibarqy/f1-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/f1-fantasy/internal/platform/id"
	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
	"github.com/riskibarqy/f1-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/f1-fantasy/internal/usecase"
)

type repositories struct {
	weekend     weekend.Repository
	rules       rules.Repository
	price       pricing.Repository
	driver      driver.Repository
	constructor constructor.Repository
	selection   selection.Repository
}

// NewHTTPServer wires repositories, services, and the HTTP router. The
// returned cleanup closes the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var ruleCache *cache.Store
	if cfg.CacheEnabled {
		ruleCache = cache.NewStore(cfg.CacheTTL)
		refCache := cache.NewStore(cfg.CacheTTL)
		repos.driver = cacherepo.NewDriverRepository(repos.driver, refCache)
		repos.constructor = cacherepo.NewConstructorRepository(repos.constructor, refCache)
		repos.price = cacherepo.NewPriceRepository(repos.price, refCache)
	}

	weekendSvc := usecase.NewWeekendService(repos.weekend, repos.rules, repos.price, ruleCache, logger)
	optimizerSvc := usecase.NewOptimizerService(weekendSvc, usecase.DefaultBudget, logger)
	selectionSvc := usecase.NewSelectionService(
		repos.selection,
		weekendSvc,
		idgen.NewRandomGenerator(),
		usecase.DefaultBudget,
		logger,
	)

	raceData := jolpica.NewClient(jolpica.ClientConfig{
		BaseURL:    cfg.JolpicaBaseURL,
		Timeout:    cfg.JolpicaTimeout,
		MaxRetries: cfg.JolpicaMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.JolpicaCircuitEnabled,
			FailureThreshold: cfg.JolpicaCircuitFailureCount,
			OpenTimeout:      cfg.JolpicaCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.JolpicaCircuitHalfOpenMaxReq,
		},
	})

	syncSvc := usecase.NewResultsSyncService(raceData, repos.weekend, logger)
	recomputeSvc := usecase.NewSeasonRecomputeService(repos.weekend, weekendSvc, logger)

	queue := usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}
	jobOrchestrator := usecase.NewJobOrchestratorService(syncSvc, queue, usecase.JobOrchestratorConfig{
		SyncInterval: cfg.JobSyncInterval,
		PostRaceLead: cfg.JobPostRaceLead,
	}, logger)

	handler := httpapi.NewHandler(
		weekendSvc,
		optimizerSvc,
		selectionSvc,
		syncSvc,
		recomputeSvc,
		jobOrchestrator,
		repos.driver,
		repos.constructor,
		repos.price,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

// buildRepositories selects the persistence backend: postgres when DB_URL is
// set, otherwise the seeded in-memory stores.
func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL is not set")
		return repositories{
			weekend:     memory.NewWeekendRepository(memory.SeedWeekends()),
			rules:       memory.NewRulesRepository(memory.SeedRuleSets()),
			price:       memory.NewPriceRepository(memory.SeedPrices()),
			driver:      memory.NewDriverRepository(memory.SeedDrivers()),
			constructor: memory.NewConstructorRepository(memory.SeedConstructors()),
			selection:   memory.NewSelectionRepository(),
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("using postgres repositories", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		weekend:     postgres.NewWeekendRepository(db),
		rules:       postgres.NewRulesRepository(db),
		price:       postgres.NewPriceRepository(db),
		driver:      postgres.NewDriverRepository(db),
		constructor: postgres.NewConstructorRepository(db),
		selection:   postgres.NewSelectionRepository(db),
	}, db.Close, nil
}
