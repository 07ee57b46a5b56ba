package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/platform/logging"
)

// JobQueue dispatches delayed callbacks to the service's own internal job
// routes. The production implementation is the QStash publisher.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type JobOrchestratorConfig struct {
	// SyncInterval spaces the per-round result sync callbacks.
	SyncInterval time.Duration
	// PostRaceLead delays the first sync attempt after a race's scheduled date.
	PostRaceLead time.Duration
}

type JobSyncInput struct {
	Season int
	Force  bool
}

type JobSyncResult struct {
	Season           int      `json:"season"`
	RoundCount       int      `json:"round_count"`
	QueuedCount      int      `json:"queued_count"`
	QueuedOperations []string `json:"queued_operations"`
}

// JobOrchestratorService schedules the season's data pipeline: one
// sync-results callback per completed round, then one recompute pass for the
// whole season once every round is queued.
type JobOrchestratorService struct {
	syncService *ResultsSyncService
	queue       JobQueue
	cfg         JobOrchestratorConfig
	logger      *logging.Logger
	now         func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	syncService *ResultsSyncService,
	queue JobQueue,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SyncInterval <= 0 {
		cfg.SyncInterval = 30 * time.Minute
	}
	if cfg.PostRaceLead <= 0 {
		cfg.PostRaceLead = 3 * time.Hour
	}

	return &JobOrchestratorService{
		syncService: syncService,
		queue:       queue,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// ScheduleSeasonSync queues a sync-results callback for every round of the
// season that has already happened, and a final recompute once all rounds are
// in. Force queues every round immediately regardless of race dates.
func (s *JobOrchestratorService) ScheduleSeasonSync(ctx context.Context, input JobSyncInput) (JobSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.ScheduleSeasonSync")
	defer span.End()

	if s.syncService == nil || s.syncService.provider == nil {
		return JobSyncResult{}, fmt.Errorf("%w: results sync is not configured", ErrDependencyUnavailable)
	}
	if input.Season <= 0 {
		return JobSyncResult{}, fmt.Errorf("%w: season must be greater than zero", ErrInvalidInput)
	}

	schedule, err := s.syncService.provider.FetchSchedule(ctx, input.Season)
	if err != nil {
		return JobSyncResult{}, fmt.Errorf("fetch schedule season=%d: %w", input.Season, err)
	}

	now := s.now().UTC()
	result := JobSyncResult{
		Season:           input.Season,
		RoundCount:       len(schedule),
		QueuedOperations: make([]string, 0, len(schedule)+1),
	}

	var lastSyncDelay time.Duration
	for _, race := range schedule {
		syncAt := race.Date.Add(s.cfg.PostRaceLead)
		delay := syncAt.Sub(now)
		if input.Force || delay < 0 {
			delay = 0
		}
		if !input.Force && race.Date.After(now) {
			// Future rounds get queued by the next orchestrator run.
			continue
		}
		if err := s.enqueueSyncResults(ctx, input.Season, race.Round, delay, now); err != nil {
			return JobSyncResult{}, err
		}
		if delay > lastSyncDelay {
			lastSyncDelay = delay
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, fmt.Sprintf("sync-results:%d/%d", input.Season, race.Round))
	}

	if result.QueuedCount > 0 {
		recomputeDelay := lastSyncDelay + s.cfg.SyncInterval
		if err := s.enqueueRecompute(ctx, input.Season, recomputeDelay, now); err != nil {
			return JobSyncResult{}, err
		}
		result.QueuedCount++
		result.QueuedOperations = append(result.QueuedOperations, fmt.Sprintf("recompute-season:%d", input.Season))
	}

	s.logger.InfoContext(ctx, "season sync scheduled",
		"season", input.Season,
		"rounds", result.RoundCount,
		"queued", result.QueuedCount,
	)
	return result, nil
}

func (s *JobOrchestratorService) enqueueSyncResults(ctx context.Context, season, round int, delay time.Duration, now time.Time) error {
	dedupID := dedupKey("sync-results", fmt.Sprintf("%d-%d", season, round), now.Add(delay), s.cfg.SyncInterval)
	payload := map[string]any{
		"season":      season,
		"round":       round,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/sync-results", payload, delay, dedupID); err != nil {
		return fmt.Errorf("enqueue sync-results season=%d round=%d: %w", season, round, err)
	}
	return nil
}

func (s *JobOrchestratorService) enqueueRecompute(ctx context.Context, season int, delay time.Duration, now time.Time) error {
	dedupID := dedupKey("recompute-season", fmt.Sprintf("%d", season), now.Add(delay), s.cfg.SyncInterval)
	payload := map[string]any{
		"season":      season,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/recompute-season", payload, delay, dedupID); err != nil {
		return fmt.Errorf("enqueue recompute-season season=%d: %w", season, err)
	}
	return nil
}

func dedupKey(prefix, target string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	target = sanitizeDedupSegment(target)
	return prefix + "-" + target + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}
