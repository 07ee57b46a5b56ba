package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/memory"
)

type capturingJobQueue struct {
	paths    []string
	payloads []any
	delays   []time.Duration
	dedupIDs []string
}

func (q *capturingJobQueue) Enqueue(_ context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	q.paths = append(q.paths, path)
	q.payloads = append(q.payloads, payload)
	q.delays = append(q.delays, delay)
	q.dedupIDs = append(q.dedupIDs, deduplicationID)
	return nil
}

func newOrchestratorFixture(queue JobQueue) *JobOrchestratorService {
	provider := newStubProvider()
	provider.schedule = []ExternalRace{
		{Season: 2025, Round: 1, RaceID: "2025-bahrain", RaceName: "Bahrain Grand Prix", Date: time.Date(2025, 4, 13, 15, 0, 0, 0, time.UTC)},
		{Season: 2025, Round: 2, RaceID: "2025-saudi-arabia", RaceName: "Saudi Arabian Grand Prix", Date: time.Date(2025, 4, 20, 17, 0, 0, 0, time.UTC)},
		{Season: 2025, Round: 3, RaceID: "2025-miami", RaceName: "Miami Grand Prix", Date: time.Date(2025, 5, 4, 20, 0, 0, 0, time.UTC)},
	}
	syncSvc := NewResultsSyncService(provider, memory.NewWeekendRepository(nil), nil)

	svc := NewJobOrchestratorService(syncSvc, queue, JobOrchestratorConfig{}, nil)
	svc.now = func() time.Time { return time.Date(2025, 4, 25, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestJobOrchestrator_ScheduleSeasonSync_QueuesCompletedRounds(t *testing.T) {
	queue := &capturingJobQueue{}
	svc := newOrchestratorFixture(queue)

	result, err := svc.ScheduleSeasonSync(t.Context(), JobSyncInput{Season: 2025})
	if err != nil {
		t.Fatalf("schedule season sync failed: %v", err)
	}

	// Rounds 1 and 2 have happened by the fixed clock, round 3 has not.
	if result.QueuedCount != 3 {
		t.Fatalf("unexpected queued count: %d ops=%v", result.QueuedCount, result.QueuedOperations)
	}
	if len(queue.paths) != 3 {
		t.Fatalf("unexpected enqueue count: %d", len(queue.paths))
	}
	if queue.paths[0] != "/v1/internal/jobs/sync-results" || queue.paths[1] != "/v1/internal/jobs/sync-results" {
		t.Fatalf("unexpected sync paths: %v", queue.paths)
	}
	if queue.paths[2] != "/v1/internal/jobs/recompute-season" {
		t.Fatalf("last enqueue must be the recompute: %v", queue.paths)
	}
}

func TestJobOrchestrator_ScheduleSeasonSync_ForceQueuesAllRounds(t *testing.T) {
	queue := &capturingJobQueue{}
	svc := newOrchestratorFixture(queue)

	result, err := svc.ScheduleSeasonSync(t.Context(), JobSyncInput{Season: 2025, Force: true})
	if err != nil {
		t.Fatalf("schedule season sync failed: %v", err)
	}

	if result.QueuedCount != 4 {
		t.Fatalf("unexpected queued count: %d ops=%v", result.QueuedCount, result.QueuedOperations)
	}
	for _, delay := range queue.delays[:3] {
		if delay != 0 {
			t.Fatalf("force must queue immediately, got delays %v", queue.delays)
		}
	}
}

func TestDedupKey_UsesQueueSafeFormat(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, time.April, 13, 18, 25, 42, 0, time.UTC)
	got := dedupKey("sync-results", "2025/1 bahrain", at, 5*time.Minute)

	if strings.ContainsAny(got, ":/ ") {
		t.Fatalf("dedup key must stay URL safe, got=%q", got)
	}

	want := "sync-results-2025-1-bahrain-20250413T182500Z"
	if got != want {
		t.Fatalf("unexpected dedup key: got=%q want=%q", got, want)
	}
}

func TestSanitizeDedupSegment_EmptyFallback(t *testing.T) {
	t.Parallel()

	if got := sanitizeDedupSegment(" \t "); got != "unknown" {
		t.Fatalf("unexpected sanitize fallback: got=%q want=%q", got, "unknown")
	}
}
