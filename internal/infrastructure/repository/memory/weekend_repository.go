package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
)

type WeekendRepository struct {
	mu    sync.RWMutex
	items map[string]*weekend.Results
}

func NewWeekendRepository(weekends []*weekend.Results) *WeekendRepository {
	items := make(map[string]*weekend.Results, len(weekends))
	for _, w := range weekends {
		items[w.RaceID] = w.Clone()
	}

	return &WeekendRepository{items: items}
}

func (r *WeekendRepository) GetByRaceID(_ context.Context, raceID string) (*weekend.Results, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results, ok := r.items[raceID]
	if !ok {
		return nil, false, nil
	}
	return results.Clone(), true, nil
}

func (r *WeekendRepository) ListRaceIDsBySeason(_ context.Context, season int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		raceID string
		round  int
	}
	rounds := make([]entry, 0, len(r.items))
	for _, results := range r.items {
		if results.Season != season {
			continue
		}
		rounds = append(rounds, entry{raceID: results.RaceID, round: results.Round})
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].round < rounds[j].round })

	out := make([]string, 0, len(rounds))
	for _, item := range rounds {
		out = append(out, item.raceID)
	}
	return out, nil
}

func (r *WeekendRepository) Upsert(_ context.Context, results *weekend.Results) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[results.RaceID] = results.Clone()
	return nil
}
