package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
)

type RulesRepository struct {
	mu    sync.RWMutex
	items map[int]rules.ScoringRuleSet
}

func NewRulesRepository(ruleSets []rules.ScoringRuleSet) *RulesRepository {
	items := make(map[int]rules.ScoringRuleSet, len(ruleSets))
	for _, rs := range ruleSets {
		items[rs.Season] = rs
	}

	return &RulesRepository{items: items}
}

func (r *RulesRepository) GetBySeason(_ context.Context, season int) (rules.ScoringRuleSet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.items[season]
	if !ok {
		return rules.ScoringRuleSet{}, false, nil
	}
	return rs, true, nil
}

func (r *RulesRepository) ListSeasons(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.items))
	for season := range r.items {
		out = append(out, season)
	}
	sort.Ints(out)
	return out, nil
}
