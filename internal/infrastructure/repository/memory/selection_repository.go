package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/f1-fantasy/internal/domain/selection"
)

type SelectionRepository struct {
	mu     sync.RWMutex
	items  map[string]selection.TeamSelection
	orders []string
}

func NewSelectionRepository() *SelectionRepository {
	return &SelectionRepository{
		items: make(map[string]selection.TeamSelection),
	}
}

func (r *SelectionRepository) GetByID(_ context.Context, selectionID string) (selection.TeamSelection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[selectionID]
	if !ok {
		return selection.TeamSelection{}, false, nil
	}
	return item, true, nil
}

func (r *SelectionRepository) ListByRace(_ context.Context, raceID string) ([]selection.TeamSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]selection.TeamSelection, 0)
	for _, id := range r.orders {
		if r.items[id].RaceID == raceID {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *SelectionRepository) Insert(_ context.Context, item selection.TeamSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("selection %s already exists", item.ID)
	}
	r.items[item.ID] = item
	r.orders = append(r.orders, item.ID)
	return nil
}
