package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
)

type PriceRepository struct {
	mu sync.RWMutex
	// History per entity, sorted ascending by effective date.
	items map[string][]pricing.PricePoint
}

func NewPriceRepository(points []pricing.PricePoint) *PriceRepository {
	items := make(map[string][]pricing.PricePoint)
	for _, p := range points {
		items[p.EntityID] = append(items[p.EntityID], p)
	}
	for entityID := range items {
		history := items[entityID]
		sort.Slice(history, func(i, j int) bool {
			return history[i].EffectiveDate.Before(history[j].EffectiveDate)
		})
		items[entityID] = history
	}

	return &PriceRepository{items: items}
}

func (r *PriceRepository) PriceAt(_ context.Context, entityID string, asOf time.Time) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, ok := r.items[entityID]
	if !ok {
		return 0, false, nil
	}

	var price int64
	found := false
	for _, point := range history {
		if point.EffectiveDate.After(asOf) {
			break
		}
		price = point.Price
		found = true
	}
	return price, found, nil
}

func (r *PriceRepository) History(_ context.Context, entityID string) ([]pricing.PricePoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, ok := r.items[entityID]
	if !ok {
		return nil, nil
	}
	return append([]pricing.PricePoint(nil), history...), nil
}
