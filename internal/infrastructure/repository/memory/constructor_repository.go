package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/f1-fantasy/internal/domain/constructor"
)

type ConstructorRepository struct {
	mu     sync.RWMutex
	items  map[string]constructor.Constructor
	orders []string
}

func NewConstructorRepository(constructors []constructor.Constructor) *ConstructorRepository {
	items := make(map[string]constructor.Constructor, len(constructors))
	orders := make([]string, 0, len(constructors))

	for _, c := range constructors {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &ConstructorRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ConstructorRepository) List(_ context.Context) ([]constructor.Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]constructor.Constructor, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ConstructorRepository) GetByID(_ context.Context, constructorID string) (constructor.Constructor, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[constructorID]
	if !ok {
		return constructor.Constructor{}, false, nil
	}
	return c, true, nil
}
