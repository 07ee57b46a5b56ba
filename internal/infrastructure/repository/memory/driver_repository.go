package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/f1-fantasy/internal/domain/driver"
)

type DriverRepository struct {
	mu     sync.RWMutex
	items  map[string]driver.Driver
	orders []string
}

func NewDriverRepository(drivers []driver.Driver) *DriverRepository {
	items := make(map[string]driver.Driver, len(drivers))
	orders := make([]string, 0, len(drivers))

	for _, d := range drivers {
		items[d.ID] = d
		orders = append(orders, d.ID)
	}

	return &DriverRepository{
		items:  items,
		orders: orders,
	}
}

func (r *DriverRepository) List(_ context.Context) ([]driver.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driver.Driver, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *DriverRepository) GetByID(_ context.Context, driverID string) (driver.Driver, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[driverID]
	if !ok {
		return driver.Driver{}, false, nil
	}
	return d, true, nil
}
