package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/constructor"
	"github.com/riskibarqy/f1-fantasy/internal/domain/driver"
	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
	basecache "github.com/riskibarqy/f1-fantasy/internal/platform/cache"
)

// Read-through decorators for the reference data repositories. The grid and
// the price history change between race weekends, not between requests, so a
// short TTL keeps the hot endpoints off the database.

type DriverRepository struct {
	next  driver.Repository
	cache *basecache.Store
}

func NewDriverRepository(next driver.Repository, cache *basecache.Store) *DriverRepository {
	return &DriverRepository{next: next, cache: cache}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	v, err := r.cache.GetOrLoad(ctx, "driver:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]driver.Driver(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]driver.Driver)
	return append([]driver.Driver(nil), items...), nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (driver.Driver, bool, error) {
	key := "driver:id:" + driverID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, driverID)
		if err != nil {
			return nil, err
		}
		return cachedDriverByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return driver.Driver{}, false, err
	}

	cached, _ := v.(cachedDriverByID)
	return cached.value, cached.exists, nil
}

type cachedDriverByID struct {
	value  driver.Driver
	exists bool
}

type ConstructorRepository struct {
	next  constructor.Repository
	cache *basecache.Store
}

func NewConstructorRepository(next constructor.Repository, cache *basecache.Store) *ConstructorRepository {
	return &ConstructorRepository{next: next, cache: cache}
}

func (r *ConstructorRepository) List(ctx context.Context) ([]constructor.Constructor, error) {
	v, err := r.cache.GetOrLoad(ctx, "constructor:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]constructor.Constructor(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]constructor.Constructor)
	return append([]constructor.Constructor(nil), items...), nil
}

func (r *ConstructorRepository) GetByID(ctx context.Context, constructorID string) (constructor.Constructor, bool, error) {
	key := "constructor:id:" + constructorID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, constructorID)
		if err != nil {
			return nil, err
		}
		return cachedConstructorByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return constructor.Constructor{}, false, err
	}

	cached, _ := v.(cachedConstructorByID)
	return cached.value, cached.exists, nil
}

type cachedConstructorByID struct {
	value  constructor.Constructor
	exists bool
}

type PriceRepository struct {
	next  pricing.Repository
	cache *basecache.Store
}

func NewPriceRepository(next pricing.Repository, cache *basecache.Store) *PriceRepository {
	return &PriceRepository{next: next, cache: cache}
}

// PriceAt is keyed by an arbitrary timestamp, so it goes straight through.
func (r *PriceRepository) PriceAt(ctx context.Context, entityID string, asOf time.Time) (int64, bool, error) {
	return r.next.PriceAt(ctx, entityID, asOf)
}

func (r *PriceRepository) History(ctx context.Context, entityID string) ([]pricing.PricePoint, error) {
	key := "price:history:" + entityID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.History(ctx, entityID)
		if err != nil {
			return nil, err
		}
		return append([]pricing.PricePoint(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]pricing.PricePoint)
	return append([]pricing.PricePoint(nil), items...), nil
}
