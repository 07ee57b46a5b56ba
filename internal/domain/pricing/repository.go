package pricing

import (
	"context"
	"time"
)

// Repository serves historical prices for drivers and constructors.
type Repository interface {
	// PriceAt returns the most recent price at or before asOf.
	PriceAt(ctx context.Context, entityID string, asOf time.Time) (int64, bool, error)
	History(ctx context.Context, entityID string) ([]PricePoint, error)
}
