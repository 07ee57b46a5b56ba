package pricing

import (
	"errors"
	"time"
)

var ErrNoPriceData = errors.New("no price data")

// PricePoint is one entry of an entity's price history. Prices are stored in
// tenths of a million, so $30.5M is 305.
type PricePoint struct {
	EntityID      string
	Price         int64
	EffectiveDate time.Time
}
