package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
	qb "github.com/riskibarqy/f1-fantasy/internal/platform/querybuilder"
)

type pricePointTableModel struct {
	EntityID      string    `db:"entity_id"`
	Price         int64     `db:"price"`
	EffectiveDate time.Time `db:"effective_date"`
}

type PriceRepository struct {
	db *sqlx.DB
}

func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

func (r *PriceRepository) PriceAt(ctx context.Context, entityID string, asOf time.Time) (int64, bool, error) {
	query, args, err := qb.Select("*").From("price_points").
		Where(
			qb.Eq("entity_id", entityID),
			qb.Expr("effective_date <= ?", asOf),
		).
		OrderBy("effective_date DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build price-at query: %w", err)
	}

	var row pricePointTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get price for %s: %w", entityID, err)
	}
	return row.Price, true, nil
}

func (r *PriceRepository) History(ctx context.Context, entityID string) ([]pricing.PricePoint, error) {
	query, args, err := qb.Select("*").From("price_points").
		Where(qb.Eq("entity_id", entityID)).
		OrderBy("effective_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build price history query: %w", err)
	}

	var rows []pricePointTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select price history for %s: %w", entityID, err)
	}

	out := make([]pricing.PricePoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, pricing.PricePoint{
			EntityID:      row.EntityID,
			Price:         row.Price,
			EffectiveDate: row.EffectiveDate,
		})
	}
	return out, nil
}
