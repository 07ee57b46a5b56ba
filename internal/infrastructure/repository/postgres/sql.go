package postgres

import (
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

type breakdownItemModel struct {
	Rule   string `json:"rule"`
	Points int    `json:"points"`
}

// marshalBreakdown stores a scoring breakdown as a jsonb column. Nil means
// no scoring pass has run, which is distinct from an empty breakdown.
func marshalBreakdown(items []weekend.BreakdownItem) (sql.NullString, error) {
	if items == nil {
		return sql.NullString{}, nil
	}

	rows := make([]breakdownItemModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, breakdownItemModel{Rule: item.Rule, Points: item.Points})
	}
	raw, err := sonic.Marshal(rows)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal breakdown: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func unmarshalBreakdown(raw sql.NullString) ([]weekend.BreakdownItem, error) {
	if !raw.Valid {
		return nil, nil
	}

	var rows []breakdownItemModel
	if err := sonic.Unmarshal([]byte(raw.String), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal breakdown: %w", err)
	}
	out := make([]weekend.BreakdownItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, weekend.BreakdownItem{Rule: row.Rule, Points: row.Points})
	}
	return out, nil
}

func nullIntToPtr(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	out := int(value.Int64)
	return &out
}

func ptrToNullInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}
