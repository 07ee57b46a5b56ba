package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/f1-fantasy/internal/domain/constructor"
	"github.com/riskibarqy/f1-fantasy/internal/domain/driver"
	qb "github.com/riskibarqy/f1-fantasy/internal/platform/querybuilder"
)

type driverTableModel struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Code          string `db:"code"`
	Number        int    `db:"number"`
	ConstructorID string `db:"constructor_id"`
}

type constructorTableModel struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

type DriverRepository struct {
	db *sqlx.DB
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	query, args, err := qb.Select("*").From("drivers").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list drivers query: %w", err)
	}

	var rows []driverTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select drivers: %w", err)
	}

	out := make([]driver.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, driver.Driver(row))
	}
	return out, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, driverID string) (driver.Driver, bool, error) {
	query, args, err := qb.Select("*").From("drivers").
		Where(qb.Eq("id", driverID)).
		ToSQL()
	if err != nil {
		return driver.Driver{}, false, fmt.Errorf("build get driver query: %w", err)
	}

	var row driverTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return driver.Driver{}, false, nil
		}
		return driver.Driver{}, false, fmt.Errorf("get driver %s: %w", driverID, err)
	}
	return driver.Driver(row), true, nil
}

type ConstructorRepository struct {
	db *sqlx.DB
}

func NewConstructorRepository(db *sqlx.DB) *ConstructorRepository {
	return &ConstructorRepository{db: db}
}

func (r *ConstructorRepository) List(ctx context.Context) ([]constructor.Constructor, error) {
	query, args, err := qb.Select("*").From("constructors").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list constructors query: %w", err)
	}

	var rows []constructorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select constructors: %w", err)
	}

	out := make([]constructor.Constructor, 0, len(rows))
	for _, row := range rows {
		out = append(out, constructor.Constructor(row))
	}
	return out, nil
}

func (r *ConstructorRepository) GetByID(ctx context.Context, constructorID string) (constructor.Constructor, bool, error) {
	query, args, err := qb.Select("*").From("constructors").
		Where(qb.Eq("id", constructorID)).
		ToSQL()
	if err != nil {
		return constructor.Constructor{}, false, fmt.Errorf("build get constructor query: %w", err)
	}

	var row constructorTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return constructor.Constructor{}, false, nil
		}
		return constructor.Constructor{}, false, fmt.Errorf("get constructor %s: %w", constructorID, err)
	}
	return constructor.Constructor(row), true, nil
}
