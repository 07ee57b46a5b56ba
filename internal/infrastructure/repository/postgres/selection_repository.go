package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
	"github.com/riskibarqy/f1-fantasy/internal/domain/selection"
	qb "github.com/riskibarqy/f1-fantasy/internal/platform/querybuilder"
)

type teamSelectionTableModel struct {
	ID             string         `db:"id"`
	RaceID         string         `db:"race_id"`
	DriverIDs      pq.StringArray `db:"driver_ids"`
	ConstructorIDs pq.StringArray `db:"constructor_ids"`
	TotalCost      int64          `db:"total_cost"`
	TotalPoints    int            `db:"total_points"`
	CreatedAt      time.Time      `db:"created_at"`
}

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) GetByID(ctx context.Context, selectionID string) (selection.TeamSelection, bool, error) {
	query, args, err := qb.Select("*").From("team_selections").
		Where(qb.Eq("id", selectionID)).
		ToSQL()
	if err != nil {
		return selection.TeamSelection{}, false, fmt.Errorf("build get selection query: %w", err)
	}

	var row teamSelectionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return selection.TeamSelection{}, false, nil
		}
		return selection.TeamSelection{}, false, fmt.Errorf("get selection %s: %w", selectionID, err)
	}
	return selectionFromRow(row), true, nil
}

func (r *SelectionRepository) ListByRace(ctx context.Context, raceID string) ([]selection.TeamSelection, error) {
	query, args, err := qb.Select("*").From("team_selections").
		Where(qb.Eq("race_id", raceID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list selections query: %w", err)
	}

	var rows []teamSelectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list selections for race %s: %w", raceID, err)
	}

	out := make([]selection.TeamSelection, 0, len(rows))
	for _, row := range rows {
		out = append(out, selectionFromRow(row))
	}
	return out, nil
}

func (r *SelectionRepository) Insert(ctx context.Context, item selection.TeamSelection) error {
	query, args, err := qb.InsertModel("team_selections", teamSelectionTableModel{
		ID:             item.ID,
		RaceID:         item.RaceID,
		DriverIDs:      pq.StringArray(item.Team.DriverIDs),
		ConstructorIDs: pq.StringArray(item.Team.ConstructorIDs),
		TotalCost:      item.Team.TotalCost,
		TotalPoints:    item.Team.TotalPoints,
		CreatedAt:      item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert selection query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert selection %s: %w", item.ID, err)
	}
	return nil
}

func selectionFromRow(row teamSelectionTableModel) selection.TeamSelection {
	return selection.TeamSelection{
		ID:     row.ID,
		RaceID: row.RaceID,
		Team: fantasyteam.Team{
			DriverIDs:      []string(row.DriverIDs),
			ConstructorIDs: []string(row.ConstructorIDs),
			TotalCost:      row.TotalCost,
			TotalPoints:    row.TotalPoints,
		},
		CreatedAt: row.CreatedAt,
	}
}
