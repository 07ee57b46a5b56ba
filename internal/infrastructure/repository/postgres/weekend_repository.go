package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
	qb "github.com/riskibarqy/f1-fantasy/internal/platform/querybuilder"
)

type WeekendRepository struct {
	db *sqlx.DB
}

func NewWeekendRepository(db *sqlx.DB) *WeekendRepository {
	return &WeekendRepository{db: db}
}

func (r *WeekendRepository) GetByRaceID(ctx context.Context, raceID string) (*weekend.Results, bool, error) {
	query, args, err := qb.Select("*").From("race_weekends").
		Where(qb.Eq("race_id", raceID)).
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build get race weekend query: %w", err)
	}

	var raceRow raceWeekendTableModel
	if err := r.db.GetContext(ctx, &raceRow, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get race weekend: %w", err)
	}

	results := weekend.NewResults(raceRow.RaceID, raceRow.Season, raceRow.Round, raceRow.RaceName, raceRow.Circuit, raceRow.RaceDate)
	if err := r.loadDriverResults(ctx, results, raceID); err != nil {
		return nil, false, err
	}
	if err := r.loadConstructorResults(ctx, results, raceID); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (r *WeekendRepository) ListRaceIDsBySeason(ctx context.Context, season int) ([]string, error) {
	query, args, err := qb.Select("race_id").From("race_weekends").
		Where(qb.Eq("season", season)).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list race ids query: %w", err)
	}

	var raceIDs []string
	if err := r.db.SelectContext(ctx, &raceIDs, query, args...); err != nil {
		return nil, fmt.Errorf("list race ids season=%d: %w", season, err)
	}
	return raceIDs, nil
}

// Upsert replaces the full weekend atomically. Result rows are deleted and
// re-inserted rather than merged; a weekend is always written as a whole.
func (r *WeekendRepository) Upsert(ctx context.Context, results *weekend.Results) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert weekend tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	raceQuery, raceArgs, err := qb.InsertModel("race_weekends", raceWeekendTableModel{
		RaceID:   results.RaceID,
		Season:   results.Season,
		Round:    results.Round,
		RaceName: results.RaceName,
		Circuit:  results.Circuit,
		RaceDate: results.Date,
	}, `ON CONFLICT (race_id) DO UPDATE SET
		season = EXCLUDED.season,
		round = EXCLUDED.round,
		race_name = EXCLUDED.race_name,
		circuit = EXCLUDED.circuit,
		race_date = EXCLUDED.race_date`)
	if err != nil {
		return fmt.Errorf("build upsert race weekend query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, raceQuery, raceArgs...); err != nil {
		return fmt.Errorf("upsert race weekend %s: %w", results.RaceID, err)
	}

	for _, table := range []string{"driver_results", "constructor_results"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE race_id = $1", table), results.RaceID); err != nil {
			return fmt.Errorf("clear %s for %s: %w", table, results.RaceID, err)
		}
	}

	for i, perf := range results.Drivers() {
		breakdown, err := marshalBreakdown(perf.Breakdown)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("driver_results", driverResultTableModel{
			RaceID:                 results.RaceID,
			DriverID:               perf.DriverID,
			ConstructorID:          perf.ConstructorID,
			QualifyingPosition:     ptrToNullInt(perf.QualifyingPosition),
			GridPosition:           perf.GridPosition,
			RacePosition:           ptrToNullInt(perf.RacePosition),
			Q2Appearance:           perf.Q2Appearance,
			Q3Appearance:           perf.Q3Appearance,
			FinishedRace:           perf.FinishedRace,
			FastestLap:             perf.FastestLap,
			DriverOfDay:            perf.DriverOfDay,
			Disqualified:           perf.Disqualified,
			BeatTeammateQualifying: perf.BeatTeammateQualifying,
			BeatTeammateRace:       perf.BeatTeammateRace,
			Price:                  perf.Price,
			TotalPoints:            perf.TotalPoints,
			Breakdown:              breakdown,
			EntryOrder:             i,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert driver result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert driver result %s/%s: %w", results.RaceID, perf.DriverID, err)
		}
	}

	for i, perf := range results.Constructors() {
		breakdown, err := marshalBreakdown(perf.Breakdown)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("constructor_results", constructorResultTableModel{
			RaceID:         results.RaceID,
			ConstructorID:  perf.ConstructorID,
			DriverIDs:      pq.StringArray(perf.DriverIDs),
			FastestPitStop: perf.FastestPitStop,
			PitStopRecord:  perf.PitStopRecord,
			Price:          perf.Price,
			TotalPoints:    perf.TotalPoints,
			Breakdown:      breakdown,
			EntryOrder:     i,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert constructor result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert constructor result %s/%s: %w", results.RaceID, perf.ConstructorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert weekend %s: %w", results.RaceID, err)
	}
	return nil
}

func (r *WeekendRepository) loadDriverResults(ctx context.Context, results *weekend.Results, raceID string) error {
	query, args, err := qb.Select("*").From("driver_results").
		Where(qb.Eq("race_id", raceID)).
		OrderBy("entry_order").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select driver results query: %w", err)
	}

	var rows []driverResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("select driver results: %w", err)
	}

	for _, row := range rows {
		breakdown, err := unmarshalBreakdown(row.Breakdown)
		if err != nil {
			return fmt.Errorf("driver result %s/%s: %w", raceID, row.DriverID, err)
		}
		perf := weekend.DriverPerformance{
			DriverID:               row.DriverID,
			ConstructorID:          row.ConstructorID,
			QualifyingPosition:     nullIntToPtr(row.QualifyingPosition),
			GridPosition:           row.GridPosition,
			RacePosition:           nullIntToPtr(row.RacePosition),
			Q2Appearance:           row.Q2Appearance,
			Q3Appearance:           row.Q3Appearance,
			FinishedRace:           row.FinishedRace,
			FastestLap:             row.FastestLap,
			DriverOfDay:            row.DriverOfDay,
			Disqualified:           row.Disqualified,
			BeatTeammateQualifying: row.BeatTeammateQualifying,
			BeatTeammateRace:       row.BeatTeammateRace,
			Price:                  row.Price,
			TotalPoints:            row.TotalPoints,
			Breakdown:              breakdown,
		}
		if err := results.AddDriverPerformance(perf); err != nil {
			return err
		}
	}
	return nil
}

func (r *WeekendRepository) loadConstructorResults(ctx context.Context, results *weekend.Results, raceID string) error {
	query, args, err := qb.Select("*").From("constructor_results").
		Where(qb.Eq("race_id", raceID)).
		OrderBy("entry_order").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select constructor results query: %w", err)
	}

	var rows []constructorResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("select constructor results: %w", err)
	}

	for _, row := range rows {
		breakdown, err := unmarshalBreakdown(row.Breakdown)
		if err != nil {
			return fmt.Errorf("constructor result %s/%s: %w", raceID, row.ConstructorID, err)
		}
		perf := weekend.ConstructorPerformance{
			ConstructorID:  row.ConstructorID,
			DriverIDs:      []string(row.DriverIDs),
			FastestPitStop: row.FastestPitStop,
			PitStopRecord:  row.PitStopRecord,
			Price:          row.Price,
			TotalPoints:    row.TotalPoints,
			Breakdown:      breakdown,
		}
		if err := results.AddConstructorPerformance(perf); err != nil {
			return err
		}
	}
	return nil
}
