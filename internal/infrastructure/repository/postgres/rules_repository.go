package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
	qb "github.com/riskibarqy/f1-fantasy/internal/platform/querybuilder"
)

type scoringRuleSetTableModel struct {
	Season int `db:"season"`

	QualifyingPositionPoints pq.Int64Array `db:"qualifying_position_points"`
	RacePositionPoints       pq.Int64Array `db:"race_position_points"`

	Q3AppearanceBonus int `db:"q3_appearance_bonus"`
	Q2AppearanceBonus int `db:"q2_appearance_bonus"`
	FastestLapBonus   int `db:"fastest_lap_bonus"`
	DriverOfDayBonus  int `db:"driver_of_day_bonus"`

	FinishBonus             int `db:"finish_bonus"`
	DNFPenalty              int `db:"dnf_penalty"`
	DisqualificationPenalty int `db:"disqualification_penalty"`

	BeatTeammateQualifyingBonus int `db:"beat_teammate_qualifying_bonus"`
	BeatTeammateRaceBonus       int `db:"beat_teammate_race_bonus"`

	PositionsGainedPerPlace int `db:"positions_gained_per_place"`
	PositionsLostPerPlace   int `db:"positions_lost_per_place"`
	PositionChangeCap       int `db:"position_change_cap"`

	FastestPitStopBonus      int `db:"fastest_pit_stop_bonus"`
	PitStopRecordBonus       int `db:"pit_stop_record_bonus"`
	BothDriversFinishBonus   int `db:"both_drivers_finish_bonus"`
	BothDriversInPointsBonus int `db:"both_drivers_in_points_bonus"`
}

type RulesRepository struct {
	db *sqlx.DB
}

func NewRulesRepository(db *sqlx.DB) *RulesRepository {
	return &RulesRepository{db: db}
}

func (r *RulesRepository) GetBySeason(ctx context.Context, season int) (rules.ScoringRuleSet, bool, error) {
	query, args, err := qb.Select("*").From("scoring_rule_sets").
		Where(qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return rules.ScoringRuleSet{}, false, fmt.Errorf("build get rule set query: %w", err)
	}

	var row scoringRuleSetTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rules.ScoringRuleSet{}, false, nil
		}
		return rules.ScoringRuleSet{}, false, fmt.Errorf("get rule set season=%d: %w", season, err)
	}

	return rules.ScoringRuleSet{
		Season:                      row.Season,
		QualifyingPositionPoints:    rules.NewPointsTable(int64sToInts(row.QualifyingPositionPoints)...),
		RacePositionPoints:          rules.NewPointsTable(int64sToInts(row.RacePositionPoints)...),
		Q3AppearanceBonus:           row.Q3AppearanceBonus,
		Q2AppearanceBonus:           row.Q2AppearanceBonus,
		FastestLapBonus:             row.FastestLapBonus,
		DriverOfDayBonus:            row.DriverOfDayBonus,
		FinishBonus:                 row.FinishBonus,
		DNFPenalty:                  row.DNFPenalty,
		DisqualificationPenalty:     row.DisqualificationPenalty,
		BeatTeammateQualifyingBonus: row.BeatTeammateQualifyingBonus,
		BeatTeammateRaceBonus:       row.BeatTeammateRaceBonus,
		PositionsGainedPerPlace:     row.PositionsGainedPerPlace,
		PositionsLostPerPlace:       row.PositionsLostPerPlace,
		PositionChangeCap:           row.PositionChangeCap,
		FastestPitStopBonus:         row.FastestPitStopBonus,
		PitStopRecordBonus:          row.PitStopRecordBonus,
		BothDriversFinishBonus:      row.BothDriversFinishBonus,
		BothDriversInPointsBonus:    row.BothDriversInPointsBonus,
	}, true, nil
}

func (r *RulesRepository) ListSeasons(ctx context.Context) ([]int, error) {
	query, args, err := qb.Select("season").From("scoring_rule_sets").
		OrderBy("season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var seasons []int
	if err := r.db.SelectContext(ctx, &seasons, query, args...); err != nil {
		return nil, fmt.Errorf("list rule set seasons: %w", err)
	}
	return seasons, nil
}

func int64sToInts(values pq.Int64Array) []int {
	out := make([]int, 0, len(values))
	for _, value := range values {
		out = append(out, int(value))
	}
	return out
}
