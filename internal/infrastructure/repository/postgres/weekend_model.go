package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type raceWeekendTableModel struct {
	RaceID   string    `db:"race_id"`
	Season   int       `db:"season"`
	Round    int       `db:"round"`
	RaceName string    `db:"race_name"`
	Circuit  string    `db:"circuit"`
	RaceDate time.Time `db:"race_date"`
}

type driverResultTableModel struct {
	RaceID        string `db:"race_id"`
	DriverID      string `db:"driver_id"`
	ConstructorID string `db:"constructor_id"`

	QualifyingPosition sql.NullInt64 `db:"qualifying_position"`
	GridPosition       int           `db:"grid_position"`
	RacePosition       sql.NullInt64 `db:"race_position"`

	Q2Appearance bool `db:"q2_appearance"`
	Q3Appearance bool `db:"q3_appearance"`
	FinishedRace bool `db:"finished_race"`
	FastestLap   bool `db:"fastest_lap"`
	DriverOfDay  bool `db:"driver_of_day"`
	Disqualified bool `db:"disqualified"`

	BeatTeammateQualifying bool `db:"beat_teammate_qualifying"`
	BeatTeammateRace       bool `db:"beat_teammate_race"`

	Price       int64          `db:"price"`
	TotalPoints int            `db:"total_points"`
	Breakdown   sql.NullString `db:"breakdown"`
	EntryOrder  int            `db:"entry_order"`
}

type constructorResultTableModel struct {
	RaceID        string         `db:"race_id"`
	ConstructorID string         `db:"constructor_id"`
	DriverIDs     pq.StringArray `db:"driver_ids"`

	FastestPitStop bool `db:"fastest_pit_stop"`
	PitStopRecord  bool `db:"pit_stop_record"`

	Price       int64          `db:"price"`
	TotalPoints int            `db:"total_points"`
	Breakdown   sql.NullString `db:"breakdown"`
	EntryOrder  int            `db:"entry_order"`
}
