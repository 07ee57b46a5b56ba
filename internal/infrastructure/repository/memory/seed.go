package memory

import (
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/constructor"
	"github.com/riskibarqy/f1-fantasy/internal/domain/driver"
	"github.com/riskibarqy/f1-fantasy/internal/domain/pricing"
	"github.com/riskibarqy/f1-fantasy/internal/domain/rules"
	"github.com/riskibarqy/f1-fantasy/internal/domain/weekend"
)

const (
	SeedSeason     = 2025
	RaceIDBahrain  = "2025-bahrain"
	seedPriceEpoch = "2025-01-01"
)

func SeedRuleSets() []rules.ScoringRuleSet {
	return []rules.ScoringRuleSet{rules.Season2025()}
}

func SeedConstructors() []constructor.Constructor {
	return []constructor.Constructor{
		{ID: "mclaren", Name: "McLaren"},
		{ID: "ferrari", Name: "Ferrari"},
		{ID: "red_bull", Name: "Red Bull Racing"},
		{ID: "mercedes", Name: "Mercedes"},
		{ID: "aston_martin", Name: "Aston Martin"},
		{ID: "williams", Name: "Williams"},
		{ID: "racing_bulls", Name: "Racing Bulls"},
		{ID: "alpine", Name: "Alpine"},
		{ID: "haas", Name: "Haas"},
		{ID: "sauber", Name: "Kick Sauber"},
	}
}

func SeedDrivers() []driver.Driver {
	return []driver.Driver{
		{ID: "norris", Name: "Lando Norris", Code: "NOR", Number: 4, ConstructorID: "mclaren"},
		{ID: "piastri", Name: "Oscar Piastri", Code: "PIA", Number: 81, ConstructorID: "mclaren"},
		{ID: "leclerc", Name: "Charles Leclerc", Code: "LEC", Number: 16, ConstructorID: "ferrari"},
		{ID: "hamilton", Name: "Lewis Hamilton", Code: "HAM", Number: 44, ConstructorID: "ferrari"},
		{ID: "verstappen", Name: "Max Verstappen", Code: "VER", Number: 1, ConstructorID: "red_bull"},
		{ID: "lawson", Name: "Liam Lawson", Code: "LAW", Number: 30, ConstructorID: "red_bull"},
		{ID: "russell", Name: "George Russell", Code: "RUS", Number: 63, ConstructorID: "mercedes"},
		{ID: "antonelli", Name: "Andrea Kimi Antonelli", Code: "ANT", Number: 12, ConstructorID: "mercedes"},
		{ID: "alonso", Name: "Fernando Alonso", Code: "ALO", Number: 14, ConstructorID: "aston_martin"},
		{ID: "stroll", Name: "Lance Stroll", Code: "STR", Number: 18, ConstructorID: "aston_martin"},
		{ID: "albon", Name: "Alexander Albon", Code: "ALB", Number: 23, ConstructorID: "williams"},
		{ID: "sainz", Name: "Carlos Sainz", Code: "SAI", Number: 55, ConstructorID: "williams"},
		{ID: "tsunoda", Name: "Yuki Tsunoda", Code: "TSU", Number: 22, ConstructorID: "racing_bulls"},
		{ID: "hadjar", Name: "Isack Hadjar", Code: "HAD", Number: 6, ConstructorID: "racing_bulls"},
		{ID: "gasly", Name: "Pierre Gasly", Code: "GAS", Number: 10, ConstructorID: "alpine"},
		{ID: "doohan", Name: "Jack Doohan", Code: "DOO", Number: 7, ConstructorID: "alpine"},
		{ID: "ocon", Name: "Esteban Ocon", Code: "OCO", Number: 31, ConstructorID: "haas"},
		{ID: "bearman", Name: "Oliver Bearman", Code: "BEA", Number: 87, ConstructorID: "haas"},
		{ID: "hulkenberg", Name: "Nico Hulkenberg", Code: "HUL", Number: 27, ConstructorID: "sauber"},
		{ID: "bortoleto", Name: "Gabriel Bortoleto", Code: "BOR", Number: 5, ConstructorID: "sauber"},
	}
}

func SeedPrices() []pricing.PricePoint {
	epoch, _ := time.Parse("2006-01-02", seedPriceEpoch)

	prices := map[string]int64{
		"verstappen": 305, "norris": 290, "leclerc": 275, "piastri": 270,
		"hamilton": 265, "russell": 250, "sainz": 210, "antonelli": 190,
		"alonso": 180, "gasly": 150, "albon": 140, "tsunoda": 130,
		"hulkenberg": 120, "ocon": 115, "stroll": 110, "lawson": 105,
		"bearman": 90, "doohan": 85, "hadjar": 80, "bortoleto": 75,

		"mclaren": 300, "ferrari": 280, "red_bull": 270, "mercedes": 250,
		"aston_martin": 170, "williams": 140, "racing_bulls": 120,
		"alpine": 110, "haas": 100, "sauber": 90,
	}

	out := make([]pricing.PricePoint, 0, len(prices))
	for _, d := range SeedDrivers() {
		out = append(out, pricing.PricePoint{EntityID: d.ID, Price: prices[d.ID], EffectiveDate: epoch})
	}
	for _, c := range SeedConstructors() {
		out = append(out, pricing.PricePoint{EntityID: c.ID, Price: prices[c.ID], EffectiveDate: epoch})
	}
	return out
}

// SeedWeekends returns one unscored race weekend with a full 20-car field,
// including a retirement, a disqualification and pit stop bonuses.
func SeedWeekends() []*weekend.Results {
	results := weekend.NewResults(
		RaceIDBahrain,
		SeedSeason,
		1,
		"Bahrain Grand Prix",
		"Bahrain International Circuit",
		time.Date(2025, 4, 13, 15, 0, 0, 0, time.UTC),
	)

	type row struct {
		driverID     string
		constructor  string
		qual         int
		grid         int
		race         int // 0 means not classified
		q2, q3       bool
		finished     bool
		fastestLap   bool
		driverOfDay  bool
		disqualified bool
	}

	rows := []row{
		{driverID: "piastri", constructor: "mclaren", qual: 1, grid: 1, race: 1, q2: true, q3: true, finished: true},
		{driverID: "norris", constructor: "mclaren", qual: 2, grid: 2, race: 3, q2: true, q3: true, finished: true, fastestLap: true},
		{driverID: "russell", constructor: "mercedes", qual: 3, grid: 3, race: 2, q2: true, q3: true, finished: true},
		{driverID: "leclerc", constructor: "ferrari", qual: 4, grid: 4, race: 4, q2: true, q3: true, finished: true},
		{driverID: "verstappen", constructor: "red_bull", qual: 7, grid: 7, race: 5, q2: true, q3: true, finished: true, driverOfDay: true},
		{driverID: "antonelli", constructor: "mercedes", qual: 5, grid: 5, race: 11, q2: true, q3: true, finished: true},
		{driverID: "gasly", constructor: "alpine", qual: 6, grid: 6, race: 7, q2: true, q3: true, finished: true},
		{driverID: "hamilton", constructor: "ferrari", qual: 9, grid: 9, race: 6, q2: true, q3: true, finished: true},
		{driverID: "tsunoda", constructor: "racing_bulls", qual: 10, grid: 10, race: 9, q2: true, q3: true, finished: true},
		{driverID: "sainz", constructor: "williams", qual: 8, grid: 8, race: 8, q2: true, q3: true, finished: true},
		{driverID: "albon", constructor: "williams", qual: 12, grid: 12, race: 12, q2: true, finished: true},
		{driverID: "ocon", constructor: "haas", qual: 11, grid: 11, race: 14, q2: true, finished: true},
		{driverID: "hulkenberg", constructor: "sauber", qual: 13, grid: 13, race: 10, q2: true, finished: true},
		{driverID: "alonso", constructor: "aston_martin", qual: 14, grid: 14, race: 15, q2: true, finished: true},
		{driverID: "stroll", constructor: "aston_martin", qual: 17, grid: 17, race: 17, finished: true},
		{driverID: "bearman", constructor: "haas", qual: 20, grid: 20, race: 13, finished: true},
		{driverID: "lawson", constructor: "red_bull", qual: 16, grid: 16, race: 16, finished: true},
		{driverID: "bortoleto", constructor: "sauber", qual: 18, grid: 18, race: 18, finished: true},
		{driverID: "hadjar", constructor: "racing_bulls", qual: 15, grid: 15, race: 0, q2: true},
		{driverID: "doohan", constructor: "alpine", qual: 19, grid: 19, race: 0},
	}

	for _, item := range rows {
		perf := weekend.DriverPerformance{
			DriverID:      item.driverID,
			ConstructorID: item.constructor,
			GridPosition:  item.grid,
			Q2Appearance:  item.q2,
			Q3Appearance:  item.q3,
			FinishedRace:  item.finished,
			FastestLap:    item.fastestLap,
			DriverOfDay:   item.driverOfDay,
			Disqualified:  item.disqualified,
		}
		qual := item.qual
		perf.QualifyingPosition = &qual
		if item.race > 0 {
			race := item.race
			perf.RacePosition = &race
		}
		if err := results.AddDriverPerformance(perf); err != nil {
			panic(err)
		}
	}

	constructors := []weekend.ConstructorPerformance{
		{ConstructorID: "mclaren", DriverIDs: []string{"norris", "piastri"}, FastestPitStop: true},
		{ConstructorID: "ferrari", DriverIDs: []string{"leclerc", "hamilton"}},
		{ConstructorID: "red_bull", DriverIDs: []string{"verstappen", "lawson"}},
		{ConstructorID: "mercedes", DriverIDs: []string{"russell", "antonelli"}},
		{ConstructorID: "aston_martin", DriverIDs: []string{"alonso", "stroll"}},
		{ConstructorID: "williams", DriverIDs: []string{"albon", "sainz"}},
		{ConstructorID: "racing_bulls", DriverIDs: []string{"tsunoda", "hadjar"}},
		{ConstructorID: "alpine", DriverIDs: []string{"gasly", "doohan"}},
		{ConstructorID: "haas", DriverIDs: []string{"ocon", "bearman"}},
		{ConstructorID: "sauber", DriverIDs: []string{"hulkenberg", "bortoleto"}},
	}
	for _, perf := range constructors {
		if err := results.AddConstructorPerformance(perf); err != nil {
			panic(err)
		}
	}

	return []*weekend.Results{results}
}
