package jolpica

import (
	"strconv"
	"strings"
	"time"
)

// Wire types for the Ergast-compatible jolpica-f1 API. Every numeric field
// arrives as a string; mapping helpers below normalize them.

type mrDataEnvelope struct {
	MRData struct {
		RaceTable raceTable `json:"RaceTable"`
	} `json:"MRData"`
}

type raceTable struct {
	Season string     `json:"season"`
	Races  []raceItem `json:"Races"`
}

type raceItem struct {
	Season   string      `json:"season"`
	Round    string      `json:"round"`
	RaceName string      `json:"raceName"`
	Circuit  circuitItem `json:"Circuit"`
	Date     string      `json:"date"`
	Time     string      `json:"time"`

	QualifyingResults []qualifyingResultItem `json:"QualifyingResults"`
	Results           []raceResultItem       `json:"Results"`
	PitStops          []pitStopItem          `json:"PitStops"`
}

type circuitItem struct {
	CircuitID   string `json:"circuitId"`
	CircuitName string `json:"circuitName"`
}

type driverItem struct {
	DriverID   string `json:"driverId"`
	Code       string `json:"code"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

type constructorItem struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
}

type qualifyingResultItem struct {
	Position    string          `json:"position"`
	Driver      driverItem      `json:"Driver"`
	Constructor constructorItem `json:"Constructor"`
	Q1          string          `json:"Q1"`
	Q2          string          `json:"Q2"`
	Q3          string          `json:"Q3"`
}

type raceResultItem struct {
	Position     string          `json:"position"`
	PositionText string          `json:"positionText"`
	Grid         string          `json:"grid"`
	Status       string          `json:"status"`
	Driver       driverItem      `json:"Driver"`
	Constructor  constructorItem `json:"Constructor"`
	FastestLap   *fastestLapItem `json:"FastestLap,omitempty"`
}

type fastestLapItem struct {
	Rank string `json:"rank"`
}

type pitStopItem struct {
	DriverID string `json:"driverId"`
	Stop     string `json:"stop"`
	Lap      string `json:"lap"`
	Duration string `json:"duration"`
}

func parseWireInt(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}

// classifiedPosition returns the finishing position only when the position
// text is numeric. "R" (retired), "D" (disqualified), "W" and "E" stay nil.
func classifiedPosition(item raceResultItem) *int {
	value, err := strconv.Atoi(strings.TrimSpace(item.PositionText))
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

// parseRaceDate combines the date and optional time fields into one UTC
// instant. A missing time defaults to midnight, which is close enough for
// price effectivity lookups.
func parseRaceDate(date, clock string) time.Time {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if clock != "" {
		if parsed, err := time.Parse(time.RFC3339, date+"T"+clock); err == nil {
			return parsed.UTC()
		}
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

// parsePitDuration accepts "21.780" (seconds) and "1:05.123" (minutes)
// formats. Zero means unparsable and callers skip the stop.
func parsePitDuration(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	minutes := int64(0)
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		parsed, err := strconv.ParseInt(raw[:idx], 10, 64)
		if err != nil {
			return 0
		}
		minutes = parsed
		raw = raw[idx+1:]
	}

	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds*float64(time.Second))
}

func hadFastestLap(item raceResultItem) bool {
	return item.FastestLap != nil && strings.TrimSpace(item.FastestLap.Rank) == "1"
}
