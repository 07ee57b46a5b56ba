package jolpica

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseRaceDate(t *testing.T) {
	withTime := parseRaceDate("2025-04-13", "15:00:00Z")
	want := time.Date(2025, 4, 13, 15, 0, 0, 0, time.UTC)
	if !withTime.Equal(want) {
		t.Fatalf("unexpected race instant: got=%v want=%v", withTime, want)
	}

	dateOnly := parseRaceDate("2025-04-13", "")
	if !dateOnly.Equal(time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only parse failed: %v", dateOnly)
	}

	if !parseRaceDate("not-a-date", "").IsZero() {
		t.Fatal("garbage input must yield zero time")
	}
}

func TestParsePitDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "21.780", want: 21780 * time.Millisecond},
		{in: "1:05.123", want: time.Minute + 5123*time.Millisecond},
		{in: "", want: 0},
		{in: "abc", want: 0},
	}
	for _, tt := range tests {
		if got := parsePitDuration(tt.in); got != tt.want {
			t.Fatalf("parsePitDuration(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestClassifiedPosition(t *testing.T) {
	if pos := classifiedPosition(raceResultItem{Position: "3", PositionText: "3"}); pos == nil || *pos != 3 {
		t.Fatalf("numeric position text must classify: %v", pos)
	}
	if pos := classifiedPosition(raceResultItem{Position: "18", PositionText: "R"}); pos != nil {
		t.Fatalf("retired car must stay unclassified: %v", pos)
	}
	if pos := classifiedPosition(raceResultItem{Position: "20", PositionText: "D"}); pos != nil {
		t.Fatalf("disqualified car must stay unclassified: %v", pos)
	}
}

const scheduleFixture = `{
  "MRData": {
    "RaceTable": {
      "season": "2025",
      "Races": [
        {
          "season": "2025",
          "round": "1",
          "raceName": "Bahrain Grand Prix",
          "Circuit": {"circuitId": "bahrain", "circuitName": "Bahrain International Circuit"},
          "date": "2025-04-13",
          "time": "15:00:00Z"
        },
        {
          "season": "2025",
          "round": "2",
          "raceName": "Saudi Arabian Grand Prix",
          "Circuit": {"circuitId": "jeddah", "circuitName": "Jeddah Corniche Circuit"},
          "date": "2025-04-20"
        }
      ]
    }
  }
}`

const resultsFixture = `{
  "MRData": {
    "RaceTable": {
      "Races": [
        {
          "Results": [
            {
              "position": "1",
              "positionText": "1",
              "grid": "2",
              "status": "Finished",
              "Driver": {"driverId": "piastri"},
              "Constructor": {"constructorId": "mclaren"},
              "FastestLap": {"rank": "1"}
            },
            {
              "position": "19",
              "positionText": "R",
              "grid": "15",
              "status": "Accident",
              "Driver": {"driverId": "doohan"},
              "Constructor": {"constructorId": "alpine"}
            }
          ]
        }
      ]
    }
  }
}`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/2025.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(scheduleFixture))
	})
	mux.HandleFunc("/2025/1/results.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(resultsFixture))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchSchedule(t *testing.T) {
	srv := newFixtureServer(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	races, err := client.FetchSchedule(t.Context(), 2025)
	if err != nil {
		t.Fatalf("fetch schedule failed: %v", err)
	}

	if len(races) != 2 {
		t.Fatalf("unexpected race count: %d", len(races))
	}
	if races[0].RaceID != "2025-bahrain" || races[0].Round != 1 {
		t.Fatalf("unexpected first race: %+v", races[0])
	}
	if !races[0].Date.Equal(time.Date(2025, 4, 13, 15, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected race date: %v", races[0].Date)
	}
	if races[1].RaceID != "2025-jeddah" {
		t.Fatalf("unexpected second race id: %s", races[1].RaceID)
	}
}

func TestClient_FetchRaceResults(t *testing.T) {
	srv := newFixtureServer(t)
	client := NewClient(ClientConfig{BaseURL: srv.URL})

	results, err := client.FetchRaceResults(t.Context(), 2025, 1)
	if err != nil {
		t.Fatalf("fetch race results failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("unexpected result count: %d", len(results))
	}
	winner := results[0]
	if winner.DriverID != "piastri" || winner.Position == nil || *winner.Position != 1 || !winner.FastestLap {
		t.Fatalf("unexpected winner row: %+v", winner)
	}
	retired := results[1]
	if retired.Position != nil || retired.Status != "Accident" {
		t.Fatalf("unexpected retired row: %+v", retired)
	}
}

func TestClient_FetchSchedule_NonRetryableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{BaseURL: srv.URL, MaxRetries: 3})
	if _, err := client.FetchSchedule(t.Context(), 2025); err == nil {
		t.Fatal("expected 404 to surface as an error")
	}
}
