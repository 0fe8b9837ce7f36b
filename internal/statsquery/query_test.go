package statsquery

import (
	"context"
	"errors"
	"testing"

	"nfl-passer-mcp/internal/model"
)

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		ok   bool
	}{
		{"Valid", Query{SeasonYear: 2016, Week: 1}, true},
		{"ZeroWeek", Query{SeasonYear: 2016, Week: 0}, false},
		{"LastWeek", Query{SeasonYear: 2016, Week: MaxWeek}, true},
		{"WeekPastMax", Query{SeasonYear: 2016, Week: MaxWeek + 1}, false},
		{"NegativeMinAttempts", Query{SeasonYear: 2016, Week: 1, MinAttempts: -1}, false},
		{"MissingYear", Query{Week: 1}, false},
		{"UnknownSeasonType", Query{SeasonYear: 2016, Week: 1, SeasonType: model.SeasonType(9)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.q.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("Validate() = %v, want ErrInvalidQuery", err)
			}
		})
	}
}

func TestQueryNormalize(t *testing.T) {
	if got := (Query{}).Normalize().Position; got != "QB" {
		t.Errorf("default position = %q, want QB", got)
	}
	if got := (Query{Position: " rb "}).Normalize().Position; got != "RB" {
		t.Errorf("position = %q, want RB", got)
	}
}

func TestStatic_FiltersPositionAndAttempts(t *testing.T) {
	src := NewStatic().Add(2016, model.Regular,
		model.PlayerWeekStat{Week: 1, PlayerName: "A", Position: "QB", Attempts: 30},
		model.PlayerWeekStat{Week: 1, PlayerName: "B", Position: "RB", Attempts: 1},
		model.PlayerWeekStat{Week: 1, PlayerName: "C", Position: "qb", Attempts: 0},
		model.PlayerWeekStat{Week: 1, PlayerName: "D", Position: "QB", Attempts: 2},
		model.PlayerWeekStat{Week: 2, PlayerName: "A", Position: "QB", Attempts: 25},
	)

	got, err := src.WeekStats(context.Background(), Query{SeasonYear: 2016, Week: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].PlayerName != "A" || got[1].PlayerName != "D" {
		t.Fatalf("rows = %+v, want A then D", got)
	}

	got, err = src.WeekStats(context.Background(), Query{SeasonYear: 2016, Week: 1, MinAttempts: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PlayerName != "A" {
		t.Errorf("rows with min_attempts=2: %+v, want only A", got)
	}
}

func TestStatic_OtherSeasonTypeEmpty(t *testing.T) {
	src := NewStatic().Add(2016, model.Regular,
		model.PlayerWeekStat{Week: 1, PlayerName: "A", Position: "QB", Attempts: 30},
	)
	got, err := src.WeekStats(context.Background(), Query{SeasonYear: 2016, SeasonType: model.Postseason, Week: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("rows = %+v, want none", got)
	}
}

func TestStatic_Err(t *testing.T) {
	boom := errors.New("db down")
	src := NewStatic()
	src.Err = boom
	if _, err := src.WeekStats(context.Background(), Query{SeasonYear: 2016, Week: 1}); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
