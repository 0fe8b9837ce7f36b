package statsquery

import (
	"context"
	"path/filepath"
	"testing"

	"nfl-passer-mcp/internal/model"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "passing.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_ImportAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	rows := []model.PlayerWeekStat{
		{Week: 1, PlayerID: "00-1", PlayerName: "Carson Wentz", Team: "PHI", Position: "QB", Attempts: 37, Completions: 22, Yards: 278, Touchdowns: 2},
		{Week: 1, PlayerID: "00-2", PlayerName: "Darren Sproles", Team: "PHI", Position: "RB", Attempts: 1, Completions: 0},
		{Week: 1, PlayerID: "00-3", PlayerName: "Tom Brady", Team: "NE", Position: "QB", Attempts: 0},
		{Week: 1, PlayerID: "00-4", PlayerName: "Matt Ryan", Team: "ATL", Position: "QB", Attempts: 34, Completions: 23, Yards: 334, Touchdowns: 2},
	}
	if err := s.Import(ctx, 2016, model.Regular, 1, rows); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got, err := s.WeekStats(ctx, Query{SeasonYear: 2016, SeasonType: model.Regular, Week: 1, Position: "qb"})
	if err != nil {
		t.Fatalf("WeekStats: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2 (QBs with attempts)", len(got))
	}
	if got[0].PlayerName != "Carson Wentz" || got[1].PlayerName != "Matt Ryan" {
		t.Errorf("order = %s, %s; want insertion order", got[0].PlayerName, got[1].PlayerName)
	}
	if got[0].Team != "PHI" || got[0].Yards != 278 || got[0].Week != 1 {
		t.Errorf("row = %+v", got[0])
	}
}

func TestSQLite_ImportReplacesWeek(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	first := []model.PlayerWeekStat{{Week: 2, PlayerName: "Old", Position: "QB", Attempts: 10}}
	second := []model.PlayerWeekStat{{Week: 2, PlayerName: "New", Position: "QB", Attempts: 12}}
	if err := s.Import(ctx, 2016, model.Regular, 2, first); err != nil {
		t.Fatal(err)
	}
	if err := s.Import(ctx, 2016, model.Regular, 2, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.WeekStats(ctx, Query{SeasonYear: 2016, Week: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].PlayerName != "New" {
		t.Errorf("rows = %+v, want only New", got)
	}
}

func TestSQLite_SeasonTypeIsolated(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	if err := s.Import(ctx, 2016, model.Postseason, 1, []model.PlayerWeekStat{{Week: 1, PlayerName: "P", Position: "QB", Attempts: 20}}); err != nil {
		t.Fatal(err)
	}
	got, err := s.WeekStats(ctx, Query{SeasonYear: 2016, SeasonType: model.Regular, Week: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("regular season rows = %+v, want none", got)
	}
}

func TestSQLite_WeekCounts(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	for wk, n := range map[int]int{1: 2, 3: 1} {
		var rows []model.PlayerWeekStat
		for i := 0; i < n; i++ {
			rows = append(rows, model.PlayerWeekStat{Week: wk, PlayerName: "QB", Position: "QB", Attempts: 20})
		}
		if err := s.Import(ctx, 2016, model.Regular, wk, rows); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Import(ctx, 2016, model.Postseason, 1, []model.PlayerWeekStat{{Week: 1, PlayerName: "QB", Position: "QB", Attempts: 20}}); err != nil {
		t.Fatal(err)
	}

	got, err := s.WeekCounts(ctx, 2016, model.Regular)
	if err != nil {
		t.Fatalf("WeekCounts: %v", err)
	}
	if len(got) != 2 || got[1] != 2 || got[3] != 1 {
		t.Errorf("WeekCounts = %v, want map[1:2 3:1]", got)
	}
}
