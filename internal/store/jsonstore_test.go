package store

import (
	"errors"
	"os"
	"strings"
	"testing"

	"nfl-passer-mcp/internal/model"
)

func TestWeekStatsPath(t *testing.T) {
	got := WeekStatsPath(2016, model.Postseason, 19)
	if got != "stats/2016/postseason/week/19.json" {
		t.Errorf("WeekStatsPath = %q", got)
	}
	if got := RawPassingPath(2016, model.Regular, 3); got != "raw/passing/2016/regular/week/3.html" {
		t.Errorf("RawPassingPath = %q", got)
	}
}

func TestWriteWeek_ReadWeek(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	in := WeekFile{
		SeasonYear: 2016,
		SeasonType: model.Regular,
		Week:       1,
		Players: []model.PlayerWeekStat{
			{Week: 1, PlayerName: "Carson Wentz", Position: "QB", Attempts: 37, Completions: 22, Yards: 278, Touchdowns: 2},
		},
	}
	if err := st.WriteWeek(in); err != nil {
		t.Fatalf("WriteWeek: %v", err)
	}

	b, err := st.ReadRaw(WeekStatsPath(2016, model.Regular, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"season_type": "Regular"`) {
		t.Errorf("season type not written by name:\n%s", b)
	}

	out, err := st.ReadWeek(2016, model.Regular, 1)
	if err != nil {
		t.Fatalf("ReadWeek: %v", err)
	}
	if len(out.Players) != 1 || out.Players[0].Yards != 278 {
		t.Errorf("ReadWeek players = %+v", out.Players)
	}
}

func TestReadWeek_Missing(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	_, err := st.ReadWeek(2016, model.Regular, 4)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
	if st.Exists(WeekStatsPath(2016, model.Regular, 4)) {
		t.Error("Exists = true for missing file")
	}
}

func TestWeeks(t *testing.T) {
	st := NewJSONStore(t.TempDir())
	for _, wk := range []int{10, 2, 1} {
		if err := st.WriteWeek(WeekFile{SeasonYear: 2016, SeasonType: model.Regular, Week: wk}); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.WriteWeek(WeekFile{SeasonYear: 2016, SeasonType: model.Postseason, Week: 18}); err != nil {
		t.Fatal(err)
	}

	got, err := st.Weeks(2016, model.Regular)
	if err != nil {
		t.Fatalf("Weeks: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 10 {
		t.Errorf("Weeks = %v, want [1 2 10]", got)
	}

	none, err := st.Weeks(2015, model.Regular)
	if err != nil || len(none) != 0 {
		t.Errorf("Weeks(2015) = %v, %v; want empty", none, err)
	}
}
