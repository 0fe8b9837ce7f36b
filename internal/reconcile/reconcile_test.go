package reconcile

import (
	"context"
	"errors"
	"testing"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/store"
)

type fakeMirror map[int]int

func (f fakeMirror) WeekCounts(ctx context.Context, year int, typ model.SeasonType) (map[int]int, error) {
	return f, nil
}

type failingMirror struct{}

func (failingMirror) WeekCounts(ctx context.Context, year int, typ model.SeasonType) (map[int]int, error) {
	return nil, errors.New("db closed")
}

func writeWeek(t *testing.T, st *store.JSONStore, week, players int) {
	t.Helper()
	f := store.WeekFile{SeasonYear: 2016, SeasonType: model.Regular, Week: week}
	for i := 0; i < players; i++ {
		f.Players = append(f.Players, model.PlayerWeekStat{Week: week, PlayerName: "QB", Position: "QB", Attempts: 10})
	}
	if err := st.WriteWeek(f); err != nil {
		t.Fatalf("WriteWeek: %v", err)
	}
}

func TestBuild(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	writeWeek(t, st, 1, 3)
	writeWeek(t, st, 2, 2)
	writeWeek(t, st, 10, 1)

	r, err := Build(context.Background(), st, fakeMirror{1: 3, 2: 4, 3: 5}, 2016, model.Regular, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []WeekCoverage{
		{Week: 1, StoreRows: 3, MirrorRows: 3},
		{Week: 2, StoreRows: 2, MirrorRows: 4, Mismatch: true},
		{Week: 3, MirrorRows: 5, MissingStore: true},
		{Week: 10, StoreRows: 1, MissingMirror: true},
	}
	if len(r.Weeks) != len(want) {
		t.Fatalf("weeks = %+v, want %d entries", r.Weeks, len(want))
	}
	for i := range want {
		if r.Weeks[i] != want[i] {
			t.Errorf("weeks[%d] = %+v, want %+v", i, r.Weeks[i], want[i])
		}
	}
	if got := r.Problems(); got != 3 {
		t.Errorf("Problems = %d, want 3", got)
	}
}

func TestBuild_ExpectedWeeksWithoutMirror(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	writeWeek(t, st, 1, 2)

	r, err := Build(context.Background(), st, nil, 2016, model.Regular, []int{2, 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(r.Weeks) != 2 || r.Weeks[0].Week != 1 || r.Weeks[1].Week != 2 {
		t.Fatalf("weeks = %+v", r.Weeks)
	}
	if r.Weeks[0].MissingMirror || r.Weeks[0].Mismatch {
		t.Errorf("week 1 flagged without a mirror: %+v", r.Weeks[0])
	}
	if !r.Weeks[1].MissingStore {
		t.Errorf("week 2 MissingStore = false, want true")
	}

	if err := Write(st, r); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !st.Exists(ReportPath(2016, model.Regular)) {
		t.Errorf("report not written")
	}
}

func TestBuild_MirrorError(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	if _, err := Build(context.Background(), st, failingMirror{}, 2016, model.Regular, nil); err == nil {
		t.Fatal("want error from mirror")
	}
}
