package model

import (
	"encoding/json"
	"testing"
)

func TestParseSeasonType(t *testing.T) {
	tests := []struct {
		in      string
		want    SeasonType
		wantErr bool
	}{
		{"Regular", Regular, false},
		{"", Regular, false},
		{"POSTSEASON", Postseason, false},
		{"preseason", Preseason, false},
		{"bowl", Regular, true},
	}
	for _, tc := range tests {
		got, err := ParseSeasonType(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSeasonType(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseSeasonType(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSeasonTypeJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		T SeasonType `json:"t"`
	}{Postseason})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"t":"Postseason"}` {
		t.Errorf("marshal = %s", b)
	}

	var out struct {
		T SeasonType `json:"t"`
	}
	if err := json.Unmarshal([]byte(`{"t":"preseason"}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.T != Preseason {
		t.Errorf("unmarshal = %v, want Preseason", out.T)
	}
	if err := json.Unmarshal([]byte(`{"t":"bowl"}`), &out); err == nil {
		t.Error("expected error for unknown season type")
	}
}

func TestWeeklyLeaderboardTop(t *testing.T) {
	lb := WeeklyLeaderboard{Players: make([]RatedPlayerWeekStat, 5)}

	if got := len(lb.Top(3)); got != 3 {
		t.Errorf("Top(3) len = %d, want 3", got)
	}
	if got := len(lb.Top(0)); got != 5 {
		t.Errorf("Top(0) len = %d, want 5 (all rows)", got)
	}
	if got := len(lb.Top(12)); got != 5 {
		t.Errorf("Top(12) len = %d, want 5", got)
	}
}

func TestWeeklyLeaderboardFind(t *testing.T) {
	lb := WeeklyLeaderboard{Players: []RatedPlayerWeekStat{
		{PlayerWeekStat: PlayerWeekStat{PlayerName: "Carson Wentz"}, Rating: 101.2},
	}}
	if p, ok := lb.Find("Carson Wentz"); !ok || p.Rating != 101.2 {
		t.Errorf("Find = %+v, %v", p, ok)
	}
	if _, ok := lb.Find("carson wentz"); ok {
		t.Error("Find should match names exactly")
	}
}
