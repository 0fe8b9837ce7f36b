package season

import (
	"math"
	"testing"

	"nfl-passer-mcp/internal/model"
)

func TestSummarize(t *testing.T) {
	points := []model.ComparisonPoint{
		{Week: 1, LeagueMaxRating: 140, PlayerRating: 100},
		{Week: 2, LeagueMaxRating: 120, PlayerRating: 120},
		{Week: 3, LeagueMaxRating: 130, PlayerRating: 80},
	}

	s := Summarize(points)
	if s == nil {
		t.Fatal("Summarize returned nil")
	}
	if s.Weeks != 3 {
		t.Errorf("Weeks = %d, want 3", s.Weeks)
	}
	if s.PlayerMean != 100 {
		t.Errorf("PlayerMean = %v, want 100", s.PlayerMean)
	}
	if s.PlayerMedian != 100 {
		t.Errorf("PlayerMedian = %v, want 100", s.PlayerMedian)
	}
	if s.LeagueMaxMean != 130 {
		t.Errorf("LeagueMaxMean = %v, want 130", s.LeagueMaxMean)
	}
	if s.MeanGap != 30 {
		t.Errorf("MeanGap = %v, want 30", s.MeanGap)
	}
	if math.Abs(s.PlayerStdDev-20) > 1e-9 {
		t.Errorf("PlayerStdDev = %v, want 20", s.PlayerStdDev)
	}
	if s.WeeksAtLeagueBest != 1 {
		t.Errorf("WeeksAtLeagueBest = %d, want 1", s.WeeksAtLeagueBest)
	}
}

func TestSummarize_SingleWeekHasNoDeviation(t *testing.T) {
	s := Summarize([]model.ComparisonPoint{{Week: 1, LeagueMaxRating: 110, PlayerRating: 90}})
	if s.PlayerStdDev != 0 || math.IsNaN(s.PlayerStdDev) {
		t.Errorf("PlayerStdDev = %v, want 0", s.PlayerStdDev)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize(nil); s != nil {
		t.Errorf("Summarize(nil) = %+v, want nil", s)
	}
}
