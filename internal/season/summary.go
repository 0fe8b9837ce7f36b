package season

import (
	"github.com/montanaflynn/stats"

	"nfl-passer-mcp/internal/model"
)

// Summarize reduces a comparison series. It returns nil for an empty series.
func Summarize(points []model.ComparisonPoint) *model.SeasonSummary {
	if len(points) == 0 {
		return nil
	}
	player := make(stats.Float64Data, 0, len(points))
	best := make(stats.Float64Data, 0, len(points))
	gaps := make(stats.Float64Data, 0, len(points))
	atBest := 0
	for _, p := range points {
		player = append(player, p.PlayerRating)
		best = append(best, p.LeagueMaxRating)
		gaps = append(gaps, p.LeagueMaxRating-p.PlayerRating)
		if p.PlayerRating >= p.LeagueMaxRating {
			atBest++
		}
	}

	// inputs are non-empty so the only errors are EmptyInputErr
	out := &model.SeasonSummary{Weeks: len(points), WeeksAtLeagueBest: atBest}
	out.PlayerMean, _ = player.Mean()
	out.PlayerMedian, _ = player.Median()
	out.LeagueMaxMean, _ = best.Mean()
	out.MeanGap, _ = gaps.Mean()
	// sample deviation is undefined for a single week
	if len(points) > 1 {
		out.PlayerStdDev, _ = player.StandardDeviationSample()
	}
	return out
}
