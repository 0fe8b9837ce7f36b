package model

// PlayerWeekStat is one player's aggregated passing line for a single week,
// as returned by a stats source.
type PlayerWeekStat struct {
	Week          int    `json:"week"`
	PlayerID      string `json:"player_id,omitempty"`
	PlayerName    string `json:"player_name"`
	Team          string `json:"team,omitempty"`
	Position      string `json:"position,omitempty"`
	Attempts      int    `json:"attempts"`
	Completions   int    `json:"completions"`
	Yards         int    `json:"yards"`
	Touchdowns    int    `json:"touchdowns"`
	Interceptions int    `json:"interceptions"`
}

type RatedPlayerWeekStat struct {
	PlayerWeekStat
	CompletionPct float64 `json:"completion_pct"`
	Rating        float64 `json:"rating"`
}

// WeeklyLeaderboard is sorted by Rating descending. Rows with equal ratings
// keep the order the source returned them in.
type WeeklyLeaderboard struct {
	SeasonYear int                   `json:"season_year"`
	SeasonType SeasonType            `json:"season_type"`
	Week       int                   `json:"week"`
	Position   string                `json:"position"`
	Players    []RatedPlayerWeekStat `json:"players"`
}

// Top returns the first n rows. n <= 0 returns every row.
func (lb WeeklyLeaderboard) Top(n int) []RatedPlayerWeekStat {
	if n <= 0 || n >= len(lb.Players) {
		return lb.Players
	}
	return lb.Players[:n]
}

// Find returns the row for the exact player name.
func (lb WeeklyLeaderboard) Find(name string) (RatedPlayerWeekStat, bool) {
	for _, p := range lb.Players {
		if p.PlayerName == name {
			return p, true
		}
	}
	return RatedPlayerWeekStat{}, false
}

type ComparisonPoint struct {
	Week            int     `json:"week"`
	LeagueMaxRating float64 `json:"league_max_rating"`
	LeagueMaxPlayer string  `json:"league_max_player"`
	PlayerRating    float64 `json:"player_rating"`
}

type SeasonSummary struct {
	Weeks             int     `json:"weeks"`
	PlayerMean        float64 `json:"player_mean"`
	PlayerMedian      float64 `json:"player_median"`
	PlayerStdDev      float64 `json:"player_stddev"`
	LeagueMaxMean     float64 `json:"league_max_mean"`
	MeanGap           float64 `json:"mean_gap"`
	WeeksAtLeagueBest int     `json:"weeks_at_league_best"`
}

type SeasonComparison struct {
	PlayerName string            `json:"player_name"`
	SeasonYear int               `json:"season_year"`
	SeasonType SeasonType        `json:"season_type"`
	Points     []ComparisonPoint `json:"points"`
	Summary    *SeasonSummary    `json:"summary,omitempty"`
}
