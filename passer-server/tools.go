package main

import (
	"context"
	"fmt"
	"strings"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/rating"
	"nfl-passer-mcp/internal/season"
	"nfl-passer-mcp/internal/statsquery"
)

// Regular season weeks used when a series request names no weeks.
const (
	defaultStartWeek = 1
	defaultEndWeek   = 17
)

type PasserRatingArgs struct {
	Attempts      int   `json:"attempts" jsonschema:"Pass attempts (must be > 0)"`
	Completions   int   `json:"completions" jsonschema:"Completed passes"`
	Yards         int   `json:"yards" jsonschema:"Passing yards"`
	Touchdowns    int   `json:"touchdowns" jsonschema:"Passing touchdowns"`
	Interceptions int   `json:"interceptions" jsonschema:"Interceptions thrown"`
	Clamp         *bool `json:"clamp,omitempty" jsonschema:"Clamp each component to [0, 2.375] (default: server setting)"`
}

type PasserRatingOutput struct {
	Line          rating.StatLine   `json:"line"`
	Clamped       bool              `json:"clamped"`
	Components    rating.Components `json:"components"`
	CompletionPct float64           `json:"completion_pct"`
	Rating        float64           `json:"rating"`
}

type WeeklyLeaderboardArgs struct {
	SeasonYear  int    `json:"season_year" jsonschema:"Season year, e.g. 2016"`
	SeasonType  string `json:"season_type,omitempty" jsonschema:"Preseason, Regular or Postseason (default Regular)"`
	Week        int    `json:"week" jsonschema:"Week number (>= 1)"`
	Position    string `json:"position,omitempty" jsonschema:"Position filter (default QB)"`
	MinAttempts int    `json:"min_attempts,omitempty" jsonschema:"Only players with more attempts than this (default 0)"`
	Top         int    `json:"top,omitempty" jsonschema:"Return only the first N rows (0 = all)"`
}

type WeeklyLeaderboardOutput struct {
	model.WeeklyLeaderboard
	TotalPlayers int `json:"total_players"`
}

type SeasonSeriesArgs struct {
	PlayerName  string `json:"player_name" jsonschema:"Exact player name as stored by the source, e.g. Carson Wentz"`
	SeasonYear  int    `json:"season_year" jsonschema:"Season year, e.g. 2016"`
	SeasonType  string `json:"season_type,omitempty" jsonschema:"Preseason, Regular or Postseason (default Regular)"`
	Position    string `json:"position,omitempty" jsonschema:"Position filter (default QB)"`
	MinAttempts int    `json:"min_attempts,omitempty" jsonschema:"Only players with more attempts than this (default 0)"`
	Weeks       []int  `json:"weeks,omitempty" jsonschema:"Explicit weeks; overrides start_week and end_week"`
	StartWeek   int    `json:"start_week,omitempty" jsonschema:"First week of the range (default 1)"`
	EndWeek     int    `json:"end_week,omitempty" jsonschema:"Last week of the range (default 17)"`
	ByeWeeks    []int  `json:"bye_weeks,omitempty" jsonschema:"Weeks to skip, e.g. the player's bye"`
}

func (a *app) buildPasserRating(args PasserRatingArgs) (PasserRatingOutput, error) {
	opts := rating.Options{Clamp: a.cfg.Clamp}
	if args.Clamp != nil {
		opts.Clamp = *args.Clamp
	}
	line := rating.StatLine{
		Attempts:      args.Attempts,
		Completions:   args.Completions,
		Yards:         args.Yards,
		Touchdowns:    args.Touchdowns,
		Interceptions: args.Interceptions,
	}
	comps, err := rating.ComputeComponents(line, opts)
	if err != nil {
		return PasserRatingOutput{}, err
	}
	pct, err := rating.CompletionPct(line.Completions, line.Attempts)
	if err != nil {
		return PasserRatingOutput{}, err
	}
	return PasserRatingOutput{
		Line:          line,
		Clamped:       opts.Clamp,
		Components:    comps,
		CompletionPct: pct,
		Rating:        comps.Rating(),
	}, nil
}

func (a *app) buildWeeklyLeaderboard(ctx context.Context, args WeeklyLeaderboardArgs) (WeeklyLeaderboardOutput, error) {
	typ, err := model.ParseSeasonType(args.SeasonType)
	if err != nil {
		return WeeklyLeaderboardOutput{}, fmt.Errorf("%w: %w", statsquery.ErrInvalidQuery, err)
	}
	lb, err := a.agg.WeeklyLeaderboard(ctx, statsquery.Query{
		SeasonYear:  args.SeasonYear,
		SeasonType:  typ,
		Week:        args.Week,
		Position:    args.Position,
		MinAttempts: args.MinAttempts,
	})
	if err != nil {
		return WeeklyLeaderboardOutput{}, err
	}
	total := len(lb.Players)
	lb.Players = lb.Top(args.Top)
	return WeeklyLeaderboardOutput{WeeklyLeaderboard: lb, TotalPlayers: total}, nil
}

func (a *app) buildSeasonSeries(ctx context.Context, args SeasonSeriesArgs) (model.SeasonComparison, error) {
	typ, err := model.ParseSeasonType(args.SeasonType)
	if err != nil {
		return model.SeasonComparison{}, fmt.Errorf("%w: %w", statsquery.ErrInvalidQuery, err)
	}
	if len(args.Weeks) > statsquery.MaxWeek || len(args.ByeWeeks) > statsquery.MaxWeek {
		return model.SeasonComparison{}, fmt.Errorf("%w: at most %d weeks or bye weeks", statsquery.ErrInvalidQuery, statsquery.MaxWeek)
	}
	weeks := args.Weeks
	if len(weeks) == 0 {
		start, end := args.StartWeek, args.EndWeek
		if start == 0 {
			start = defaultStartWeek
		}
		if end == 0 {
			end = defaultEndWeek
		}
		if start < 1 || end > statsquery.MaxWeek || end < start {
			return model.SeasonComparison{}, fmt.Errorf("%w: week range %d..%d outside 1..%d", statsquery.ErrInvalidQuery, start, end, statsquery.MaxWeek)
		}
		weeks = season.Weeks(start, end)
	}
	return a.agg.SeasonSeries(ctx, season.SeriesRequest{
		PlayerName:  strings.TrimSpace(args.PlayerName),
		SeasonYear:  args.SeasonYear,
		SeasonType:  typ,
		Position:    args.Position,
		MinAttempts: args.MinAttempts,
		Weeks:       weeks,
		ByeWeeks:    args.ByeWeeks,
	})
}
