// Package season builds weekly passer-rating leaderboards and compares one
// player's weekly rating against the league maximum across a season.
package season

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/rating"
	"nfl-passer-mcp/internal/statsquery"
)

var (
	ErrNotFound = errors.New("not found")
	ErrUpstream = errors.New("stats source failed")
)

// Aggregator holds no state between calls; every method recomputes from the
// source.
type Aggregator struct {
	Source   statsquery.Source
	Rating   rating.Options
	Logger   *zap.Logger
	Parallel int // max concurrent week fetches; <= 1 fetches sequentially
}

type Option func(*Aggregator)

func WithRatingOptions(o rating.Options) Option {
	return func(a *Aggregator) { a.Rating = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) { a.Logger = l }
}

func WithParallel(n int) Option {
	return func(a *Aggregator) { a.Parallel = n }
}

func New(src statsquery.Source, opts ...Option) *Aggregator {
	a := &Aggregator{Source: src, Logger: zap.NewNop()}
	for _, o := range opts {
		o(a)
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	return a
}

// RatePlayers adds completion percentage and rating to every row. A row with
// zero attempts fails the whole call.
func RatePlayers(rows []model.PlayerWeekStat, opts rating.Options) ([]model.RatedPlayerWeekStat, error) {
	out := make([]model.RatedPlayerWeekStat, 0, len(rows))
	for _, r := range rows {
		line := rating.StatLine{
			Attempts:      r.Attempts,
			Completions:   r.Completions,
			Yards:         r.Yards,
			Touchdowns:    r.Touchdowns,
			Interceptions: r.Interceptions,
		}
		rtg, err := rating.Compute(line, opts)
		if err != nil {
			return nil, fmt.Errorf("week %d %s: %w", r.Week, r.PlayerName, err)
		}
		pct, err := rating.CompletionPct(r.Completions, r.Attempts)
		if err != nil {
			return nil, fmt.Errorf("week %d %s: %w", r.Week, r.PlayerName, err)
		}
		out = append(out, model.RatedPlayerWeekStat{PlayerWeekStat: r, CompletionPct: pct, Rating: rtg})
	}
	return out, nil
}

// SortByRating orders rows by rating descending, keeping source order on ties.
func SortByRating(rows []model.RatedPlayerWeekStat) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Rating > rows[j].Rating
	})
}

func (a *Aggregator) WeeklyLeaderboard(ctx context.Context, q statsquery.Query) (model.WeeklyLeaderboard, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return model.WeeklyLeaderboard{}, err
	}
	rows, err := a.Source.WeekStats(ctx, q)
	if err != nil {
		return model.WeeklyLeaderboard{}, fmt.Errorf("%w: week %d: %w", ErrUpstream, q.Week, err)
	}
	rated, err := RatePlayers(rows, a.Rating)
	if err != nil {
		// The source let through a row it should have filtered.
		return model.WeeklyLeaderboard{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	SortByRating(rated)

	a.Logger.Debug("weekly leaderboard",
		zap.Int("season_year", q.SeasonYear),
		zap.Stringer("season_type", q.SeasonType),
		zap.Int("week", q.Week),
		zap.String("position", q.Position),
		zap.Int("rows", len(rated)),
	)
	return model.WeeklyLeaderboard{
		SeasonYear: q.SeasonYear,
		SeasonType: q.SeasonType,
		Week:       q.Week,
		Position:   q.Position,
		Players:    rated,
	}, nil
}

// WeeklyLeaderboards returns one leaderboard per distinct week, keyed by
// week number. q.Week is ignored.
func (a *Aggregator) WeeklyLeaderboards(ctx context.Context, q statsquery.Query, weeks []int) (map[int]model.WeeklyLeaderboard, error) {
	weeks = uniqueSorted(weeks)
	out := make(map[int]model.WeeklyLeaderboard, len(weeks))

	if a.Parallel <= 1 {
		for _, wk := range weeks {
			wq := q
			wq.Week = wk
			lb, err := a.WeeklyLeaderboard(ctx, wq)
			if err != nil {
				return nil, err
			}
			out[wk] = lb
		}
		return out, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Parallel)
	for _, wk := range weeks {
		wq := q
		wq.Week = wk
		g.Go(func() error {
			lb, err := a.WeeklyLeaderboard(gctx, wq)
			if err != nil {
				return err
			}
			mu.Lock()
			out[wq.Week] = lb
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type SeriesRequest struct {
	PlayerName  string           `json:"player_name"`
	SeasonYear  int              `json:"season_year"`
	SeasonType  model.SeasonType `json:"season_type"`
	Position    string           `json:"position"`
	MinAttempts int              `json:"min_attempts"`
	Weeks       []int            `json:"weeks"`
	ByeWeeks    []int            `json:"bye_weeks"`
}

// SeasonSeries compares the named player against the weekly league maximum
// for every requested week that is not a bye week. The first week with no
// qualifying players, or without the player, aborts the call with
// ErrNotFound; no partial series is returned.
func (a *Aggregator) SeasonSeries(ctx context.Context, req SeriesRequest) (model.SeasonComparison, error) {
	if req.PlayerName == "" {
		return model.SeasonComparison{}, fmt.Errorf("%w: player_name is required", statsquery.ErrInvalidQuery)
	}
	weeks := SeriesWeeks(req.Weeks, req.ByeWeeks)
	if len(weeks) > statsquery.MaxWeek {
		return model.SeasonComparison{}, fmt.Errorf("%w: %d weeks requested, at most %d", statsquery.ErrInvalidQuery, len(weeks), statsquery.MaxWeek)
	}
	q := statsquery.Query{
		SeasonYear:  req.SeasonYear,
		SeasonType:  req.SeasonType,
		Position:    req.Position,
		MinAttempts: req.MinAttempts,
	}
	boards, err := a.WeeklyLeaderboards(ctx, q, weeks)
	if err != nil {
		return model.SeasonComparison{}, err
	}

	points := make([]model.ComparisonPoint, 0, len(weeks))
	for _, wk := range weeks {
		lb := boards[wk]
		if len(lb.Players) == 0 {
			return model.SeasonComparison{}, fmt.Errorf("%w: week %d: no qualifying players", ErrNotFound, wk)
		}
		p, ok := lb.Find(req.PlayerName)
		if !ok {
			return model.SeasonComparison{}, fmt.Errorf("%w: week %d: player %q", ErrNotFound, wk, req.PlayerName)
		}
		best := lb.Players[0]
		points = append(points, model.ComparisonPoint{
			Week:            wk,
			LeagueMaxRating: best.Rating,
			LeagueMaxPlayer: best.PlayerName,
			PlayerRating:    p.Rating,
		})
	}

	out := model.SeasonComparison{
		PlayerName: req.PlayerName,
		SeasonYear: req.SeasonYear,
		SeasonType: req.SeasonType,
		Points:     points,
		Summary:    Summarize(points),
	}
	a.Logger.Info("season series",
		zap.String("player", req.PlayerName),
		zap.Int("season_year", req.SeasonYear),
		zap.Stringer("season_type", req.SeasonType),
		zap.Int("weeks", len(points)),
	)
	return out, nil
}

// SeriesWeeks returns weeks minus byes, ascending and de-duplicated.
func SeriesWeeks(weeks, byes []int) []int {
	skip := make(map[int]bool, len(byes))
	for _, b := range byes {
		skip[b] = true
	}
	out := make([]int, 0, len(weeks))
	for _, wk := range uniqueSorted(weeks) {
		if !skip[wk] {
			out = append(out, wk)
		}
	}
	return out
}

// Weeks returns from..to inclusive. Ranges that are reversed or fall outside
// 1..statsquery.MaxWeek yield nil.
func Weeks(from, to int) []int {
	if from < 1 || to > statsquery.MaxWeek || to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for wk := from; wk <= to; wk++ {
		out = append(out, wk)
	}
	return out
}

func uniqueSorted(weeks []int) []int {
	out := slices.Clone(weeks)
	slices.Sort(out)
	return slices.Compact(out)
}
