// Package statsquery defines the source of per-player weekly passing lines
// and its implementations (nfldb on PostgreSQL, a local SQLite mirror, the
// raw JSON store, and an in-memory fixture).
package statsquery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nfl-passer-mcp/internal/model"
)

const DefaultPosition = "QB"

// MaxWeek bounds week numbers. nfldb numbers postseason weeks after the
// regular season, so 25 covers every phase.
const MaxWeek = 25

var ErrInvalidQuery = errors.New("invalid stats query")

type Query struct {
	SeasonYear  int              `json:"season_year"`
	SeasonType  model.SeasonType `json:"season_type"`
	Week        int              `json:"week"`
	Position    string           `json:"position"`
	MinAttempts int              `json:"min_attempts"`
}

// Source returns every player at q.Position with more than q.MinAttempts
// passing attempts in the given week, in a stable source order.
type Source interface {
	WeekStats(ctx context.Context, q Query) ([]model.PlayerWeekStat, error)
}

// Normalize fills the default position and upper-cases it.
func (q Query) Normalize() Query {
	q.Position = strings.ToUpper(strings.TrimSpace(q.Position))
	if q.Position == "" {
		q.Position = DefaultPosition
	}
	return q
}

func (q Query) Validate() error {
	if q.SeasonYear <= 0 {
		return fmt.Errorf("%w: season_year %d", ErrInvalidQuery, q.SeasonYear)
	}
	if !q.SeasonType.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidQuery, q.SeasonType)
	}
	if q.Week < 1 || q.Week > MaxWeek {
		return fmt.Errorf("%w: week %d", ErrInvalidQuery, q.Week)
	}
	if q.MinAttempts < 0 {
		return fmt.Errorf("%w: min_attempts %d", ErrInvalidQuery, q.MinAttempts)
	}
	return nil
}

// Matches applies the position and attempts filter client-side.
func (q Query) Matches(s model.PlayerWeekStat) bool {
	if s.Attempts <= q.MinAttempts {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(s.Position), q.Position)
}

func filter(q Query, rows []model.PlayerWeekStat) []model.PlayerWeekStat {
	out := make([]model.PlayerWeekStat, 0, len(rows))
	for _, r := range rows {
		if !q.Matches(r) {
			continue
		}
		r.Week = q.Week
		out = append(out, r)
	}
	return out
}
