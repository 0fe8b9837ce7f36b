package statsquery

import (
	"context"

	"nfl-passer-mcp/internal/model"
)

type weekKey struct {
	year int
	typ  model.SeasonType
	week int
}

// Static serves fixed rows from memory. Rows keep the order they were added.
type Static struct {
	rows map[weekKey][]model.PlayerWeekStat
	// Err, when set, is returned for every call.
	Err error
}

func NewStatic() *Static {
	return &Static{rows: make(map[weekKey][]model.PlayerWeekStat)}
}

func (s *Static) Add(year int, typ model.SeasonType, rows ...model.PlayerWeekStat) *Static {
	for _, r := range rows {
		k := weekKey{year: year, typ: typ, week: r.Week}
		s.rows[k] = append(s.rows[k], r)
	}
	return s
}

func (s *Static) WeekStats(ctx context.Context, q Query) ([]model.PlayerWeekStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return filter(q, s.rows[weekKey{year: q.SeasonYear, typ: q.SeasonType, week: q.Week}]), nil
}
