package statsquery

import (
	"context"
	"fmt"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/store"
)

// JSON reads weekly files written by the sync command and filters them
// client-side.
type JSON struct {
	Store *store.JSONStore
}

func NewJSON(st *store.JSONStore) *JSON {
	return &JSON{Store: st}
}

func (j *JSON) WeekStats(ctx context.Context, q Query) ([]model.PlayerWeekStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	f, err := j.Store.ReadWeek(q.SeasonYear, q.SeasonType, q.Week)
	if err != nil {
		return nil, fmt.Errorf("week stats %d %s week %d: %w", q.SeasonYear, q.SeasonType, q.Week, err)
	}
	return filter(q, f.Players), nil
}
