package statsquery

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nfl-passer-mcp/internal/model"
)

// nfldbWeekQuery aggregates play-level passing stats into one row per player
// for a single game week. The HAVING clause is the attempts filter; the
// position and season phase enums are compared as text.
const nfldbWeekQuery = `
SELECT g.week,
       p.player_id,
       COALESCE(p.full_name, ''),
       COALESCE(MAX(pp.team), ''),
       p.position::text,
       SUM(pp.passing_att)::int,
       SUM(pp.passing_cmp)::int,
       SUM(pp.passing_yds)::int,
       SUM(pp.passing_tds)::int,
       SUM(pp.passing_int)::int
FROM play_player pp
JOIN game g ON g.gsis_id = pp.gsis_id
JOIN player p ON p.player_id = pp.player_id
WHERE g.season_year = $1
  AND g.season_type::text = $2
  AND g.week = $3
  AND p.position::text = $4
GROUP BY g.week, p.player_id, p.full_name, p.position
HAVING SUM(pp.passing_att) > $5
ORDER BY p.player_id`

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NFLDB queries an nfldb PostgreSQL database.
type NFLDB struct {
	DB Querier
}

func NewNFLDB(db Querier) *NFLDB {
	return &NFLDB{DB: db}
}

// ConnectNFLDB opens a pool for databaseURL and pings it.
func ConnectNFLDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to nfldb: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging nfldb: %w", err)
	}
	return pool, nil
}

func (n *NFLDB) WeekStats(ctx context.Context, q Query) ([]model.PlayerWeekStat, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	rows, err := n.DB.Query(ctx, nfldbWeekQuery, q.SeasonYear, q.SeasonType.String(), q.Week, q.Position, q.MinAttempts)
	if err != nil {
		return nil, fmt.Errorf("querying nfldb: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PlayerWeekStat, error) {
		var r model.PlayerWeekStat
		err := row.Scan(&r.Week, &r.PlayerID, &r.PlayerName, &r.Team, &r.Position,
			&r.Attempts, &r.Completions, &r.Yards, &r.Touchdowns, &r.Interceptions)
		return r, err
	})
}
