package statsquery

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"

	"nfl-passer-mcp/internal/model"
)

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS passing_week (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    season_year INTEGER NOT NULL,
    season_type TEXT NOT NULL,
    week INTEGER NOT NULL,
    player_id TEXT,
    full_name TEXT NOT NULL,
    team TEXT,
    position TEXT NOT NULL,
    passing_att INTEGER NOT NULL,
    passing_cmp INTEGER NOT NULL,
    passing_yds INTEGER NOT NULL,
    passing_tds INTEGER NOT NULL,
    passing_int INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS passing_week_lookup
    ON passing_week (season_year, season_type, week)`,
}

// SQLite is a local mirror of weekly passing lines.
type SQLite struct {
	DB *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; the pure-Go driver serializes anyway
	db.SetMaxOpenConns(1)
	s := &SQLite{DB: db}
	if err := s.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Init(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.DB.Close()
}

// Import replaces every row of one week with rows.
func (s *SQLite) Import(ctx context.Context, year int, typ model.SeasonType, week int, rows []model.PlayerWeekStat) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM passing_week WHERE season_year = ? AND season_type = ? AND week = ?`,
		year, typ.String(), week); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO passing_week (season_year, season_type, week, player_id, full_name, team, position,
				passing_att, passing_cmp, passing_yds, passing_tds, passing_int)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			year, typ.String(), week, r.PlayerID, r.PlayerName, r.Team, r.Position,
			r.Attempts, r.Completions, r.Yards, r.Touchdowns, r.Interceptions); err != nil {
			return fmt.Errorf("insert %s: %w", r.PlayerName, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) WeekStats(ctx context.Context, q Query) ([]model.PlayerWeekStat, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT week, COALESCE(player_id, ''), full_name, COALESCE(team, ''), position,
			passing_att, passing_cmp, passing_yds, passing_tds, passing_int
		FROM passing_week
		WHERE season_year = ? AND season_type = ? AND week = ?
			AND UPPER(position) = ? AND passing_att > ?
		ORDER BY id`,
		q.SeasonYear, q.SeasonType.String(), q.Week, q.Position, q.MinAttempts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerWeekStat
	for rows.Next() {
		var r model.PlayerWeekStat
		if err := rows.Scan(&r.Week, &r.PlayerID, &r.PlayerName, &r.Team, &r.Position,
			&r.Attempts, &r.Completions, &r.Yards, &r.Touchdowns, &r.Interceptions); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// WeekCounts returns the number of mirrored rows per week for a season.
func (s *SQLite) WeekCounts(ctx context.Context, year int, typ model.SeasonType) (map[int]int, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT week, COUNT(*) FROM passing_week
		WHERE season_year = ? AND season_type = ?
		GROUP BY week`,
		year, typ.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var wk, n int
		if err := rows.Scan(&wk, &n); err != nil {
			return nil, err
		}
		out[wk] = n
	}
	return out, rows.Err()
}
