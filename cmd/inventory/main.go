package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"nfl-passer-mcp/internal/logging"
	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/reconcile"
	"nfl-passer-mcp/internal/season"
	"nfl-passer-mcp/internal/statsquery"
	"nfl-passer-mcp/internal/store"
)

func main() {
	var (
		seasonYear = flag.Int("year", 2016, "season year")
		seasonType = flag.String("season-type", "Regular", "season type: Preseason|Regular|Postseason")
		weekMin    = flag.Int("week-min", 0, "first expected week (0 = whatever is present)")
		weekMax    = flag.Int("week-max", 0, "last expected week")
		dataRoot   = flag.String("data-root", "data", "root directory for weekly stats JSON")
		sqlitePath = flag.String("sqlite", "data/passing.db", "SQLite mirror to compare against (empty to skip)")
		write      = flag.Bool("write", true, "write the coverage report under derived/coverage")
		logLevel   = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel, false)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	typ, err := model.ParseSeasonType(*seasonType)
	if err != nil {
		logger.Fatal("bad season type", zap.Error(err))
	}

	var expected []int
	if *weekMin > 0 {
		expected = season.Weeks(*weekMin, *weekMax)
		if len(expected) == 0 {
			logger.Fatal("invalid week range", zap.Int("week_min", *weekMin), zap.Int("week_max", *weekMax))
		}
	}

	st := store.NewJSONStore(*dataRoot)
	var mirror reconcile.WeekCounter
	if *sqlitePath != "" {
		if _, err := os.Stat(*sqlitePath); err != nil {
			logger.Fatal("sqlite mirror not found", zap.String("path", *sqlitePath), zap.Error(err))
		}
		db, err := statsquery.OpenSQLite(*sqlitePath)
		if err != nil {
			logger.Fatal("opening sqlite", zap.String("path", *sqlitePath), zap.Error(err))
		}
		defer db.Close()
		mirror = db
	}

	report, err := reconcile.Build(context.Background(), st, mirror, *seasonYear, typ, expected)
	if err != nil {
		logger.Fatal("building coverage report", zap.Error(err))
	}
	for _, w := range report.Weeks {
		status := "ok"
		switch {
		case w.MissingStore:
			status = "missing from store"
		case w.MissingMirror && mirror != nil:
			status = "missing from mirror"
		case w.Mismatch:
			status = "row count mismatch"
		}
		fmt.Printf("week %2d  store=%-3d mirror=%-3d %s\n", w.Week, w.StoreRows, w.MirrorRows, status)
	}
	if *write {
		if err := reconcile.Write(st, report); err != nil {
			logger.Fatal("writing coverage report", zap.Error(err))
		}
		logger.Info("wrote coverage report", zap.String("path", st.Path(reconcile.ReportPath(*seasonYear, typ))))
	}
	if n := report.Problems(); n > 0 {
		logger.Warn("coverage problems", zap.Int("weeks", n))
		os.Exit(1)
	}
}
