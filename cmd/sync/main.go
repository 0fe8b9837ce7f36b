package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"nfl-passer-mcp/internal/fetch"
	"nfl-passer-mcp/internal/logging"
	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/statsquery"
	"nfl-passer-mcp/internal/store"
)

func main() {
	var (
		seasonYear = flag.Int("year", 2016, "season year")
		seasonType = flag.String("season-type", "Regular", "season type: Preseason|Regular|Postseason")
		weekMin    = flag.Int("week-min", 1, "first week to fetch")
		weekMax    = flag.Int("week-max", 17, "last week to fetch")
		dataRoot   = flag.String("data-root", "data", "root directory for raw pages and weekly stats JSON")
		sqlitePath = flag.String("sqlite", "data/passing.db", "SQLite mirror to import into (empty to skip)")
		baseURL    = flag.String("base-url", "", "stats site base URL (default: client default)")
		sleepMS    = flag.Int("sleep-ms", 2000, "sleep between requests in ms")
		refresh    = flag.String("refresh", "none", "refresh mode: none|all")
		live       = flag.Bool("live", false, "disable cache and disk writes")
		schedule   = flag.String("schedule", "", "cron spec to re-run the sync (empty = run once)")
		logLevel   = flag.String("log-level", "info", "log level")
		logDev     = flag.Bool("log-dev", false, "human-readable logs")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel, *logDev)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	typ, err := model.ParseSeasonType(*seasonType)
	if err != nil {
		logger.Fatal("bad season type", zap.Error(err))
	}
	if *refresh != "none" && *refresh != "all" {
		logger.Fatal("invalid refresh mode", zap.String("refresh", *refresh))
	}

	st := store.NewJSONStore(*dataRoot)
	client := fetch.NewClient(st, logger)
	if *baseURL != "" {
		client.BaseURL = *baseURL
	}
	client.Sleep = time.Duration(*sleepMS) * time.Millisecond
	client.UseCache = !*live
	client.DisableWrite = *live

	s := &syncer{client: client, store: st, logger: logger}
	if *sqlitePath != "" && !*live {
		if err := os.MkdirAll(*dataRoot, 0o755); err != nil {
			logger.Fatal("creating data root", zap.Error(err))
		}
		db, err := statsquery.OpenSQLite(*sqlitePath)
		if err != nil {
			logger.Fatal("opening sqlite", zap.String("path", *sqlitePath), zap.Error(err))
		}
		defer db.Close()
		s.db = db
	}

	cfg := syncConfig{
		SeasonYear: *seasonYear,
		SeasonType: typ,
		WeekMin:    *weekMin,
		WeekMax:    *weekMax,
		Force:      *refresh == "all",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *schedule == "" {
		if err := s.run(ctx, cfg); err != nil {
			logger.Fatal("sync failed", zap.Error(err))
		}
		return
	}

	// scheduled runs always refetch; the cache would serve last week's page
	cfg.Force = true
	c := cron.New()
	if _, err := c.AddFunc(*schedule, func() {
		if err := s.run(ctx, cfg); err != nil {
			logger.Error("scheduled sync failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("invalid schedule", zap.String("schedule", *schedule), zap.Error(err))
	}
	logger.Info("sync scheduled", zap.String("schedule", *schedule))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("sync stopped")
}
