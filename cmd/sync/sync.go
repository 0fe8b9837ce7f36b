package main

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nfl-passer-mcp/internal/fetch"
	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/parser"
	"nfl-passer-mcp/internal/statsquery"
	"nfl-passer-mcp/internal/store"
)

type syncConfig struct {
	SeasonYear int
	SeasonType model.SeasonType
	WeekMin    int
	WeekMax    int
	Force      bool
}

type syncer struct {
	client *fetch.Client
	store  *store.JSONStore
	db     *statsquery.SQLite // nil skips the SQLite import
	logger *zap.Logger
}

// run fetches, parses and stores every week in the configured range. The
// first failing week stops the run.
func (s *syncer) run(ctx context.Context, cfg syncConfig) error {
	if cfg.WeekMin < 1 || cfg.WeekMax < cfg.WeekMin {
		return fmt.Errorf("invalid week range %d-%d", cfg.WeekMin, cfg.WeekMax)
	}
	for wk := cfg.WeekMin; wk <= cfg.WeekMax; wk++ {
		if err := s.syncWeek(ctx, cfg, wk); err != nil {
			return fmt.Errorf("week %d: %w", wk, err)
		}
	}
	s.logger.Info("sync done",
		zap.Int("season_year", cfg.SeasonYear),
		zap.Stringer("season_type", cfg.SeasonType),
		zap.Int("week_min", cfg.WeekMin),
		zap.Int("week_max", cfg.WeekMax),
	)
	return nil
}

func (s *syncer) syncWeek(ctx context.Context, cfg syncConfig, wk int) error {
	body, err := s.client.WeeklyPassing(ctx, cfg.SeasonYear, cfg.SeasonType, wk, cfg.Force)
	if err != nil {
		return err
	}
	rows, err := parser.ParsePassing(bytes.NewReader(body), wk)
	if err != nil {
		return err
	}

	if s.client.DisableWrite {
		s.logger.Info("week parsed (live mode, not stored)", zap.Int("week", wk), zap.Int("rows", len(rows)))
		return nil
	}
	if err := s.store.WriteWeek(store.WeekFile{
		SeasonYear:     cfg.SeasonYear,
		SeasonType:     cfg.SeasonType,
		Week:           wk,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Players:        rows,
	}); err != nil {
		return err
	}
	if s.db != nil {
		if err := s.db.Import(ctx, cfg.SeasonYear, cfg.SeasonType, wk, rows); err != nil {
			return err
		}
	}
	s.logger.Info("week stored", zap.Int("week", wk), zap.Int("rows", len(rows)))
	return nil
}
