package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"nfl-passer-mcp/internal/model"
)

// JSONStore keeps fetched pages and parsed weekly stats under one root.
//
//	raw/passing/{year}/{type}/week/{wk}.html
//	stats/{year}/{type}/week/{wk}.json
type JSONStore struct {
	Root string // e.g. "data"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

func RawPassingPath(year int, typ model.SeasonType, week int) string {
	return fmt.Sprintf("raw/passing/%d/%s/week/%d.html", year, strings.ToLower(typ.String()), week)
}

func WeekStatsPath(year int, typ model.SeasonType, week int) string {
	return fmt.Sprintf("stats/%d/%s/week/%d.json", year, strings.ToLower(typ.String()), week)
}

func (s *JSONStore) WriteRaw(rel string, body []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}

// WriteJSON writes v indented with a trailing newline.
func (s *JSONStore) WriteJSON(rel string, v any) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return s.WriteRaw(rel, buf.Bytes())
}

func (s *JSONStore) ReadJSON(rel string, v any) error {
	b, err := s.ReadRaw(rel)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", rel, err)
	}
	return nil
}

type WeekFile struct {
	SeasonYear     int                    `json:"season_year"`
	SeasonType     model.SeasonType       `json:"season_type"`
	Week           int                    `json:"week"`
	GeneratedAtUTC string                 `json:"generated_at_utc"`
	Players        []model.PlayerWeekStat `json:"players"`
}

func (s *JSONStore) WriteWeek(f WeekFile) error {
	return s.WriteJSON(WeekStatsPath(f.SeasonYear, f.SeasonType, f.Week), f)
}

func (s *JSONStore) ReadWeek(year int, typ model.SeasonType, week int) (WeekFile, error) {
	var f WeekFile
	err := s.ReadJSON(WeekStatsPath(year, typ, week), &f)
	return f, err
}

// Weeks lists the weeks with a stats file for the season, ascending.
func (s *JSONStore) Weeks(year int, typ model.SeasonType) ([]int, error) {
	dir := filepath.Dir(s.Path(WeekStatsPath(year, typ, 1)))
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	weeks := make([]int, 0, len(files))
	for _, f := range files {
		wk, err := strconv.Atoi(strings.TrimSuffix(filepath.Base(f), ".json"))
		if err != nil {
			continue
		}
		weeks = append(weeks, wk)
	}
	slices.Sort(weeks)
	return weeks, nil
}
