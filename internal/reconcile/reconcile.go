// Package reconcile checks that the weekly stats store and the SQLite
// mirror cover the same weeks with the same number of rows.
package reconcile

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/store"
)

// WeekCounter reports mirrored rows per week. statsquery.SQLite satisfies it.
type WeekCounter interface {
	WeekCounts(ctx context.Context, year int, typ model.SeasonType) (map[int]int, error)
}

type WeekCoverage struct {
	Week          int  `json:"week"`
	StoreRows     int  `json:"store_rows"`
	MirrorRows    int  `json:"mirror_rows"`
	MissingStore  bool `json:"missing_store"`
	MissingMirror bool `json:"missing_mirror"`
	Mismatch      bool `json:"mismatch"`
}

type Report struct {
	SeasonYear     int              `json:"season_year"`
	SeasonType     model.SeasonType `json:"season_type"`
	GeneratedAtUTC string           `json:"generated_at_utc"`
	Weeks          []WeekCoverage   `json:"weeks"`
}

// Problems counts weeks that are missing somewhere or disagree.
func (r Report) Problems() int {
	n := 0
	for _, w := range r.Weeks {
		if w.MissingStore || w.MissingMirror || w.Mismatch {
			n++
		}
	}
	return n
}

func ReportPath(year int, typ model.SeasonType) string {
	return fmt.Sprintf("derived/coverage/%d/%s.json", year, strings.ToLower(typ.String()))
}

// Build compares the store against the mirror for the expected weeks. When
// expected is empty, the union of weeks found in either is used. A nil
// mirror only checks the store.
func Build(ctx context.Context, st *store.JSONStore, mirror WeekCounter, year int, typ model.SeasonType, expected []int) (Report, error) {
	storeWeeks, err := st.Weeks(year, typ)
	if err != nil {
		return Report{}, err
	}
	mirrorCounts := map[int]int{}
	if mirror != nil {
		if mirrorCounts, err = mirror.WeekCounts(ctx, year, typ); err != nil {
			return Report{}, fmt.Errorf("mirror counts: %w", err)
		}
	}

	weeks := slices.Clone(expected)
	if len(weeks) == 0 {
		weeks = append(weeks, storeWeeks...)
		for wk := range mirrorCounts {
			weeks = append(weeks, wk)
		}
	}
	slices.Sort(weeks)
	weeks = slices.Compact(weeks)

	report := Report{
		SeasonYear:     year,
		SeasonType:     typ,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Weeks:          make([]WeekCoverage, 0, len(weeks)),
	}
	for _, wk := range weeks {
		cov := WeekCoverage{Week: wk}
		if _, found := slices.BinarySearch(storeWeeks, wk); found {
			f, err := st.ReadWeek(year, typ, wk)
			if err != nil {
				return Report{}, fmt.Errorf("week %d: %w", wk, err)
			}
			cov.StoreRows = len(f.Players)
		} else {
			cov.MissingStore = true
		}
		if mirror != nil {
			n, ok := mirrorCounts[wk]
			cov.MirrorRows = n
			cov.MissingMirror = !ok
			cov.Mismatch = !cov.MissingStore && ok && n != cov.StoreRows
		}
		report.Weeks = append(report.Weeks, cov)
	}
	return report, nil
}

func Write(st *store.JSONStore, r Report) error {
	return st.WriteJSON(ReportPath(r.SeasonYear, r.SeasonType), r)
}
