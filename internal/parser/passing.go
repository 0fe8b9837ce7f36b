// Package parser extracts weekly passing lines from stats pages.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"nfl-passer-mcp/internal/model"
)

// Column keys used by the data-stat attribute on each cell.
const (
	colPlayer        = "player"
	colTeam          = "team"
	colPosition      = "pos"
	colCompletions   = "pass_cmp"
	colAttempts      = "pass_att"
	colYards         = "pass_yds"
	colTouchdowns    = "pass_td"
	colInterceptions = "pass_int"
)

// ParsePassing reads the rows of table#passing. Header rows repeated inside
// the body and rows without a player are skipped. Empty numeric cells count
// as zero.
func ParsePassing(r io.Reader, week int) ([]model.PlayerWeekStat, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	table := doc.Find("table#passing")
	if table.Length() == 0 {
		return nil, fmt.Errorf("passing table not found")
	}

	var (
		out    []model.PlayerWeekStat
		rowErr error
		rowNum int
	)
	table.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		rowNum = i + 1
		if row.HasClass("thead") || row.HasClass("over_header") {
			return true
		}
		playerCell := cell(row, colPlayer)
		name := cleanName(playerCell.Text())
		if name == "" {
			return true
		}
		s := model.PlayerWeekStat{
			Week:       week,
			PlayerName: name,
			Team:       strings.TrimSpace(cell(row, colTeam).Text()),
			Position:   strings.ToUpper(strings.TrimSpace(cell(row, colPosition).Text())),
		}
		if id, ok := playerCell.Attr("data-append-csv"); ok {
			s.PlayerID = id
		}
		for _, f := range []struct {
			col string
			dst *int
		}{
			{colAttempts, &s.Attempts},
			{colCompletions, &s.Completions},
			{colYards, &s.Yards},
			{colTouchdowns, &s.Touchdowns},
			{colInterceptions, &s.Interceptions},
		} {
			v, err := number(cell(row, f.col).Text())
			if err != nil {
				rowErr = fmt.Errorf("row %d (%s) column %s: %w", rowNum, name, f.col, err)
				return false
			}
			*f.dst = v
		}
		out = append(out, s)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return out, nil
}

func cell(row *goquery.Selection, stat string) *goquery.Selection {
	return row.Find(fmt.Sprintf(`[data-stat="%s"]`, stat)).First()
}

// cleanName drops the award markers (* Pro Bowl, + All-Pro) appended to names.
func cleanName(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "*+"))
}

func number(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
