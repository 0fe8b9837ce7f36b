package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/rating"
	"nfl-passer-mcp/internal/season"
	"nfl-passer-mcp/internal/statsquery"
)

func page(title string, body templ.Component) templ.Component {
	return templ.Join(
		templ.Raw(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`),
		text(title),
		templ.Raw(`</title></head><body><h1>`),
		text(title),
		templ.Raw(`</h1>`),
		body,
		templ.Raw(`</body></html>`),
	)
}

// text renders s HTML-escaped.
func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

func td(format string, args ...any) templ.Component {
	return templ.Join(templ.Raw("<td>"), text(fmt.Sprintf(format, args...)), templ.Raw("</td>"))
}

func tr(cells ...templ.Component) templ.Component {
	return templ.Join(templ.Raw("<tr>"), templ.Join(cells...), templ.Raw("</tr>"))
}

func headerRow(names ...string) templ.Component {
	cells := make([]templ.Component, 0, len(names))
	for _, n := range names {
		cells = append(cells, templ.Join(templ.Raw("<th>"), text(n), templ.Raw("</th>")))
	}
	return tr(cells...)
}

func table(class string, head templ.Component, rows []templ.Component) templ.Component {
	return templ.Join(
		templ.Raw(`<table class="`), text(class), templ.Raw(`"><thead>`),
		head,
		templ.Raw(`</thead><tbody>`),
		templ.Join(rows...),
		templ.Raw(`</tbody></table>`),
	)
}

func leaderboardRow(rank int, p model.RatedPlayerWeekStat) templ.Component {
	return tr(
		td("%d", rank),
		td("%s", p.PlayerName),
		td("%s", p.Team),
		td("%d", p.Completions),
		td("%d", p.Attempts),
		td("%.1f", p.CompletionPct),
		td("%d", p.Yards),
		td("%d", p.Touchdowns),
		td("%d", p.Interceptions),
		td("%.1f", p.Rating),
	)
}

func leaderboardTable(rows []model.RatedPlayerWeekStat) templ.Component {
	if len(rows) == 0 {
		return templ.Raw(`<p class="empty">No qualifying players.</p>`)
	}
	body := make([]templ.Component, 0, len(rows))
	for i, p := range rows {
		body = append(body, leaderboardRow(i+1, p))
	}
	return table("leaderboard", headerRow("#", "Player", "Team", "Cmp", "Att", "Pct", "Yds", "TD", "Int", "Rating"), body)
}

func seriesSummary(s *model.SeasonSummary) templ.Component {
	if s == nil {
		return templ.Raw("")
	}
	return templ.Join(
		templ.Raw(`<p class="summary">`),
		text(fmt.Sprintf("Mean %.1f, median %.1f, league max mean %.1f, mean gap %.1f, weeks at league best %d.",
			s.PlayerMean, s.PlayerMedian, s.LeagueMaxMean, s.MeanGap, s.WeeksAtLeagueBest)),
		templ.Raw(`</p>`),
	)
}

func seriesTable(cmp model.SeasonComparison) templ.Component {
	body := make([]templ.Component, 0, len(cmp.Points))
	for _, pt := range cmp.Points {
		body = append(body, tr(
			td("%d", pt.Week),
			td("%.1f", pt.LeagueMaxRating),
			td("%s", pt.LeagueMaxPlayer),
			td("%.1f", pt.PlayerRating),
		))
	}
	return templ.Join(
		table("series", headerRow("Week", "League max", "Set by", cmp.PlayerName), body),
		seriesSummary(cmp.Summary),
	)
}

// leaderboardHandler serves GET /leaderboard?season_year=&season_type=&week=&position=&min_attempts=&top=
func (a *app) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args := WeeklyLeaderboardArgs{
		SeasonType: q.Get("season_type"),
		Position:   q.Get("position"),
	}
	var err error
	if args.SeasonYear, err = intParam(q.Get("season_year"), 0); err != nil {
		a.httpError(w, r, err)
		return
	}
	if args.Week, err = intParam(q.Get("week"), 0); err != nil {
		a.httpError(w, r, err)
		return
	}
	if args.MinAttempts, err = intParam(q.Get("min_attempts"), 0); err != nil {
		a.httpError(w, r, err)
		return
	}
	if args.Top, err = intParam(q.Get("top"), 0); err != nil {
		a.httpError(w, r, err)
		return
	}
	out, err := a.buildWeeklyLeaderboard(r.Context(), args)
	if err != nil {
		a.httpError(w, r, err)
		return
	}
	title := fmt.Sprintf("%d %s week %d: %s passer rating", out.SeasonYear, out.SeasonType, out.Week, out.Position)
	templ.Handler(page(title, leaderboardTable(out.Players))).ServeHTTP(w, r)
}

// seriesHandler serves GET /series?player_name=&season_year=&start_week=&end_week=&bye_weeks=4,9
func (a *app) seriesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args := SeasonSeriesArgs{
		PlayerName: q.Get("player_name"),
		SeasonType: q.Get("season_type"),
		Position:   q.Get("position"),
	}
	var err error
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"season_year", &args.SeasonYear},
		{"min_attempts", &args.MinAttempts},
		{"start_week", &args.StartWeek},
		{"end_week", &args.EndWeek},
	} {
		if *p.dst, err = intParam(q.Get(p.name), 0); err != nil {
			a.httpError(w, r, err)
			return
		}
	}
	if args.Weeks, err = intListParam(q.Get("weeks")); err != nil {
		a.httpError(w, r, err)
		return
	}
	if args.ByeWeeks, err = intListParam(q.Get("bye_weeks")); err != nil {
		a.httpError(w, r, err)
		return
	}
	out, err := a.buildSeasonSeries(r.Context(), args)
	if err != nil {
		a.httpError(w, r, err)
		return
	}
	title := fmt.Sprintf("%s vs league best, %d %s", out.PlayerName, out.SeasonYear, out.SeasonType)
	templ.Handler(page(title, seriesTable(out))).ServeHTTP(w, r)
}

func (a *app) httpError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	// Upstream first: bad rows from the source also carry rating.ErrInvalidInput.
	switch {
	case errors.Is(err, season.ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, statsquery.ErrInvalidQuery), errors.Is(err, rating.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, season.ErrNotFound):
		status = http.StatusNotFound
	}
	a.logger.Warn("request failed",
		zap.String("request_id", w.Header().Get("X-Request-Id")),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	http.Error(w, err.Error(), status)
}

func intParam(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", statsquery.ErrInvalidQuery, s)
	}
	return v, nil
}

func intListParam(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		v, err := intParam(part, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
