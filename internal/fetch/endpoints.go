package fetch

import (
	"context"
	"fmt"
	"strings"

	"nfl-passer-mcp/internal/model"
	"nfl-passer-mcp/internal/store"
)

// /stats/passing/{year}/{type}/week/{week}
func (c *Client) WeeklyPassing(ctx context.Context, year int, typ model.SeasonType, week int, force bool) ([]byte, error) {
	return c.FetchRaw(ctx,
		fmt.Sprintf("/stats/passing/%d/%s/week/%d", year, strings.ToLower(typ.String()), week),
		store.RawPassingPath(year, typ, week),
		force,
	)
}
