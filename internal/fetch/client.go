package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"nfl-passer-mcp/internal/store"
)

type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	Logger       *zap.Logger
	BaseURL      string
	UserAgent    string
	Sleep        time.Duration
	UseCache     bool
	DisableWrite bool
}

func NewClient(st *store.JSONStore, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:      &http.Client{Timeout: 20 * time.Second},
		Store:     st,
		Logger:    logger,
		BaseURL:   "https://www.pro-football-reference.com",
		UserAgent: "nfl-passer-sync/1.0",
		Sleep:     2 * time.Second,
		UseCache:  true,
	}
}

// FetchRaw downloads urlPath (like "/years/2016/week_1.htm") and writes it to
// relPath. Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store.Exists(relPath) {
		c.Logger.Debug("cache hit", zap.String("path", relPath))
		return c.Store.ReadRaw(relPath)
	}

	if c.Sleep > 0 {
		select {
		case <-time.After(c.Sleep):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: reading body: %w", urlPath, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%.200s", urlPath, resp.StatusCode, body)
	}
	c.Logger.Info("fetched", zap.String("url", urlPath), zap.Int("bytes", len(body)))

	if !c.DisableWrite {
		if err := c.Store.WriteRaw(relPath, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}
