package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"nfl-passer-mcp/internal/logging"
	"nfl-passer-mcp/internal/rating"
	"nfl-passer-mcp/internal/season"
	"nfl-passer-mcp/internal/statsquery"
	"nfl-passer-mcp/internal/store"
)

type ServerConfig struct {
	Source      string // json|sqlite|nfldb
	DataRoot    string
	SQLitePath  string
	DatabaseURL string
	Clamp       bool
	Parallel    int
}

type app struct {
	cfg    ServerConfig
	agg    *season.Aggregator
	logger *zap.Logger
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		source      = flag.String("source", "json", "stats source: json|sqlite|nfldb")
		dataRoot    = flag.String("data-root", "data", "root directory for weekly stats JSON")
		sqlitePath  = flag.String("sqlite", "data/passing.db", "SQLite mirror path")
		databaseURL = flag.String("database-url", os.Getenv("NFLDB_DATABASE_URL"), "nfldb PostgreSQL URL")
		clamp       = flag.Bool("clamp", false, "clamp rating components to the official [0, 2.375] range")
		parallel    = flag.Int("parallel", 4, "max concurrent week queries for season series")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via NFL_MCP_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
		logLevel    = flag.String("log-level", "info", "log level")
		logDev      = flag.Bool("log-dev", false, "human-readable logs")
	)
	flag.Parse()

	logger, err := logging.New(*logLevel, *logDev)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := ServerConfig{
		Source:      *source,
		DataRoot:    *dataRoot,
		SQLitePath:  *sqlitePath,
		DatabaseURL: *databaseURL,
		Clamp:       *clamp,
		Parallel:    *parallel,
	}

	ctx := context.Background()
	src, closeSrc, err := openSource(ctx, cfg)
	if err != nil {
		logger.Fatal("opening stats source", zap.String("source", cfg.Source), zap.Error(err))
	}
	defer closeSrc()

	a := newApp(cfg, src, logger)

	apiKey := strings.TrimSpace(os.Getenv("NFL_MCP_API_KEY"))
	if *requireAuth && apiKey == "" {
		logger.Fatal("NFL_MCP_API_KEY is required (set env var or run with --require-auth=false)")
	}

	mux := a.routes(*mcpPath, apiKey, *authHeader)
	logger.Info("MCP HTTP server listening", zap.String("addr", *addr), zap.String("path", *mcpPath), zap.String("source", cfg.Source))
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newApp(cfg ServerConfig, src statsquery.Source, logger *zap.Logger) *app {
	agg := season.New(src,
		season.WithRatingOptions(rating.Options{Clamp: cfg.Clamp}),
		season.WithLogger(logger),
		season.WithParallel(cfg.Parallel),
	)
	return &app{cfg: cfg, agg: agg, logger: logger}
}

func openSource(ctx context.Context, cfg ServerConfig) (statsquery.Source, func(), error) {
	switch cfg.Source {
	case "json":
		return statsquery.NewJSON(store.NewJSONStore(cfg.DataRoot)), func() {}, nil
	case "sqlite":
		db, err := statsquery.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case "nfldb":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("nfldb source needs --database-url or NFLDB_DATABASE_URL")
		}
		pool, err := statsquery.ConnectNFLDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return statsquery.NewNFLDB(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown source: %q", cfg.Source)
	}
}

func (a *app) mcpServer() (*mcp.Server, []toolInfo) {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nfl-passer-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 3)

	addTool(server, &registry, &mcp.Tool{
		Name:        "passer_rating",
		Description: "Passer rating and its four components for a single stat line",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PasserRatingArgs) (*mcp.CallToolResult, any, error) {
		out, err := a.buildPasserRating(args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.MarshalIndent(out, "", "  "))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "weekly_leaderboard",
		Description: "Players ranked by passer rating for one week of a season",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args WeeklyLeaderboardArgs) (*mcp.CallToolResult, any, error) {
		out, err := a.buildWeeklyLeaderboard(ctx, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.MarshalIndent(out, "", "  "))
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "season_series",
		Description: "A player's weekly passer rating against the weekly league maximum across a season (bye weeks excluded)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SeasonSeriesArgs) (*mcp.CallToolResult, any, error) {
		out, err := a.buildSeasonSeries(ctx, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(json.MarshalIndent(out, "", "  "))
	})

	return server, registry
}

func (a *app) routes(mcpPath, apiKey, authHeader string) *http.ServeMux {
	server, registry := a.mcpServer()
	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return a.withRequestID(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	mux.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	mux.HandleFunc("/leaderboard", withAuth(a.leaderboardHandler))
	mux.HandleFunc("/series", withAuth(a.seriesHandler))

	mux.HandleFunc(mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	return mux
}

// withRequestID tags each request with an id, echoed in X-Request-Id.
func (a *app) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		a.logger.Debug("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next(w, r)
	}
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
