// README: Smoke cases for every public endpoint, plus optional Postgres/Redis checks and a throughput probe.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

// migratedTables are created by migrations/.
var migratedTables = []string{"query_history"}

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

// expect describes an acceptable HTTP answer. Pending statuses mark
// optional backends that are not configured on the server.
type expect struct {
	ok       []int
	pending  []int
	contains string
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	q := url.QueryEscape
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "dsn not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not set"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				// Simple protocol runs the whole multi-statement file in one round trip.
				if _, err := r.db.Exec(ctx, string(sql), pgx.QueryExecModeSimpleProtocol); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				for _, t := range migratedTables {
					var exists bool
					if err := r.db.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", t).Scan(&exists); err != nil || !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass}
			},
		},

		httpCase("API: health", http.MethodGet, base+"/health", nil, expect{ok: []int{200}, contains: "ok"}),
		httpCase("API: metrics", http.MethodGet, base+"/metrics", nil, expect{ok: []int{200}, contains: "atlas_http_requests_total"}),

		// Keyword path
		httpCase("Keyword: weather (GET)", http.MethodGet, base+"/api/query?text="+q("weather in Pune"), nil, expect{ok: []int{200}, contains: "weather"}),
		httpCase("Keyword: charging (POST)", http.MethodPost, base+"/api/query", map[string]string{"text": "charging station near San Jose"}, expect{ok: []int{200}, contains: "EV+charging+station+near+san+jose"}),
		httpCase("Keyword: directions (POST)", http.MethodPost, base+"/api/query", map[string]string{"text": "route from mumbai to pune"}, expect{ok: []int{200}, contains: "maps/dir/mumbai/pune"}),
		httpCase("Keyword: not understood", http.MethodGet, base+"/api/query?text="+q("sing me a song"), nil, expect{ok: []int{200}, contains: "didn't understand"}),
		httpCase("Keyword: missing text -> 400", http.MethodGet, base+"/api/query", nil, expect{ok: []int{400}}),

		// Smart path
		httpCase("Smart: multi intent (GET)", http.MethodGet, base+"/api/gemini/smart?text="+q("weather in Pune and hotels in Goa"), nil, expect{ok: []int{200}}),
		httpCase("Smart: multi intent (POST)", http.MethodPost, base+"/api/gemini/smart", map[string]string{"text": "play some jazz and find a cafe near Oslo"}, expect{ok: []int{200}}),
		httpCase("Voice: blank text", http.MethodPost, base+"/api/voice-command", map[string]string{"text": " "}, expect{ok: []int{200}, contains: "didn't catch that"}),
		httpCase("Voice: command", http.MethodPost, base+"/api/voice-command", map[string]string{"text": "what's the weather in Paris"}, expect{ok: []int{200}, contains: "reply"}),

		// Collaborators
		httpCase("Lookup: weather", http.MethodGet, base+"/api/weather?place="+q("Pune"), nil, expect{ok: []int{200}, contains: "Pune"}),
		httpCase("Lookup: route", http.MethodGet, base+"/api/route?from="+q("Mumbai")+"&to="+q("Pune"), nil, expect{ok: []int{200}}),
		httpCase("Lookup: route missing to -> 400", http.MethodGet, base+"/api/route?from=Mumbai", nil, expect{ok: []int{400}}),
		httpCase("Link: directions", http.MethodGet, base+"/api/googlemaps/route?from="+q("New York")+"&to="+q("Boston"), nil, expect{ok: []int{200}, contains: "maps/dir/New+York/Boston"}),
		httpCase("Link: EV stations", http.MethodGet, base+"/api/evstations?near="+q("Pune"), nil, expect{ok: []int{200}, contains: "EV+charging+station+near+Pune"}),
		httpCase("Places: text search", http.MethodGet, base+"/api/places?category=hotel&near=Goa", nil, expect{ok: []int{200}, pending: []int{503}}),
		httpCase("History: recent", http.MethodGet, base+"/api/history?limit=5", nil, expect{ok: []int{200}, pending: []int{503}}),

		{
			Name: "Perf: keyword query throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/query", map[string]string{"text": "route from mumbai to pune"})
			},
		},
	}
}

func (r *Runner) newRequest(ctx context.Context, method, url string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", r.cfg.APIKey)
	}
	return req, nil
}

func httpCase(name, method, url string, body any, want expect) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			req, err := r.newRequest(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			latency := time.Since(start)
			note := fmt.Sprintf("status=%d", resp.StatusCode)

			switch {
			case slices.Contains(want.ok, resp.StatusCode):
				if want.contains != "" && !strings.Contains(string(respBody), want.contains) {
					return Result{Status: StatusFail, Latency: latency, Note: note + " body missing " + want.contains}
				}
				return Result{Status: StatusPass, Latency: latency, Note: note}
			case slices.Contains(want.pending, resp.StatusCode):
				return Result{Status: StatusPending, Latency: latency, Note: note}
			default:
				return Result{Status: StatusFail, Latency: latency, Note: note}
			}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string, payload any) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount, limited atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, err := r.newRequest(ctx, http.MethodPost, url, payload)
				if err != nil {
					errCount.Add(1)
					continue
				}
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				if resp.StatusCode == http.StatusTooManyRequests {
					limited.Add(1)
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d rate_limited=%d", rps, errCount.Load(), limited.Load())}
}
