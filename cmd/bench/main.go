// README: Smoke/benchmark runner against a running atlas API; HTTP, DB and Redis checks with a summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, pending, skipped := 0, 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			pass++
		case StatusFail:
			fail++
		case StatusPending:
			pending++
		case StatusSkip:
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d PENDING=%d SKIP=%d\n", pass, fail, pending, skipped)

	if fail > 0 || (cfg.Strict && pending > 0) {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL        string
	APIKey         string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

// benchEnv resolves flag defaults from ATLAS_BENCH_* variables.
func benchEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("ATLAS_BENCH")
	v.AutomaticEnv()
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("migration", "migrations/0001_query_history.sql")
	v.SetDefault("apply_migration", false)
	v.SetDefault("strict", false)
	v.SetDefault("timeout", 120*time.Second)
	v.SetDefault("concurrency", 10)
	v.SetDefault("duration", 5*time.Second)
	return v
}

func loadConfig() Config {
	var cfg Config
	env := benchEnv()
	flag.StringVar(&cfg.BaseURL, "base-url", env.GetString("base_url"), "API base URL")
	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("ATLAS_HTTP_API_KEY"), "X-API-Key sent with /api requests")
	flag.StringVar(&cfg.DSN, "dsn", os.Getenv("ATLAS_DB_DSN"), "Postgres DSN (empty skips DB checks)")
	flag.StringVar(&cfg.RedisAddr, "redis", os.Getenv("ATLAS_REDIS_ADDR"), "Redis address (empty skips Redis checks)")
	flag.StringVar(&cfg.MigrationPath, "migration", env.GetString("migration"), "Migration SQL path")
	flag.BoolVar(&cfg.ApplyMigration, "apply-migration", env.GetBool("apply_migration"), "Apply migration SQL before tests")
	flag.BoolVar(&cfg.Strict, "strict", env.GetBool("strict"), "Fail on pending tests")
	flag.DurationVar(&cfg.Timeout, "timeout", env.GetDuration("timeout"), "Total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", env.GetInt("concurrency"), "Concurrency for perf tests")
	flag.DurationVar(&cfg.Duration, "duration", env.GetDuration("duration"), "Duration for perf tests")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}
