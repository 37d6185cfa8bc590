// README: History module tests; the DB-backed cases need ATLAS_TEST_DSN.
package history

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/logger"
)

func TestClampLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{1, 1},
		{50, 50},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClampLimit(c.in), "limit %d", c.in)
	}
}

func TestServiceWithoutStore(t *testing.T) {
	svc := NewService(nil, logger.NewNop())
	assert.False(t, svc.Enabled())

	svc.Record(context.Background(), ChannelSmart, "q", "r", 1)

	_, err := svc.Recent(context.Background(), 10)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestRecordAndRecent(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	svc.Record(ctx, ChannelKeyword, "weather in pune", "The current weather in pune is ...", 0)
	svc.Record(ctx, ChannelSmart, "hotels in goa", "Here are some hotel near goa", 1)
	svc.Record(ctx, ChannelVoice, "play jazz", "Playing jazz.", 1)

	entries, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ChannelVoice, entries[0].Channel)
	assert.Equal(t, "play jazz", entries[0].Query)
	assert.Equal(t, ChannelSmart, entries[1].Channel)
	assert.Equal(t, 1, entries[1].Intents)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
}

func TestRecordFailureIsSwallowed(t *testing.T) {
	svc, db := setupTestService(t)
	db.Close()

	svc.Record(context.Background(), ChannelSmart, "q", "r", 0)

	_, err := svc.Recent(context.Background(), 1)
	require.Error(t, err)
}

// setupTestService skips the test when ATLAS_TEST_DSN is not set.
func setupTestService(t *testing.T) (*Service, *pgxpool.Pool) {
	t.Helper()

	dsn := os.Getenv("ATLAS_TEST_DSN")
	if dsn == "" {
		t.Skip("ATLAS_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := applyMigrations(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE query_history"); err != nil {
		t.Fatalf("truncate query_history: %v", err)
	}

	return NewService(NewStore(db), logger.NewTestLogger(t)), db
}

func applyMigrations(ctx context.Context, db *pgxpool.Pool) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	matches, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, stmt := range splitSQL(stripSQLComments(string(content))) {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func stripSQLComments(input string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func splitSQL(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ";") {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
