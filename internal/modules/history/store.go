package history

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles query_history persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, e Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO query_history (id, channel, query, reply, intents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, string(e.Channel), e.Query, e.Reply, e.Intents, e.CreatedAt)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, channel, query, reply, intents, created_at
		FROM query_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e       Entry
			channel string
		)
		if err := rows.Scan(&e.ID, &channel, &e.Query, &e.Reply, &e.Intents, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Channel = Channel(channel)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
