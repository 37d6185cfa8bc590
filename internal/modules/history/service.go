// README: Query history; records every reply when a database is configured and lists recent ones.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"atlas/internal/logger"
)

// Service records answered queries. A Service without a store accepts
// writes silently and rejects reads with ErrNotConfigured.
type Service struct {
	store *Store
	log   logger.Logger
	now   func() time.Time
}

// NewService creates a Service; store may be nil.
func NewService(store *Store, log logger.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With(map[string]interface{}{"component": "history"}),
		now:   time.Now,
	}
}

// Enabled reports whether entries are persisted.
func (s *Service) Enabled() bool {
	return s.store != nil
}

// Record stores one reply. Failures are logged and never returned, so a
// history outage cannot change what the user sees.
func (s *Service) Record(ctx context.Context, channel Channel, query, reply string, intents int) {
	if s.store == nil {
		return
	}
	e := Entry{
		ID:        uuid.New(),
		Channel:   channel,
		Query:     query,
		Reply:     reply,
		Intents:   intents,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Insert(ctx, e); err != nil {
		s.log.WithError(err).Warn("failed to record query history", map[string]interface{}{
			"channel": string(channel),
		})
	}
}

// Recent lists the newest entries; limit is clamped with ClampLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}
	entries, err := s.store.Recent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	return entries, nil
}
