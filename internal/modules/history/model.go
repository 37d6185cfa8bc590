package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned by reads when no database is wired.
var ErrNotConfigured = errors.New("history: not configured")

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Channel is the entry point that produced a reply.
type Channel string

const (
	ChannelKeyword Channel = "keyword"
	ChannelSmart   Channel = "smart"
	ChannelVoice   Channel = "voice"
)

// Entry is one answered query.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Channel   Channel   `json:"channel"`
	Query     string    `json:"query"`
	Reply     string    `json:"reply"`
	Intents   int       `json:"intents"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClampLimit maps a requested page size onto [1, MaxLimit], defaulting
// non-positive values to DefaultLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
