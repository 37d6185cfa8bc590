// README: Google Maps Platform backends: geocoding, driving directions and places text search.
package maps

import (
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"atlas/internal/geo"
)

// NewClient builds a Maps client. baseURL overrides the API host and is
// only set in tests.
func NewClient(apiKey, baseURL string) (*maps.Client, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// classify maps a client error onto the geo failure kinds.
func classify(err error) error {
	if strings.Contains(err.Error(), "ZERO_RESULTS") || strings.Contains(err.Error(), "NOT_FOUND") {
		return fmt.Errorf("%w: %v", geo.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", geo.ErrNetwork, err)
}
