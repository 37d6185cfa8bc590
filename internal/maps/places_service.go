package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"atlas/internal/geo"
)

// DefaultPlacesLimit caps SearchNearby when the caller passes no limit.
const DefaultPlacesLimit = 5

// Place represents a simplified location result.
type Place struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
}

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

func NewPlacesService(client *maps.Client) *PlacesService {
	return &PlacesService{client: client}
}

// SearchNearby runs a text search for category, optionally "near" a place,
// and returns at most limit results in API order. No results is not an error.
func (s *PlacesService) SearchNearby(ctx context.Context, category, near string, limit int) ([]Place, error) {
	query := strings.TrimSpace(category)
	if query == "" {
		return nil, errors.New("places: category is required")
	}
	if n := strings.TrimSpace(near); n != "" {
		query = fmt.Sprintf("%s near %s", query, n)
	}
	if limit <= 0 {
		limit = DefaultPlacesLimit
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		err = classify(err)
		if errors.Is(err, geo.ErrNotFound) {
			return []Place{}, nil
		}
		return nil, fmt.Errorf("places api error: %w", err)
	}

	results := make([]Place, 0, limit)
	for _, r := range resp.Results {
		results = append(results, Place{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
			Lat:              r.Geometry.Location.Lat,
			Lon:              r.Geometry.Location.Lng,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
