package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"atlas/internal/geo"
)

// GoogleGeocoder resolves places with the Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(client *maps.Client) *GoogleGeocoder {
	return &GoogleGeocoder{client: client}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, place string) (geo.Coordinates, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: strings.TrimSpace(place)})
	if err != nil {
		return geo.Coordinates{}, fmt.Errorf("geocode %q: %w", place, classify(err))
	}
	if len(results) == 0 {
		return geo.Coordinates{}, fmt.Errorf("geocode %q: %w", place, geo.ErrNotFound)
	}
	loc := results[0].Geometry.Location
	return geo.Coordinates{Lon: loc.Lng, Lat: loc.Lat}, nil
}
