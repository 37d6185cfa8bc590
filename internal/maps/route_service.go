package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"atlas/internal/geo"
)

// DirectionsRouter computes driving routes with the Directions API.
type DirectionsRouter struct {
	client *maps.Client
}

func NewDirectionsRouter(client *maps.Client) *DirectionsRouter {
	return &DirectionsRouter{client: client}
}

func latLng(c geo.Coordinates) string {
	return fmt.Sprintf("%.7f,%.7f", c.Lat, c.Lon)
}

// Drive returns the first leg of the first suggested route.
func (r *DirectionsRouter) Drive(ctx context.Context, from, to geo.Coordinates) (geo.Leg, error) {
	req := &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := r.client.Directions(ctx, req)
	if err != nil {
		err = classify(err)
		if errors.Is(err, geo.ErrNotFound) {
			return geo.Leg{}, fmt.Errorf("directions: %w", geo.ErrNoRoute)
		}
		return geo.Leg{}, fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return geo.Leg{}, fmt.Errorf("directions: %w", geo.ErrNoRoute)
	}

	leg := routes[0].Legs[0]
	return geo.Leg{
		DistanceMeters:  float64(leg.Distance.Meters),
		DurationSeconds: leg.Duration.Seconds(),
	}, nil
}
