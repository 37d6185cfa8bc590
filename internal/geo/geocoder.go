package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Geocoder resolves a place name. It returns ErrNotFound when the lookup
// succeeds but yields nothing.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Coordinates, error)
}

// NominatimGeocoder resolves places through an OpenStreetMap Nominatim search endpoint.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimGeocoder(baseURL, userAgent string, client *http.Client) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    client,
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for place.
func (g *NominatimGeocoder) Geocode(ctx context.Context, place string) (Coordinates, error) {
	u := g.baseURL + "/search?q=" + url.QueryEscape(strings.TrimSpace(place)) + "&format=json&limit=1"

	var results []nominatimPlace
	if err := getJSON(ctx, g.client, g.userAgent, u, &results); err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("geocode %q: %w", place, ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: lat: %w", place, ErrMalformed)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode %q: lon: %w", place, ErrMalformed)
	}
	return Coordinates{Lon: lon, Lat: lat}, nil
}
