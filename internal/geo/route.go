package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"atlas/internal/logger"
	"atlas/internal/metrics"
)

// Leg is the length of a single driving route.
type Leg struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Router computes a driving route between two points. It returns
// ErrNoRoute when the backend answers but has no route.
type Router interface {
	Drive(ctx context.Context, from, to Coordinates) (Leg, error)
}

// OSRMRouter queries an OSRM route service.
type OSRMRouter struct {
	baseURL string
	client  *http.Client
}

func NewOSRMRouter(baseURL string, client *http.Client) *OSRMRouter {
	return &OSRMRouter{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type osrmResponse struct {
	// Pointer so an absent field is distinguishable from an empty array.
	Routes *[]struct {
		Distance *float64 `json:"distance"`
		Duration *float64 `json:"duration"`
	} `json:"routes"`
}

func (r *OSRMRouter) Drive(ctx context.Context, from, to Coordinates) (Leg, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%.7f,%.7f;%.7f,%.7f?overview=false",
		r.baseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	var body osrmResponse
	if err := getJSON(ctx, r.client, "", u, &body); err != nil {
		return Leg{}, fmt.Errorf("osrm: %w", err)
	}
	if body.Routes == nil {
		return Leg{}, fmt.Errorf("osrm: routes missing: %w", ErrMalformed)
	}
	if len(*body.Routes) == 0 {
		return Leg{}, fmt.Errorf("osrm: %w", ErrNoRoute)
	}
	first := (*body.Routes)[0]
	if first.Distance == nil || first.Duration == nil {
		return Leg{}, fmt.Errorf("osrm: incomplete route: %w", ErrMalformed)
	}
	return Leg{DistanceMeters: *first.Distance, DurationSeconds: *first.Duration}, nil
}

// Trip is a resolved route between two named places.
type Trip struct {
	From          string
	To            string
	DistanceKm    float64
	DurationHours float64
	MapURL        string
}

// RouteService resolves both endpoints and asks the router for the fastest route.
type RouteService struct {
	geocoder Geocoder
	router   Router
	log      logger.Logger
}

func NewRouteService(geocoder Geocoder, router Router, log logger.Logger) *RouteService {
	return &RouteService{
		geocoder: geocoder,
		router:   router,
		log:      log.With(map[string]interface{}{"collaborator": "route"}),
	}
}

func (s *RouteService) Route(ctx context.Context, from, to string) (Trip, error) {
	start, err := s.geocoder.Geocode(ctx, from)
	if err != nil {
		return Trip{}, err
	}
	end, err := s.geocoder.Geocode(ctx, to)
	if err != nil {
		return Trip{}, err
	}

	leg, err := s.router.Drive(ctx, start, end)
	if err != nil {
		return Trip{}, fmt.Errorf("route %q -> %q: %w", from, to, err)
	}

	return Trip{
		From:          from,
		To:            to,
		DistanceKm:    leg.DistanceMeters / 1000,
		DurationHours: leg.DurationSeconds / 3600,
		MapURL:        DirectionsURL(from, to),
	}, nil
}

// Summary renders Route as a reply with a map link. Failures become apologies.
func (s *RouteService) Summary(ctx context.Context, from, to string) string {
	t, err := s.Route(ctx, from, to)
	if err != nil {
		reason := Reason(err)
		metrics.CollaboratorFailures.WithLabelValues("route", reason).Inc()
		s.log.WithError(err).Warn("route lookup failed", map[string]interface{}{
			"from":   from,
			"to":     to,
			"reason": reason,
		})
		if errors.Is(err, ErrNoRoute) {
			return "Sorry, I could not find a route between those locations."
		}
		return "Sorry, I couldn't find one of the locations or route. Please try a more specific place name."
	}
	return fmt.Sprintf("The fastest route from %s to %s is %.1f km and should take about %.1f hours.\n[View on Google Maps](%s)",
		t.From, t.To, t.DistanceKm, t.DurationHours, t.MapURL)
}
