package service

import (
	"context"

	"atlas/internal/geo"
	"atlas/internal/keyword"
)

// QueryService answers the simple keyword path: one intent per query, no model.
type QueryService struct {
	weather WeatherLookup
}

func NewQueryService(weather WeatherLookup) *QueryService {
	return &QueryService{weather: weather}
}

// Answer parses text with the keyword rules and delegates. It always returns a reply.
func (s *QueryService) Answer(ctx context.Context, text string) string {
	res := keyword.Parse(text)
	if res.NeedsClarification() {
		return res.Message
	}

	switch res.Route {
	case keyword.RouteWeather:
		return s.weather.Summary(ctx, res.Place)
	case keyword.RouteCharging:
		return geo.ChargingStationsReply(res.Place)
	case keyword.RouteDirections:
		return geo.DirectionsReply(res.Origin, res.Destination)
	default:
		return keyword.MsgNotUnderstood
	}
}
