package handlers

import (
	"github.com/gin-gonic/gin"

	"atlas/internal/geo"
	"atlas/internal/service"
)

// LookupHandler exposes the single-purpose collaborators directly.
type LookupHandler struct {
	weather service.WeatherLookup
	route   service.RouteLookup
}

func NewLookupHandler(weather service.WeatherLookup, route service.RouteLookup) *LookupHandler {
	return &LookupHandler{weather: weather, route: route}
}

// Weather handles GET /api/weather?place=.
func (h *LookupHandler) Weather(c *gin.Context) {
	vals, ok := requiredQuery(c, "place")
	if !ok {
		return
	}
	writeText(c, h.weather.Summary(c.Request.Context(), vals[0]))
}

// Route handles GET /api/route?from=&to=.
func (h *LookupHandler) Route(c *gin.Context) {
	vals, ok := requiredQuery(c, "from", "to")
	if !ok {
		return
	}
	writeText(c, h.route.Summary(c.Request.Context(), vals[0], vals[1]))
}

// DirectionsLink handles GET /api/googlemaps/route?from=&to=.
func (h *LookupHandler) DirectionsLink(c *gin.Context) {
	vals, ok := requiredQuery(c, "from", "to")
	if !ok {
		return
	}
	writeText(c, geo.DirectionsReply(vals[0], vals[1]))
}

// EVStations handles GET /api/evstations?near=.
func (h *LookupHandler) EVStations(c *gin.Context) {
	vals, ok := requiredQuery(c, "near")
	if !ok {
		return
	}
	writeText(c, geo.ChargingStationsReply(vals[0]))
}
