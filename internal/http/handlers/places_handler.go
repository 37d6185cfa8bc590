package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atlas/internal/logger"
	"atlas/internal/maps"
)

type PlacesHandler struct {
	places *maps.PlacesService
	log    logger.Logger
}

// NewPlacesHandler accepts a nil service; the endpoint then answers 503.
func NewPlacesHandler(places *maps.PlacesService, log logger.Logger) *PlacesHandler {
	return &PlacesHandler{places: places, log: log}
}

// Search handles GET /api/places?category=&near=&limit=.
func (h *PlacesHandler) Search(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "places search requires a Google Maps API key")
		return
	}
	vals, ok := requiredQuery(c, "category")
	if !ok {
		return
	}
	limit := maps.DefaultPlacesLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 20 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	results, err := h.places.SearchNearby(c.Request.Context(), vals[0], c.Query("near"), limit)
	if err != nil {
		h.log.WithError(err).Warn("places search failed", nil)
		writeError(c, http.StatusBadGateway, "places search failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"places": results})
}
