// README: HTTP router registration; public health/metrics plus the rate-limited, key-guarded /api group.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"atlas/internal/ai"
	"atlas/internal/http/handlers"
	"atlas/internal/http/middleware"
	"atlas/internal/logger"
	"atlas/internal/maps"
	"atlas/internal/modules/history"
	"atlas/internal/service"
)

type RouterDeps struct {
	Keyword   *service.QueryService
	Smart     *service.Dispatcher
	Weather   service.WeatherLookup
	Route     service.RouteLookup
	Generator ai.TextGenerator
	// Places may be nil when no Google key is configured.
	Places  *maps.PlacesService
	History *history.Service
	Log     logger.Logger

	APIKey          string
	RateLimitPerMin int
	RequestTimeout  time.Duration
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(d.Log),
		middleware.Recovery(d.Log),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api",
		middleware.RateLimit(d.RateLimitPerMin),
		middleware.Auth(d.APIKey),
		middleware.Timeout(d.RequestTimeout),
	)

	queryHandler := handlers.NewQueryHandler(d.Keyword, d.Smart, d.History)
	api.GET("/query", queryHandler.Keyword)
	api.POST("/query", queryHandler.Keyword)
	api.GET("/gemini/smart", queryHandler.Smart)
	api.POST("/gemini/smart", queryHandler.Smart)
	api.POST("/voice-command", queryHandler.Voice)

	lookupHandler := handlers.NewLookupHandler(d.Weather, d.Route)
	api.GET("/weather", lookupHandler.Weather)
	api.GET("/route", lookupHandler.Route)
	api.GET("/googlemaps/route", lookupHandler.DirectionsLink)
	api.GET("/evstations", lookupHandler.EVStations)

	aiHandler := handlers.NewAIHandler(d.Generator, d.Log)
	api.POST("/gemini/ask", aiHandler.Ask)

	placesHandler := handlers.NewPlacesHandler(d.Places, d.Log)
	api.GET("/places", placesHandler.Search)

	historyHandler := handlers.NewHistoryHandler(d.History, d.Log)
	api.GET("/history", historyHandler.Recent)

	return r
}
