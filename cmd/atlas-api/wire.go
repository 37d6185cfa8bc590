package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"atlas/internal/ai"
	"atlas/internal/config"
	"atlas/internal/geo"
	httptransport "atlas/internal/http"
	"atlas/internal/infra"
	"atlas/internal/intent"
	"atlas/internal/logger"
	"atlas/internal/maps"
	"atlas/internal/modules/history"
	"atlas/internal/service"
)

// app owns the process-wide clients; they are built once and shared by all requests.
type app struct {
	deps   httptransport.RouterDeps
	gemini *ai.GeminiProvider
	db     *pgxpool.Pool
	redis  *redis.Client
}

func (a *app) Close() {
	if a.gemini != nil {
		a.gemini.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

func buildApp(ctx context.Context, cfg config.Config, log logger.Logger) (*app, error) {
	a := &app{}

	// 1. Language model
	var extractGen, answerGen ai.TextGenerator = ai.Unconfigured(), ai.Unconfigured()
	if cfg.AI.GeminiKey != "" {
		provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, ai.ModelOptions{
			Name:        cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
		})
		if err != nil {
			return nil, err
		}
		a.gemini = provider
		extractGen, answerGen = provider.JSON(), provider
	} else {
		log.Warn("no gemini key configured; smart queries will answer with an error message", nil)
	}

	// 2. Geocoding and routing backends
	httpClient := geo.NewHTTPClient(cfg.Geo.HTTPTimeout)
	var (
		geocoder geo.Geocoder
		router   geo.Router
		places   *maps.PlacesService
	)
	if cfg.Geo.GoogleKey != "" {
		client, err := maps.NewClient(cfg.Geo.GoogleKey, "")
		if err != nil {
			a.Close()
			return nil, err
		}
		places = maps.NewPlacesService(client)
		if cfg.Geo.Provider == "google" {
			geocoder = maps.NewGoogleGeocoder(client)
			router = maps.NewDirectionsRouter(client)
		}
	}
	if geocoder == nil {
		geocoder = geo.NewNominatimGeocoder(cfg.Geo.NominatimURL, cfg.Geo.UserAgent, httpClient)
		router = geo.NewOSRMRouter(cfg.Geo.OSRMURL, httpClient)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("geocode cache: %w", err)
		}
		a.redis = rdb
		geocoder = geo.NewCachedGeocoder(geocoder, rdb, cfg.Geo.CacheTTL, log)
	}

	weather := geo.NewWeatherService(geocoder, cfg.Geo.OpenMeteoURL, httpClient, log)
	route := geo.NewRouteService(geocoder, router, log)

	// 3. Query history
	var store *history.Store
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("history db: %w", err)
		}
		a.db = pool
		store = history.NewStore(pool)
	}

	a.deps = httptransport.RouterDeps{
		Keyword:         service.NewQueryService(weather),
		Smart:           service.NewDispatcher(intent.NewExtractor(extractGen), answerGen, weather, route, log),
		Weather:         weather,
		Route:           route,
		Generator:       answerGen,
		Places:          places,
		History:         history.NewService(store, log),
		Log:             log,
		APIKey:          cfg.HTTP.APIKey,
		RateLimitPerMin: cfg.HTTP.RateLimitPerMin,
		RequestTimeout:  cfg.HTTP.RequestTimeout,
	}

	log.Info("wiring complete", map[string]interface{}{
		"geo_provider":  cfg.Geo.Provider,
		"geocode_cache": a.redis != nil,
		"history":       a.db != nil,
		"places":        places != nil,
		"model":         a.gemini != nil,
	})
	return a, nil
}
