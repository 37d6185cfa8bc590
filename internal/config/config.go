// README: Config loader; .env via godotenv, config.yaml and ATLAS_* env overrides via viper, with defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "ATLAS"

type HTTPConfig struct {
	Addr            string
	Mode            string
	RateLimitPerMin int
	APIKey          string
	RequestTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AIConfig struct {
	GeminiKey   string
	Model       string
	Temperature float32
}

type GeoConfig struct {
	// Provider selects the geocoding/routing backend: "osm" or "google".
	Provider     string
	GoogleKey    string
	NominatimURL string
	OpenMeteoURL string
	OSRMURL      string
	UserAgent    string
	HTTPTimeout  time.Duration
	CacheTTL     time.Duration
}

type Config struct {
	HTTP  HTTPConfig
	Log   LogConfig
	AI    AIConfig
	Geo   GeoConfig
	Redis struct {
		Addr string
	}
	DB struct {
		DSN string
	}
}

// Load reads configuration from .env, config.yaml and the environment, in
// increasing order of precedence.
func Load() (Config, error) {
	loadDotEnv(".env", "../.env", "../../.env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.Mode = v.GetString("http.mode")
	cfg.HTTP.RateLimitPerMin = v.GetInt("http.rate_limit_per_min")
	cfg.HTTP.APIKey = v.GetString("http.api_key")
	cfg.HTTP.RequestTimeout = v.GetDuration("http.request_timeout")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	cfg.AI.GeminiKey = firstNonEmpty(v.GetString("ai.gemini_key"), os.Getenv("GEMINI_API_KEY"))
	cfg.AI.Model = v.GetString("ai.model")
	cfg.AI.Temperature = float32(v.GetFloat64("ai.temperature"))

	cfg.Geo.Provider = strings.ToLower(strings.TrimSpace(v.GetString("geo.provider")))
	cfg.Geo.GoogleKey = firstNonEmpty(v.GetString("geo.google_key"), os.Getenv("GOOGLE_MAPS_API_KEY"))
	cfg.Geo.NominatimURL = strings.TrimRight(v.GetString("geo.nominatim_url"), "/")
	cfg.Geo.OpenMeteoURL = strings.TrimRight(v.GetString("geo.open_meteo_url"), "/")
	cfg.Geo.OSRMURL = strings.TrimRight(v.GetString("geo.osrm_url"), "/")
	cfg.Geo.UserAgent = v.GetString("geo.user_agent")
	cfg.Geo.HTTPTimeout = v.GetDuration("geo.http_timeout")
	cfg.Geo.CacheTTL = v.GetDuration("geo.cache_ttl")

	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.DB.DSN = v.GetString("db.dsn")

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.mode", "release")
	v.SetDefault("http.rate_limit_per_min", 120)
	v.SetDefault("http.api_key", "")
	v.SetDefault("http.request_timeout", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.temperature", 0.2)

	v.SetDefault("geo.provider", "osm")
	v.SetDefault("geo.google_key", "")
	v.SetDefault("geo.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geo.open_meteo_url", "https://api.open-meteo.com")
	v.SetDefault("geo.osrm_url", "https://router.project-osrm.org")
	v.SetDefault("geo.user_agent", "atlas-assistant/1.0")
	v.SetDefault("geo.http_timeout", "15s")
	v.SetDefault("geo.cache_ttl", "24h")

	v.SetDefault("redis.addr", "")
	v.SetDefault("db.dsn", "")
}

func validate(cfg Config) error {
	switch cfg.Geo.Provider {
	case "osm":
	case "google":
		if cfg.Geo.GoogleKey == "" {
			return errors.New("geo.provider=google requires geo.google_key")
		}
	default:
		return fmt.Errorf("unknown geo.provider %q", cfg.Geo.Provider)
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return fmt.Errorf("unknown log.format %q", cfg.Log.Format)
	}
	if cfg.HTTP.RateLimitPerMin < 0 {
		return errors.New("http.rate_limit_per_min must not be negative")
	}
	return nil
}

// loadDotEnv loads the first .env file found; existing env vars win.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
