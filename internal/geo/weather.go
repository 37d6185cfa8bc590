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

// Report is the current weather at a geocoded place.
type Report struct {
	Place       string
	Coordinates Coordinates
	Temperature float64 // °C
	WindSpeed   float64 // km/h
	Code        int
	Condition   string
}

// WeatherService answers current-weather questions from Open-Meteo.
type WeatherService struct {
	geocoder Geocoder
	baseURL  string
	client   *http.Client
	log      logger.Logger
}

func NewWeatherService(geocoder Geocoder, baseURL string, client *http.Client, log logger.Logger) *WeatherService {
	return &WeatherService{
		geocoder: geocoder,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		log:      log.With(map[string]interface{}{"collaborator": "weather"}),
	}
}

type openMeteoResponse struct {
	CurrentWeather *struct {
		Temperature *float64 `json:"temperature"`
		WindSpeed   *float64 `json:"windspeed"`
		WeatherCode *float64 `json:"weathercode"`
	} `json:"current_weather"`
}

// Current geocodes place and fetches its current conditions.
func (s *WeatherService) Current(ctx context.Context, place string) (Report, error) {
	coords, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		return Report{}, err
	}

	u := fmt.Sprintf("%s/v1/forecast?latitude=%.5f&longitude=%.5f&current_weather=true",
		s.baseURL, coords.Lat, coords.Lon)

	var body openMeteoResponse
	if err := getJSON(ctx, s.client, "", u, &body); err != nil {
		return Report{}, fmt.Errorf("weather %q: %w", place, err)
	}
	if body.CurrentWeather == nil {
		return Report{}, fmt.Errorf("weather %q: %w", place, ErrNoData)
	}

	cw := body.CurrentWeather
	if cw.Temperature == nil || cw.WindSpeed == nil || cw.WeatherCode == nil {
		return Report{}, fmt.Errorf("weather %q: incomplete current_weather: %w", place, ErrMalformed)
	}

	code := int(*cw.WeatherCode)
	return Report{
		Place:       place,
		Coordinates: coords,
		Temperature: *cw.Temperature,
		WindSpeed:   *cw.WindSpeed,
		Code:        code,
		Condition:   DescribeWeatherCode(code),
	}, nil
}

// Summary renders Current as a one-line reply. Failures become apologies.
func (s *WeatherService) Summary(ctx context.Context, place string) string {
	r, err := s.Current(ctx, place)
	if err != nil {
		reason := Reason(err)
		metrics.CollaboratorFailures.WithLabelValues("weather", reason).Inc()
		s.log.WithError(err).Warn("weather lookup failed", map[string]interface{}{
			"place":  place,
			"reason": reason,
		})
		if errors.Is(err, ErrNoData) {
			return "Sorry, I couldn't get the current weather data for " + place + "."
		}
		return "Sorry, I couldn't get the weather for \"" + place + "\". Please try again."
	}
	return fmt.Sprintf("The current weather in %s is %s with a temperature of %.1f°C and wind speed of %.1f km/h.",
		place, r.Condition, r.Temperature, r.WindSpeed)
}

// DescribeWeatherCode maps a WMO weather code to a short phrase.
func DescribeWeatherCode(code int) string {
	switch code {
	case 0:
		return "clear skies"
	case 1, 2, 3:
		return "partly cloudy"
	case 45, 48:
		return "foggy"
	case 51, 53, 55:
		return "light drizzle"
	case 61, 63, 65:
		return "rainy"
	case 71, 73, 75:
		return "snowy"
	case 80, 81, 82:
		return "showers"
	case 95, 96, 99:
		return "thunderstorms"
	default:
		return "good weather"
	}
}
