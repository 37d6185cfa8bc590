// README: Typed lookup failures shared by the geocoder, weather and route collaborators.
package geo

import "errors"

var (
	ErrNetwork   = errors.New("geo: upstream unreachable")
	ErrNotFound  = errors.New("geo: place not found")
	ErrMalformed = errors.New("geo: malformed response")
	ErrNoData    = errors.New("geo: no current weather data")
	ErrNoRoute   = errors.New("geo: no route found")
)

// Reason returns a short label for err, used in logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	case errors.Is(err, ErrNoData):
		return "no_data"
	case errors.Is(err, ErrNoRoute):
		return "no_route"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}
