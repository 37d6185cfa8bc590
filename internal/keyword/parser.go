// README: Rule-based single-intent parser for the simple query path; literal substring matching, no I/O.
package keyword

import "strings"

// Route is the single category a keyword query resolves to.
type Route string

const (
	RouteWeather    Route = "weather"
	RouteCharging   Route = "charging"
	RouteDirections Route = "directions"
	RouteUnknown    Route = "unknown"
)

const (
	MsgEmptyQuery     = "Please provide a valid query."
	MsgWeatherPlace   = "Please specify the place for which you want the weather."
	MsgChargingPlace  = "Please specify the location near which you want to find EV charging stations."
	MsgRouteEndpoints = "Please specify both the starting location and the destination for route directions."
	MsgNotUnderstood  = "Sorry, I didn't understand your request. You can ask about weather, best routes, or EV charging stations."
)

// weatherFillers are removed, in order, from the lowercased query. Removal is
// by substring, so "in" also disappears from inside words.
var weatherFillers = []string{"show me", "tell me", "what is", "what's", "weather", "in", "at", "for", "?"}

// Result is either a routable single intent or a clarification message.
// Slots are lowercased because matching runs on the lowercased text.
type Result struct {
	Route       Route
	Place       string
	Origin      string
	Destination string
	// Message is set when the query cannot be routed; it is the full reply.
	Message string
}

// NeedsClarification reports whether Message should be returned as is.
func (r Result) NeedsClarification() bool {
	return r.Message != ""
}

// Parse picks the first matching category: weather, then charging, then
// directions. It never performs I/O.
func Parse(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Route: RouteUnknown, Message: MsgEmptyQuery}
	}
	q := strings.ToLower(text)

	switch {
	case strings.Contains(q, "weather"):
		place := ExtractWeatherPlace(q)
		if place == "" {
			return Result{Route: RouteWeather, Message: MsgWeatherPlace}
		}
		return Result{Route: RouteWeather, Place: place}

	case strings.Contains(q, "charge") || strings.Contains(q, "ev station") || strings.Contains(q, "charging station"):
		place := ExtractPlaceNear(q)
		if place == "" {
			return Result{Route: RouteCharging, Message: MsgChargingPlace}
		}
		return Result{Route: RouteCharging, Place: place}

	case strings.Contains(q, "route") || strings.Contains(q, "directions") || strings.Contains(q, "way") ||
		(strings.Contains(q, "from") && strings.Contains(q, "to")):
		from, to, ok := ExtractFromTo(q)
		if !ok {
			return Result{Route: RouteDirections, Message: MsgRouteEndpoints}
		}
		return Result{Route: RouteDirections, Origin: from, Destination: to}
	}

	return Result{Route: RouteUnknown, Message: MsgNotUnderstood}
}

// ExtractWeatherPlace strips the filler phrases and returns what is left.
func ExtractWeatherPlace(text string) string {
	cleaned := strings.ToLower(text)
	for _, f := range weatherFillers {
		cleaned = strings.ReplaceAll(cleaned, f, "")
	}
	return strings.TrimSpace(cleaned)
}

// ExtractPlaceNear returns the text after the first "near", or the last
// space-separated token when there is no usable text after it.
func ExtractPlaceNear(text string) string {
	if idx := strings.Index(text, "near"); idx != -1 {
		if place := strings.TrimSpace(text[idx+len("near"):]); place != "" {
			return place
		}
	}
	return lastToken(text)
}

// ExtractFromTo uses the first "from" and the first "to" in text. ok is false
// when either is missing, "to" does not start after "from", or an endpoint
// is empty.
func ExtractFromTo(text string) (origin, destination string, ok bool) {
	fromIdx := strings.Index(text, "from")
	toIdx := strings.Index(text, "to")
	if fromIdx == -1 || toIdx == -1 || toIdx <= fromIdx {
		return "", "", false
	}
	origin = strings.TrimSpace(text[fromIdx+len("from") : toIdx])
	destination = strings.TrimSpace(text[toIdx+len("to"):])
	if origin == "" || destination == "" {
		return "", "", false
	}
	return origin, destination, true
}

// lastToken splits on single spaces and drops trailing empty tokens.
func lastToken(text string) string {
	parts := strings.Split(text, " ")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return strings.TrimSpace(parts[i])
		}
	}
	return ""
}
