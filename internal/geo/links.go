package geo

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	mapsSearchURL = "https://www.google.com/maps/search/"
	mapsDirURL    = "https://www.google.com/maps/dir/"
)

// encode form-encodes s (spaces become '+'). Invalid UTF-8 cannot be
// encoded into a usable link.
func encode(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}
	return url.QueryEscape(s), true
}

// DirectionsURL links Google Maps directions between two place names as given.
func DirectionsURL(from, to string) string {
	return mapsDirURL + url.QueryEscape(from) + "/" + url.QueryEscape(to)
}

// POIReply links a Google Maps search for category, optionally near place.
func POIReply(category, place string) string {
	query := strings.TrimSpace(category)
	if p := strings.TrimSpace(place); p != "" {
		query += " near " + p
	}
	enc, ok := encode(query)
	if query == "" || !ok {
		return "Sorry, I couldn't generate a map link for your request."
	}
	return "Here are some " + query + ":\n" + mapsSearchURL + enc
}

// ChargingStationsReply links a search for EV charging stations near place.
func ChargingStationsReply(place string) string {
	enc, ok := encode(strings.TrimSpace(place))
	if !ok {
		return "Sorry, something went wrong generating the charging station link."
	}
	return "To find EV charging stations near " + place + ", just click:\n" +
		mapsSearchURL + "EV+charging+station+near+" + enc
}

// DirectionsReply links live directions between from and to.
func DirectionsReply(from, to string) string {
	encFrom, okFrom := encode(strings.TrimSpace(from))
	encTo, okTo := encode(strings.TrimSpace(to))
	if !okFrom || !okTo {
		return "Sorry, could not generate directions link."
	}
	return "To see the best route and live traffic updates from " + from + " to " + to + ", click here:\n" +
		mapsDirURL + encFrom + "/" + encTo
}
