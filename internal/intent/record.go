// README: Intent records extracted from a user query, plus the closed set of intent kinds.
package intent

import "strings"

// Kind is a normalized intent category.
type Kind string

const (
	KindWeather   Kind = "weather"
	KindRoute     Kind = "route"
	KindCharging  Kind = "charging"
	KindHotel     Kind = "hotel"
	KindPOISearch Kind = "poi_search"
	KindMediaPlay Kind = "media_play"
	KindGeneral   Kind = "general"
)

// Kinds lists the accepted kinds in prompt order.
var Kinds = []Kind{KindWeather, KindRoute, KindCharging, KindHotel, KindPOISearch, KindMediaPlay, KindGeneral}

// ParseKind trims and lower-cases s. ok is false for blank or unknown values.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// Record is one intent and its slot values. Every field may be null on the
// wire; a record lives for a single request and is never mutated after decode.
type Record struct {
	RawKind          *string `json:"intent"`
	Place            *string `json:"place"`
	OriginPlace      *string `json:"fromPlace"`
	DestinationPlace *string `json:"toPlace"`
	POICategory      *string `json:"poiType"`
	FreeformAnswer   *string `json:"response"`
}

// Kind returns the normalized kind; ok is false when it is missing or unknown.
func (r Record) Kind() (Kind, bool) {
	if r.RawKind == nil {
		return "", false
	}
	return ParseKind(*r.RawKind)
}

// Value returns the slot text and whether it is present (non-null, non-blank).
func Value(p *string) (string, bool) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return "", false
	}
	return *p, true
}
