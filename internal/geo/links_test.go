package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPOIReply(t *testing.T) {
	tests := []struct {
		name     string
		category string
		place    string
		want     string
	}{
		{name: "with place", category: "hotel", place: "Goa", want: "Here are some hotel near Goa:\nhttps://www.google.com/maps/search/hotel+near+Goa"},
		{name: "trims both", category: "  coffee shop ", place: " New Delhi  ", want: "Here are some coffee shop near New Delhi:\nhttps://www.google.com/maps/search/coffee+shop+near+New+Delhi"},
		{name: "blank place", category: "museum", place: "   ", want: "Here are some museum:\nhttps://www.google.com/maps/search/museum"},
		{name: "no place", category: "charging station", place: "", want: "Here are some charging station:\nhttps://www.google.com/maps/search/charging+station"},
		{name: "reserved characters", category: "cafe & bar", place: "", want: "Here are some cafe & bar:\nhttps://www.google.com/maps/search/cafe+%26+bar"},
		{name: "invalid utf8", category: "hotel", place: "\xff", want: "Sorry, I couldn't generate a map link for your request."},
		{name: "blank category", category: " ", place: "Goa", want: "Sorry, I couldn't generate a map link for your request."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, POIReply(tt.category, tt.place))
		})
	}
}

func TestChargingStationsReply(t *testing.T) {
	assert.Equal(t,
		"To find EV charging stations near Pune, just click:\nhttps://www.google.com/maps/search/EV+charging+station+near+Pune",
		ChargingStationsReply("Pune"))
	assert.Equal(t,
		"To find EV charging stations near  San Jose , just click:\nhttps://www.google.com/maps/search/EV+charging+station+near+San+Jose",
		ChargingStationsReply(" San Jose "))
	assert.Equal(t,
		"Sorry, something went wrong generating the charging station link.",
		ChargingStationsReply("\xfe"))
}

func TestDirectionsReply(t *testing.T) {
	assert.Equal(t,
		"To see the best route and live traffic updates from mumbai to pune, click here:\nhttps://www.google.com/maps/dir/mumbai/pune",
		DirectionsReply("mumbai", "pune"))
	assert.Equal(t,
		"To see the best route and live traffic updates from new york to boston , click here:\nhttps://www.google.com/maps/dir/new+york/boston",
		DirectionsReply("new york", "boston "))
	assert.Equal(t, "Sorry, could not generate directions link.", DirectionsReply("a", "\xff"))
}
