package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type geocoderFunc func(ctx context.Context, place string) (Coordinates, error)

func (f geocoderFunc) Geocode(ctx context.Context, place string) (Coordinates, error) {
	return f(ctx, place)
}

func fixedGeocoder(places map[string]Coordinates) geocoderFunc {
	return func(_ context.Context, place string) (Coordinates, error) {
		c, ok := places[place]
		if !ok {
			return Coordinates{}, ErrNotFound
		}
		return c, nil
	}
}

func TestNominatimGeocoder(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    Coordinates
		wantErr error
	}{
		{name: "first match", status: 200, body: `[{"lat":"18.5204","lon":"73.8567","display_name":"Pune"}]`, want: Coordinates{Lon: 73.8567, Lat: 18.5204}},
		{name: "no match", status: 200, body: `[]`, wantErr: ErrNotFound},
		{name: "bad latitude", status: 200, body: `[{"lat":"north","lon":"73.8"}]`, wantErr: ErrMalformed},
		{name: "not json", status: 200, body: `<html>`, wantErr: ErrMalformed},
		{name: "upstream error", status: 503, body: `busy`, wantErr: ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "New Delhi", r.URL.Query().Get("q"))
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.Equal(t, "1", r.URL.Query().Get("limit"))
				assert.Equal(t, "atlas-test", r.Header.Get("User-Agent"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewNominatimGeocoder(srv.URL+"/", "atlas-test", NewHTTPClient(time.Second))
			got, err := g.Geocode(context.Background(), "  New Delhi ")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Lon, got.Lon, 1e-9)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
		})
	}
}

func TestNominatimGeocoderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewNominatimGeocoder(url, "", NewHTTPClient(time.Second))
	_, err := g.Geocode(context.Background(), "Pune")
	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "network", Reason(err))
}
