package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BearBump/RouteBox/internal/geo"
	"github.com/BearBump/RouteBox/internal/integrations/geocoder"
	"github.com/stretchr/testify/require"
)

func TestClient_Geocode_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "Av. Paulista, 1000", r.URL.Query().Get("q"))
		require.Equal(t, "br", r.URL.Query().Get("countrycodes"))
		require.Equal(t, "routebox-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"place_id":1,"lat":"-23.5649","lon":"-46.6521","display_name":"Avenida Paulista"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "routebox-test").WithCountry("br")
	p, err := c.Geocode(context.Background(), "Av. Paulista, 1000")
	require.NoError(t, err)
	require.Equal(t, "POINT(-23.564900 -46.652100)", p)

	pt, err := geo.ParsePoint(p)
	require.NoError(t, err)
	require.InDelta(t, -23.5649, pt.Lat, 1e-6)
}

func TestClient_Geocode_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Geocode(context.Background(), "nowhere")
	require.ErrorIs(t, err, geocoder.ErrNoResults)
}

func TestClient_Geocode_429(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Geocode(context.Background(), "x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestClient_Geocode_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"north","lon":"1"}]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Geocode(context.Background(), "x")
	require.Error(t, err)
}
