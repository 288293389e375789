package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGeocoder_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forward", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "1600 Amphitheatre Pkwy", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"latitude":37.42,"longitude":-122.08,"confidence":0.8},
			{"latitude":37.43,"longitude":-122.09,"confidence":0.95}
		]}`))
	}))
	defer srv.Close()

	g := NewHTTPGeocoder(srv.Client(), srv.URL, "test-key")
	candidates, err := g.Geocode(context.Background(), "1600 Amphitheatre Pkwy")
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, 0.8, candidates[0].Confidence)
	assert.Equal(t, 37.43, candidates[1].Lat)
}

func TestHTTPGeocoder_Geocode_empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	g := NewHTTPGeocoder(srv.Client(), srv.URL, "test-key")
	candidates, err := g.Geocode(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestHTTPGeocoder_Geocode_upstream_error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewHTTPGeocoder(srv.Client(), srv.URL, "test-key")
	_, err := g.Geocode(context.Background(), "somewhere")
	assert.Error(t, err)
}
