package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderly-app/backend/internal/domain"
)

func TestWeatherClient_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Kyoto", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))

		_, _ = w.Write([]byte(`{
			"name": "Kyoto",
			"weather": [{"main": "Clouds"}],
			"main": {"temp": 18.4, "humidity": 71},
			"wind": {"speed": 5.0}
		}`))
	}))
	defer srv.Close()

	c := NewWeatherClientWithBaseURL("test-key", srv.URL)
	snap, err := c.Current(context.Background(), "Kyoto")

	require.NoError(t, err)
	assert.Equal(t, "Kyoto", snap.City)
	assert.InDelta(t, 18.4, snap.TempC, 0.001)
	assert.Equal(t, "Clouds", snap.Condition)
	assert.Equal(t, 71, snap.Humidity)
	assert.InDelta(t, 18.0, snap.WindKph, 0.001, "wind is converted from m/s to km/h")
}

func TestWeatherClient_Current_MissingKey(t *testing.T) {
	c := NewWeatherClient("")

	_, err := c.Current(context.Background(), "Kyoto")

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestWeatherClient_Current_UnknownCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewWeatherClientWithBaseURL("test-key", srv.URL)
	_, err := c.Current(context.Background(), "Nowhereville")

	assert.ErrorIs(t, err, domain.ErrUpstream)
}
