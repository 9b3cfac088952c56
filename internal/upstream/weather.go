package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wanderly-app/backend/internal/domain"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherClient fetches current conditions from OpenWeather.
type WeatherClient struct {
	key     string
	baseURL string
	httpc   *http.Client
}

// NewWeatherClient constructs a WeatherClient.
func NewWeatherClient(key string) *WeatherClient {
	return &WeatherClient{key: key, baseURL: openWeatherBaseURL, httpc: newHTTPClient()}
}

// NewWeatherClientWithBaseURL constructs a WeatherClient against a custom
// base URL. Used by tests to point at a local httptest server.
func NewWeatherClientWithBaseURL(key, baseURL string) *WeatherClient {
	return &WeatherClient{key: key, baseURL: baseURL, httpc: newHTTPClient()}
}

// openWeatherResponse mirrors the subset of the OpenWeather current-weather
// payload this proxy reshapes.
type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // metres per second with units=metric
	} `json:"wind"`
}

// Current returns the current weather for a city, reshaped to the snapshot
// format stored on trips.
func (c *WeatherClient) Current(ctx context.Context, city string) (domain.WeatherSnapshot, error) {
	if c.key == "" {
		return domain.WeatherSnapshot{}, fmt.Errorf("%w: openweather API key not configured", domain.ErrUpstream)
	}

	u := fmt.Sprintf("%s/weather?q=%s&units=metric&appid=%s",
		c.baseURL, url.QueryEscape(city), c.key)

	var out openWeatherResponse
	if err := get(ctx, c.httpc, u, &out); err != nil {
		return domain.WeatherSnapshot{}, err
	}

	snap := domain.WeatherSnapshot{
		City:     out.Name,
		TempC:    out.Main.Temp,
		Humidity: out.Main.Humidity,
		WindKph:  out.Wind.Speed * 3.6, // m/s → km/h
	}
	if len(out.Weather) > 0 {
		snap.Condition = out.Weather[0].Main
	}
	return snap, nil
}
