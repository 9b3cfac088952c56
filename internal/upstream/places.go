package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wanderly-app/backend/internal/domain"
)

const placesBaseURL = "https://maps.googleapis.com/maps/api/place"

// PlacesClient searches Google Places for points of interest.
type PlacesClient struct {
	key     string
	baseURL string
	httpc   *http.Client
}

// NewPlacesClient constructs a PlacesClient.
func NewPlacesClient(key string) *PlacesClient {
	return &PlacesClient{key: key, baseURL: placesBaseURL, httpc: newHTTPClient()}
}

// NewPlacesClientWithBaseURL constructs a PlacesClient against a custom base
// URL. Used by tests to point at a local httptest server.
func NewPlacesClientWithBaseURL(key, baseURL string) *PlacesClient {
	return &PlacesClient{key: key, baseURL: baseURL, httpc: newHTTPClient()}
}

// placesResponse mirrors the subset of the Places text-search payload this
// proxy reshapes.
type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Name             string  `json:"name"`
		FormattedAddress string  `json:"formatted_address"`
		Rating           float64 `json:"rating"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Search runs a text search and returns the results reshaped to the
// point-of-interest format stored on trips.
func (c *PlacesClient) Search(ctx context.Context, query string) ([]domain.PointOfInterest, error) {
	if c.key == "" {
		return nil, fmt.Errorf("%w: places API key not configured", domain.ErrUpstream)
	}

	u := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		c.baseURL, url.QueryEscape(query), c.key)

	var out placesResponse
	if err := get(ctx, c.httpc, u, &out); err != nil {
		return nil, err
	}

	// Places signals request-level failures inside a 200 body.
	if out.Status != "OK" && out.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: places status %s", domain.ErrUpstream, out.Status)
	}

	pois := make([]domain.PointOfInterest, len(out.Results))
	for i, r := range out.Results {
		pois[i] = domain.PointOfInterest{
			Name:    r.Name,
			Address: r.FormattedAddress,
			Rating:  r.Rating,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		}
	}
	return pois, nil
}
