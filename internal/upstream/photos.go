package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wanderly-app/backend/internal/domain"
)

const unsplashBaseURL = "https://api.unsplash.com"

// Photo is one stock photo result, reshaped from the Unsplash search payload.
type Photo struct {
	URL    string `json:"url"`
	Thumb  string `json:"thumb"`
	Author string `json:"author"`
	Link   string `json:"link"`
}

// PhotosClient searches Unsplash for destination photography.
type PhotosClient struct {
	key     string
	baseURL string
	httpc   *http.Client
}

// NewPhotosClient constructs a PhotosClient.
func NewPhotosClient(key string) *PhotosClient {
	return &PhotosClient{key: key, baseURL: unsplashBaseURL, httpc: newHTTPClient()}
}

// NewPhotosClientWithBaseURL constructs a PhotosClient against a custom base
// URL. Used by tests to point at a local httptest server.
func NewPhotosClientWithBaseURL(key, baseURL string) *PhotosClient {
	return &PhotosClient{key: key, baseURL: baseURL, httpc: newHTTPClient()}
}

// unsplashResponse mirrors the subset of the Unsplash search payload this
// proxy reshapes.
type unsplashResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"results"`
}

// Search returns up to perPage photos matching the query.
func (c *PhotosClient) Search(ctx context.Context, query string, perPage int) ([]Photo, error) {
	if c.key == "" {
		return nil, fmt.Errorf("%w: unsplash access key not configured", domain.ErrUpstream)
	}
	if perPage < 1 {
		perPage = 10
	}

	u := fmt.Sprintf("%s/search/photos?query=%s&per_page=%d&client_id=%s",
		c.baseURL, url.QueryEscape(query), perPage, c.key)

	var out unsplashResponse
	if err := get(ctx, c.httpc, u, &out); err != nil {
		return nil, err
	}

	photos := make([]Photo, len(out.Results))
	for i, r := range out.Results {
		photos[i] = Photo{
			URL:    r.URLs.Regular,
			Thumb:  r.URLs.Thumb,
			Author: r.User.Name,
			Link:   r.Links.HTML,
		}
	}
	return photos, nil
}
