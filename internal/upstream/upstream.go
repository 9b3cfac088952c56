// Package upstream contains thin clients for the third-party APIs the
// Wanderly backend proxies: Gemini chat, OpenWeather, Google Places, and
// Unsplash. Each client makes exactly one HTTP round-trip per call and
// reshapes the response — no retries, no caching.
//
// Every failure mode (missing API key, transport error, non-2xx status,
// malformed body) wraps domain.ErrUpstream. Handlers turn that into a
// generic 502; the underlying detail is only ever logged server-side.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wanderly-app/backend/internal/domain"
)

// defaultTimeout bounds a single upstream round-trip. The surrounding
// request context may impose a tighter deadline.
const defaultTimeout = 10 * time.Second

// newHTTPClient returns the http.Client shared by all upstream clients.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// decodeJSON drains and decodes a response body into out, mapping any
// non-2xx status or decode failure to domain.ErrUpstream.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a little of the body for the server-side log, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", domain.ErrUpstream, err)
	}
	return nil
}

// get performs a GET against url and decodes the JSON response into out.
func get(ctx context.Context, httpc *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", domain.ErrUpstream, err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return decodeJSON(resp, out)
}
