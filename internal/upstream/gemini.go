package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/wanderly-app/backend/internal/domain"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiModel is the model the chat assistant proxies to.
const geminiModel = "gemini-1.5-flash"

// ChatTurn is one prior exchange in an assistant conversation.
// Role is "user" or "model", matching the Gemini wire format.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// GeminiClient proxies chat messages to the Gemini generateContent endpoint.
type GeminiClient struct {
	key     string
	baseURL string
	httpc   *http.Client
}

// NewGeminiClient constructs a GeminiClient. An empty key is allowed — calls
// will fail with domain.ErrUpstream, which handlers surface as 502.
func NewGeminiClient(key string) *GeminiClient {
	return &GeminiClient{key: key, baseURL: geminiBaseURL, httpc: newHTTPClient()}
}

// NewGeminiClientWithBaseURL constructs a GeminiClient against a custom base
// URL. Used by tests to point at a local httptest server.
func NewGeminiClientWithBaseURL(key, baseURL string) *GeminiClient {
	return &GeminiClient{key: key, baseURL: baseURL, httpc: newHTTPClient()}
}

// Gemini wire types — only the fields we read or write.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Chat sends the message (preceded by any history) to Gemini and returns the
// model's reply text.
func (c *GeminiClient) Chat(ctx context.Context, message string, history []ChatTurn) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("%w: gemini API key not configured", domain.ErrUpstream)
	}

	reqBody := geminiRequest{}
	for _, turn := range history {
		reqBody.Contents = append(reqBody.Contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", domain.ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, geminiModel, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	var out geminiResponse
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty gemini response", domain.ErrUpstream)
	}

	var reply strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		reply.WriteString(part.Text)
	}
	return reply.String(), nil
}
