package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TextPath is the generation endpoint path
const TextPath = "/generate/text"

// TextRequest is the body of POST /generate/text
type TextRequest struct {
	Prompt string `json:"prompt"`
}

// TextResponse is the success body of POST /generate/text
type TextResponse struct {
	Text string `json:"text"`
}

// Client calls a remote generation endpoint
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the endpoint rooted at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateText posts the prompt and returns the generated text. Every
// non-success status and transport error is reported as ErrGenerationFailed.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(TextRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: marshal: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+TextPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var out TextResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrGenerationFailed, err)
	}
	return out.Text, nil
}
