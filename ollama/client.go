// Package ollama is a client for an Ollama-compatible generation service.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dkkundu/DeepDocAI/fault"
)

// Client issues one-shot, non-streamed requests to the generation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the service at baseURL. The timeout bounds a
// whole generation call; generation can be slow, so callers typically pass
// something on the order of two minutes. Shorter per-call deadlines are set
// through the request context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL reports the configured service endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate requests one complete completion for the prompt and returns the
// trimmed response text. An empty completion is a failure, not a valid
// summary.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fault.Wrap(fault.ServiceError, err, "failed to marshal generate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fault.Wrap(fault.ServiceError, err, "failed to build generate request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fault.Wrap(fault.ServiceUnreachable, err, "cannot reach generation service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fault.New(fault.ServiceError, "generation service returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fault.Wrap(fault.ServiceError, err, "failed to decode generate response")
	}

	summary := strings.TrimSpace(out.Response)
	if summary == "" {
		return "", fault.New(fault.EmptyResponse, "empty response from generation service")
	}
	return summary, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Tags lists the model names installed on the generation service.
func (c *Client) Tags(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fault.Wrap(fault.ServiceError, err, "failed to build tags request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fault.Wrap(fault.ServiceUnreachable, err, "cannot reach generation service")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fault.New(fault.ServiceError, "generation service returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fault.Wrap(fault.ServiceError, err, "failed to decode tags response")
	}

	names := make([]string, 0, len(out.Models))
	for _, model := range out.Models {
		names = append(names, model.Name)
	}
	return names, nil
}
