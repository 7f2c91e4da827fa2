package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/edustack-io/edustack/internal/config"
)

const (
	requestTimeout     = 60 * time.Second
	defaultTemperature = 0.7
)

var (
	ErrMissingModel    = errors.New("llm: model is required")
	ErrMissingMessages = errors.New("llm: at least one message is required")
)

// Client talks to an OpenAI-compatible chat-completion endpoint. It holds no
// per-call state, so a single instance can be shared across goroutines.
type Client struct {
	apiKey      string
	baseURL     string
	referer     string
	appTitle    string
	temperature float64
	httpClient  *http.Client
}

func NewClient(apiKey, baseURL, referer, appTitle string) *Client {
	return &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		referer:     referer,
		appTitle:    appTitle,
		temperature: defaultTemperature,
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

// CompleteChat issues one POST to {base_url}/chat/completions and returns the
// decoded provider response. Transport failures and non-2xx statuses are
// wrapped; there is no retry.
func (c *Client) CompleteChat(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	log := config.WithContext(ctx)

	if req.Model == "" {
		return nil, ErrMissingModel
	}
	if len(req.Messages) == 0 {
		return nil, ErrMissingMessages
	}
	if req.Temperature == nil {
		t := c.temperature
		req.Temperature = &t
	}

	payload, err := json.Marshal(req.payload())
	if err != nil {
		return nil, fmt.Errorf("llm: failed to encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to build completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", c.referer)
	httpReq.Header.Set("X-Title", c.appTitle)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.WithError(err).Error("Completion request failed")
		return nil, fmt.Errorf("llm: completion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Errorf("Completion request returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("llm: completion request failed with status %d: %s", resp.StatusCode, body)
	}

	var result CompletionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("llm: failed to decode completion response: %w", err)
	}
	return &result, nil
}
