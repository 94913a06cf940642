package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/themobileprof/medichat-be/pkg/llm"
)

// HTTPClient implements the llm.Client interface against an
// OpenRouter-compatible /chat/completions endpoint
type HTTPClient struct {
	apiKey     string
	baseURL    string
	model      string
	referer    string
	title      string
	httpClient *http.Client
	timeout    time.Duration
}

// Ensure HTTPClient implements llm.Client
var _ llm.Client = (*HTTPClient)(nil)

// Config holds configuration for the OpenRouter client
type Config struct {
	APIKey  string
	BaseURL string        // Default: https://openrouter.ai/api/v1
	Model   string        // Default: openai/gpt-oss-20b:free
	Referer string        // Sent as HTTP-Referer
	Title   string        // Sent as X-Title
	Timeout time.Duration // Default: 15s
}

// NewHTTPClient creates a new OpenRouter HTTP client
func NewHTTPClient(config Config) *HTTPClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://openrouter.ai/api/v1"
	}
	if config.Model == "" {
		config.Model = "openai/gpt-oss-20b:free"
	}
	if config.Referer == "" {
		config.Referer = "http://localhost:5000"
	}
	if config.Title == "" {
		config.Title = "MediChat Assistant"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &HTTPClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		referer: config.Referer,
		title:   config.Title,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		timeout: config.Timeout,
	}
}

// Name implements llm.Client.Name
func (c *HTTPClient) Name() string {
	return "openrouter"
}

// completionBody mirrors only the fields we read. Pointers let us tell a
// missing message or a null content apart from an empty string.
type completionBody struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion implements llm.Client.ChatCompletion
func (c *HTTPClient) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", llm.ErrTransport)
	}

	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("HTTP-Referer", c.referer)
	httpReq.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", llm.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: API returned status %d: %s", llm.ErrTransport, resp.StatusCode, string(snippet))
	}

	var parsed completionBody
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q has type %s", llm.ErrMalformedResponse, typeErr.Field, typeErr.Value)
		}
		return nil, fmt.Errorf("%w: failed to decode response: %v", llm.ErrTransport, err)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", llm.ErrMalformedResponse)
	}
	msg := parsed.Choices[0].Message
	if msg == nil {
		return nil, fmt.Errorf("%w: first choice has no message", llm.ErrMalformedResponse)
	}
	if msg.Content == nil {
		return nil, fmt.Errorf("%w: first choice has no content", llm.ErrMalformedResponse)
	}

	return &llm.ChatResponse{
		ID:      parsed.ID,
		Model:   parsed.Model,
		Content: *msg.Content,
	}, nil
}
