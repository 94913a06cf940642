package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/themobileprof/medichat-be/pkg/llm"
)

// Client implements llm.Client on top of the go-openai SDK
type Client struct {
	client  *goopenai.Client
	model   string
	hasKey  bool
	timeout time.Duration
}

var _ llm.Client = (*Client)(nil)

// Config holds configuration for the OpenAI client
type Config struct {
	APIKey  string
	BaseURL string        // Default: SDK default (https://api.openai.com/v1)
	Model   string        // Default: gpt-4o-mini
	Timeout time.Duration // Default: 15s
}

// NewClient constructs an OpenAI-backed LLM client
func NewClient(config Config) *Client {
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}

	cfg := goopenai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cfg.BaseURL = config.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &Client{
		client:  goopenai.NewClientWithConfig(cfg),
		model:   config.Model,
		hasKey:  config.APIKey != "",
		timeout: config.Timeout,
	}
}

// Name implements llm.Client.Name
func (c *Client) Name() string {
	return "openai"
}

// ChatCompletion implements llm.Client.ChatCompletion
func (c *Client) ChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if !c.hasKey {
		return nil, fmt.Errorf("%w: no API key configured", llm.ErrTransport)
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	msgs := make([]goopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := m.Role
		if role != goopenai.ChatMessageRoleSystem && role != goopenai.ChatMessageRoleUser && role != goopenai.ChatMessageRoleAssistant {
			role = goopenai.ChatMessageRoleUser
		}
		msgs = append(msgs, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: API returned status %d: %s", llm.ErrTransport, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: %v", llm.ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", llm.ErrMalformedResponse)
	}

	return &llm.ChatResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Content: resp.Choices[0].Message.Content,
	}, nil
}
