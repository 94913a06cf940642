package llm

import (
	"context"
	"errors"
)

var (
	// ErrTransport marks failures to reach the provider or to get a usable
	// HTTP answer from it: dial errors, timeouts, non-2xx status, missing
	// credentials and bodies that are not JSON at all.
	ErrTransport = errors.New("chat completion transport failure")

	// ErrMalformedResponse marks a well-formed HTTP answer whose payload is
	// missing the fields a completion must carry.
	ErrMalformedResponse = errors.New("chat completion response malformed")
)

// Client interface for LLM API interactions
type Client interface {
	// ChatCompletion sends a non-streaming chat completion request
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Name identifies the provider in logs and health output
	Name() string
}
