package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/themobileprof/medichat-be/internal/circuitbreaker"
	"github.com/themobileprof/medichat-be/internal/fallback"
	"github.com/themobileprof/medichat-be/internal/privacy"
	"github.com/themobileprof/medichat-be/pkg/llm"
)

// Reply is the outcome of one chat completion. Fallback is fallback.None
// when Text came from the model unchanged.
type Reply struct {
	Text     string
	Fallback fallback.Kind
}

// PromptBuilder turns a user message into the messages sent upstream
type PromptBuilder interface {
	BuildPrompt(userMessage string) []llm.ChatMessage
}

// Options tunes a Client
type Options struct {
	// Timeout bounds one remote call. Default: 15s
	Timeout time.Duration

	// DisclosurePhrases are matched case-insensitively against the reply;
	// any hit replaces the whole reply with the redirect message
	DisclosurePhrases []string
}

// Client answers non-medical messages through a remote chat model. It never
// returns an error: every failure becomes a fixed fallback reply.
type Client struct {
	llm      llm.Client
	prompts  PromptBuilder
	breaker  *circuitbreaker.CircuitBreaker
	timeout  time.Duration
	denylist []string
}

// New creates a chat completion client. breaker may be nil.
func New(client llm.Client, prompts PromptBuilder, breaker *circuitbreaker.CircuitBreaker, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	denylist := make([]string, 0, len(opts.DisclosurePhrases))
	for _, p := range opts.DisclosurePhrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			denylist = append(denylist, p)
		}
	}

	return &Client{
		llm:      client,
		prompts:  prompts,
		breaker:  breaker,
		timeout:  opts.Timeout,
		denylist: denylist,
	}
}

// Complete sends message to the chat model with the fixed system prompt.
// The call is attempted once.
func (c *Client) Complete(ctx context.Context, message string) Reply {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := llm.ChatRequest{
		Messages: c.prompts.BuildPrompt(privacy.SanitizeForAPI(message)),
	}

	var resp *llm.ChatResponse
	call := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("chat provider panicked: %v", r)
			}
		}()
		resp, err = c.llm.ChatCompletion(ctx, req)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Call(call)
	} else {
		err = call()
	}

	if err != nil {
		kind := fallback.Classify(err)
		log.Printf("Chat completion failed via %s (%s): %v", c.llm.Name(), kind, err)
		return Reply{Text: fallback.Message(kind), Fallback: kind}
	}

	text := resp.Text()
	if c.disclosesPersonalDetails(text) {
		log.Printf("Chat reply replaced: personal disclosure filter matched")
		return Reply{Text: fallback.Message(fallback.PersonalDisclosure), Fallback: fallback.PersonalDisclosure}
	}

	log.Printf("Chat response generated successfully")
	return Reply{Text: text}
}

func (c *Client) disclosesPersonalDetails(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range c.denylist {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
