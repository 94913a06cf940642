package prompt

import (
	"github.com/themobileprof/medichat-be/pkg/llm"
)

// Builder constructs the message list sent to the chat-completion API.
// Every request carries the same system prompt and a single user turn; no
// history is kept between requests.
type Builder struct {
	systemPrompt string
}

// NewBuilder creates a builder around a fixed system prompt
func NewBuilder(systemPrompt string) *Builder {
	return &Builder{systemPrompt: systemPrompt}
}

// SystemPrompt returns the configured system prompt
func (b *Builder) SystemPrompt() string {
	return b.systemPrompt
}

// BuildPrompt returns the system turn followed by the user message
func (b *Builder) BuildPrompt(userMessage string) []llm.ChatMessage {
	return []llm.ChatMessage{
		{Role: llm.RoleSystem, Content: b.systemPrompt},
		{Role: llm.RoleUser, Content: userMessage},
	}
}
