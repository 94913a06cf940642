package fallback

import (
	"context"
	"errors"

	"github.com/themobileprof/medichat-be/internal/circuitbreaker"
	"github.com/themobileprof/medichat-be/pkg/llm"
)

// Kind enumerates the situations that are answered with a fixed message
// instead of a computed one
type Kind int

const (
	None Kind = iota
	EmptyInput
	Transport
	ResponseShape
	Unexpected
	PersonalDisclosure
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case EmptyInput:
		return "empty_input"
	case Transport:
		return "transport"
	case ResponseShape:
		return "response_shape"
	case Unexpected:
		return "unexpected"
	case PersonalDisclosure:
		return "personal_disclosure"
	default:
		return "unknown"
	}
}

var messages = map[Kind]string{
	EmptyInput: "Please enter a message!",
	Transport: "I'm a medical information assistant. How can I help with your health concerns today?\n\n" +
		"Note: Chat service is temporarily unavailable, but medical analysis is fully functional.",
	ResponseShape: "I'm experiencing technical difficulties with the chat service.\n\n" +
		"You can still get medical analysis by describing your symptoms.",
	Unexpected: "I'm experiencing technical difficulties.\n\n" +
		"You can still get medical analysis by describing your symptoms.",
	PersonalDisclosure: "I'm a medical information assistant focused on health topics. " +
		"How can I help with your health concerns today?",
}

// Message returns the fixed user-facing text for a kind. Kinds without an
// entry (including None) get the Unexpected text.
func Message(kind Kind) string {
	if msg, ok := messages[kind]; ok {
		return msg
	}
	return messages[Unexpected]
}

// Classify maps an error from the chat path onto exactly one failure kind
func Classify(err error) Kind {
	switch {
	case err == nil:
		return None
	case errors.Is(err, llm.ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return Transport
	case errors.Is(err, llm.ErrMalformedResponse):
		return ResponseShape
	default:
		return Unexpected
	}
}
