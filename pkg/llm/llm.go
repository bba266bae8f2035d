// Package llm defines the completion transport used by the metadata
// requester and an OpenAI-compatible implementation.
package llm

import (
	"context"
	"errors"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    Role
	Content string
}

// Request describes a single, non-streaming completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// UserRequest builds the single-turn request used by the requester.
func UserRequest(model string, temperature float64, content string) Request {
	return Request{
		Model:       model,
		Temperature: temperature,
		Messages:    []Message{{Role: RoleUser, Content: content}},
	}
}

// Completer returns the text of the first choice for req.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

var (
	// ErrNoChoices is returned when the API answers without any choice.
	ErrNoChoices = errors.New("llm: completion returned no choices")
	// ErrNoMessages is returned for a request without messages.
	ErrNoMessages = errors.New("llm: request has no messages")
)
