package llm

import (
	"context"
	"encoding/json"
)

// Provider sends a prompt to a model and returns its structured output.
type Provider interface {
	// Generate runs a single request. When req.Schema is set the provider
	// asks the model for JSON in that shape and validates the reply before
	// returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Explanations are single-turn, so this
	// usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. When nil the
	// response Content is the raw model text.
	Schema *Schema

	// MaxTokens caps the length of the response.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero leaves the provider
	// default in place.
	Temperature float64
}

// SingleTurn builds a Request with one user message.
func SingleTurn(system, user string, schema *Schema, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxTokens,
	}
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema to the provider and keys the compiled
	// schema cache. Kebab-case, e.g. "worked-explanation".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON object when a Schema was given, or the
	// raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
