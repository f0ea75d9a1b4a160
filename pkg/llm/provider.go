package llm

import (
	"context"
	"encoding/json"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolDef describes one callable tool: its name, a description the model uses
// to decide when to call it, and a JSON-schema property map for the arguments.
type ToolDef struct {
	Name        string
	Description string
	Properties  map[string]any
	Required    []string
}

// ToolExecutor runs a requested tool call and returns its textual result.
// The boolean marks the result as an error for the model; executors never
// return Go errors, failures are described in the content.
type ToolExecutor func(ctx context.Context, name string, args json.RawMessage) (content string, isError bool)

// Option allows for optional parameters like MaxTokens or a model override.
type Option func(*Options)

type Options struct {
	Model     string
	MaxTokens int
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

// Provider defines the contract for any LLM backend
type Provider interface {
	// Chat sends a system prompt plus chat history to the model and returns
	// the response text.
	Chat(ctx context.Context, system string, history []Message, options ...Option) (string, error)

	// ChatWithTools is Chat with tool calling: the provider loops, executing
	// each requested tool through exec and feeding results back, until the
	// model answers with plain text.
	ChatWithTools(ctx context.Context, system string, history []Message, tools []ToolDef, exec ToolExecutor, options ...Option) (string, error)
}
