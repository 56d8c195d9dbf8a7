// Package provider talks to the remote model. Each implementation turns the
// provider-neutral transcript into one "create a chat completion" call and
// normalises the reply back into a memory.Message.
package provider

import (
	"context"
	"fmt"

	"github.com/petasbytes/go-chat-agent/memory"
	"github.com/petasbytes/go-chat-agent/tools"
)

const (
	NameOpenRouter = "openrouter"
	NameAnthropic  = "anthropic"
)

// DefaultMaxTokens caps the length of each model reply.
const DefaultMaxTokens = 1024

// Request is one inference call.
type Request struct {
	Model     string
	Messages  []memory.Message
	Tools     []tools.ToolDefinition
	MaxTokens int
}

// Provider creates chat completions.
type Provider interface {
	// Complete returns the assistant reply for req. Content may be empty
	// when the reply only carries tool calls.
	Complete(ctx context.Context, req Request) (memory.Message, error)
	// Name returns the provider name for display.
	Name() string
}

// DefaultModel returns the model used when none is configured.
func DefaultModel(name string) string {
	switch name {
	case NameAnthropic:
		return string(anthropicDefaultModel)
	default:
		return "google/gemini-2.0-flash-exp:free"
	}
}

// DefaultBaseURL returns the API endpoint used when none is configured.
// The Anthropic SDK picks its own default, so it is empty there.
func DefaultBaseURL(name string) string {
	switch name {
	case NameOpenRouter:
		return "https://openrouter.ai/api/v1"
	default:
		return ""
	}
}

// CredentialEnv names the environment variable holding the API key.
func CredentialEnv(name string) string {
	switch name {
	case NameAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENROUTER_API_KEY"
	}
}

// Supported reports whether name is a known provider.
func Supported(name string) bool {
	return name == NameOpenRouter || name == NameAnthropic
}

// New creates the named provider. An empty baseURL selects the default.
func New(name, apiKey, baseURL string) (Provider, error) {
	switch name {
	case NameOpenRouter:
		if baseURL == "" {
			baseURL = DefaultBaseURL(name)
		}
		return NewOpenRouter(baseURL, apiKey), nil
	case NameAnthropic:
		return NewAnthropic(apiKey, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
