package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/petasbytes/go-chat-agent/memory"
	"github.com/petasbytes/go-chat-agent/tools"
)

// OpenRouter implements Provider for OpenRouter and any other
// OpenAI-compatible chat completions endpoint.
type OpenRouter struct {
	client *resty.Client
}

// OpenRouterOption customises an OpenRouter provider.
type OpenRouterOption func(*resty.Client)

// WithHTTPClient routes requests through hc.
func WithHTTPClient(hc *http.Client) OpenRouterOption {
	return func(c *resty.Client) {
		c.SetTransport(hc.Transport)
	}
}

// NewOpenRouter returns a provider posting to baseURL + "/chat/completions".
// Failed calls are not retried.
func NewOpenRouter(baseURL, apiKey string, opts ...OpenRouterOption) *OpenRouter {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(120 * time.Second)
	client.SetRetryCount(0)
	client.SetAuthToken(apiKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("X-Title", "go-chat-agent")
	for _, opt := range opts {
		opt(client)
	}
	return &OpenRouter{client: client}
}

func (o *OpenRouter) Name() string { return NameOpenRouter }

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	Tools     []chatTool    `json:"tools,omitempty"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    *string        `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type chatToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatTool struct {
	Type     string           `json:"type"`
	Function tools.Descriptor `json:"function"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (o *OpenRouter) Complete(ctx context.Context, req Request) (memory.Message, error) {
	body := chatRequest{
		Model:     req.Model,
		Messages:  chatMessages(req.Messages),
		MaxTokens: req.MaxTokens,
	}
	for _, t := range req.Tools {
		body.Tools = append(body.Tools, chatTool{Type: "function", Function: t.Descriptor()})
	}

	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return memory.Message{}, fmt.Errorf("chat completion request: %w", err)
	}

	var result chatResponse
	decodeErr := json.Unmarshal(resp.Body(), &result)

	if resp.StatusCode() != http.StatusOK {
		if decodeErr == nil && result.Error != nil && result.Error.Message != "" {
			return memory.Message{}, fmt.Errorf("chat completion returned %d: %s", resp.StatusCode(), result.Error.Message)
		}
		return memory.Message{}, fmt.Errorf("chat completion returned %d: %s", resp.StatusCode(), truncate(resp.String(), 200))
	}
	if decodeErr != nil {
		return memory.Message{}, fmt.Errorf("parse chat completion: %w", decodeErr)
	}
	if result.Error != nil {
		return memory.Message{}, fmt.Errorf("chat completion error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return memory.Message{}, fmt.Errorf("chat completion returned no choices")
	}
	return fromChatMessage(result.Choices[0].Message), nil
}

func chatMessages(msgs []memory.Message) []chatMessage {
	out := make([]chatMessage, 0, len(msgs))
	for _, m := range msgs {
		cm := chatMessage{Role: string(m.Role), ToolCallID: m.ToolCallID}
		content := m.Content
		// Assistant turns that only carried tool calls are sent with null content.
		if !(m.Role == memory.RoleAssistant && content == "" && len(m.ToolCalls) > 0) {
			cm.Content = &content
		}
		for _, c := range m.ToolCalls {
			args := string(c.Arguments)
			if args == "" {
				args = "{}"
			}
			cm.ToolCalls = append(cm.ToolCalls, chatToolCall{
				ID:       c.ID,
				Type:     "function",
				Function: chatFunction{Name: c.Name, Arguments: args},
			})
		}
		out = append(out, cm)
	}
	return out
}

func fromChatMessage(cm chatMessage) memory.Message {
	var text string
	if cm.Content != nil {
		text = *cm.Content
	}
	calls := make([]memory.ToolCall, 0, len(cm.ToolCalls))
	for _, c := range cm.ToolCalls {
		calls = append(calls, memory.ToolCall{
			ID:        c.ID,
			Name:      c.Function.Name,
			Arguments: json.RawMessage(c.Function.Arguments),
		})
	}
	return memory.AssistantMessage(text, calls...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
