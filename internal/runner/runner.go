package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/petasbytes/go-chat-agent/internal/provider"
	"github.com/petasbytes/go-chat-agent/internal/telemetry"
	"github.com/petasbytes/go-chat-agent/memory"
	"github.com/petasbytes/go-chat-agent/tools"
)

// Runner owns one conversation with one provider.
type Runner struct {
	provider  provider.Provider
	registry  *tools.Registry
	model     string
	maxTokens int
	console   *Console
	logger    *slog.Logger
	recorder  *telemetry.Recorder
}

// Option customises a Runner.
type Option func(*Runner)

// WithConsole sets the chat echo destination.
func WithConsole(c *Console) Option { return func(r *Runner) { r.console = c } }

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option { return func(r *Runner) { r.logger = l } }

// WithRecorder enables telemetry events.
func WithRecorder(rec *telemetry.Recorder) Option { return func(r *Runner) { r.recorder = rec } }

// WithMaxTokens caps each reply. Non-positive values keep the default.
func WithMaxTokens(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxTokens = n
		}
	}
}

// New returns a Runner querying model through p with the tools in reg.
func New(p provider.Provider, reg *tools.Registry, model string, opts ...Option) *Runner {
	r := &Runner{
		provider:  p,
		registry:  reg,
		model:     model,
		maxTokens: provider.DefaultMaxTokens,
		console:   NewConsole(os.Stdout, DefaultPalette()),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run alternates between reading user input and querying the model until
// input ends, fails or ctx is cancelled. All of these end the conversation
// with a nil error; a read failure is logged.
func (r *Runner) Run(ctx context.Context, conv *memory.Transcript, next InputFunc) error {
	state := StateAwaitUser
	for {
		if ctx.Err() != nil {
			return nil
		}

		if state == StateAwaitUser {
			r.console.Prompt()
			line, err := next(ctx)
			if err != nil {
				if !errors.Is(err, io.EOF) && ctx.Err() == nil {
					r.logger.Warn("reading input failed, ending conversation", "err", err)
				}
				return nil
			}
			conv.Append(memory.UserMessage(line))
		}

		state = r.Turn(ctx, conv)
		r.logger.Debug("turn complete", "next", state.String(), "messages", conv.Len())
	}
}

// Turn performs one inference and runs the requested tools, appending the
// reply and every tool result to conv. It returns StateContinueWithoutUser
// when tools ran and the model must see their results.
func (r *Runner) Turn(ctx context.Context, conv *memory.Transcript) State {
	ctx = telemetry.WithTurnID(ctx, telemetry.NewTurnID())

	reply := r.Infer(ctx, conv)
	conv.Append(reply)
	if len(reply.ToolCalls) == 0 {
		return StateAwaitUser
	}

	for _, call := range reply.ToolCalls {
		conv.Append(memory.ToolResultMessage(call.ID, r.Dispatch(ctx, call)))
	}
	return StateContinueWithoutUser
}

// Infer sends the full transcript to the model and echoes any reply text. It
// never fails: transport and API errors are printed and come back as an
// assistant message "Error: <description>".
func (r *Runner) Infer(ctx context.Context, conv *memory.Transcript) memory.Message {
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = telemetry.NewTurnID()
	}

	req := provider.Request{
		Model:     r.model,
		Messages:  conv.Messages(),
		Tools:     r.registry.Definitions(),
		MaxTokens: r.maxTokens,
	}

	start := time.Now()
	reply, err := r.provider.Complete(ctx, req)
	fields := map[string]any{
		"turn_id":     turnID,
		"provider":    r.provider.Name(),
		"model":       r.model,
		"messages":    len(req.Messages),
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if err != nil {
		// Raw provider errors may echo request content; keep them out of events.
		fields["error"] = "inference error"
		r.recorder.Emit("inference", fields)
		r.logger.Warn("inference failed", "provider", r.provider.Name(), "model", r.model, "err", err)
		r.console.InferenceError(err)
		return memory.AssistantMessage("Error: " + err.Error())
	}

	reply.Role = memory.RoleAssistant
	fields["error"] = nil
	fields["tool_calls"] = len(reply.ToolCalls)
	fields["output"] = telemetry.Measure(reply.Content).Fields()
	r.recorder.Emit("inference", fields)
	if reply.Content != "" {
		r.console.Assistant(reply.Content)
	}
	return reply
}
