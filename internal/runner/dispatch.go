package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/petasbytes/go-chat-agent/internal/telemetry"
	"github.com/petasbytes/go-chat-agent/memory"
	"github.com/petasbytes/go-chat-agent/tools"
)

// ToolNotFound is the result for a call naming an unregistered tool.
const ToolNotFound = "Tool not found"

// Dispatch runs one tool call and returns its result text. Tool errors and
// panics are both reported to the model as their message.
func (r *Runner) Dispatch(ctx context.Context, call memory.ToolCall) string {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	args := call.Arguments
	if len(bytes.TrimSpace(args)) == 0 {
		args = json.RawMessage("{}")
	}

	emit := func(start time.Time, output string, errStr string) {
		fields := map[string]any{
			"turn_id":     turnID,
			"tool_name":   call.Name,
			"call_id":     call.ID,
			"duration_ms": time.Since(start).Milliseconds(),
			"input_size":  len(args),
			"output":      telemetry.Measure(output).Fields(),
			"error":       nil,
		}
		if errStr != "" {
			fields["error"] = errStr
		}
		r.recorder.Emit("tool_exec", fields)
	}

	start := time.Now()
	def, ok := r.registry.Lookup(call.Name)
	if !ok {
		r.logger.Warn("model requested unknown tool", "tool", call.Name, "call_id", call.ID)
		emit(start, ToolNotFound, "tool not found")
		return ToolNotFound
	}

	r.console.ToolCall(call.Name, args)
	out, failure := execute(def, args)
	if failure != "" {
		r.logger.Debug("tool failed", "tool", call.Name, "call_id", call.ID, "kind", failure)
		emit(start, out, failure)
		return out
	}
	emit(start, out, "")
	return out
}

// execute calls the handler. failure is "tool error" or "tool panic" when the
// handler did not succeed, in which case out holds the error text.
func execute(def tools.ToolDefinition, args json.RawMessage) (out, failure string) {
	defer func() {
		if p := recover(); p != nil {
			out, failure = fmt.Sprint(p), "tool panic"
		}
	}()
	res, err := def.Function(args)
	if err != nil {
		return err.Error(), "tool error"
	}
	return res, ""
}
