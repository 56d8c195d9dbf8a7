// Package runner drives the conversation: it relays the transcript to the
// model, echoes replies and dispatches requested tool calls.
//
// Invariant:
//   - every tool call in an assistant turn is answered by exactly one tool
//     message, in call order, before the model is queried again.
//
// Flow:
//
//	user -> assistant(tool_calls) -> tool ... tool -> assistant(text) -> user
package runner
