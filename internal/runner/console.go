package runner

import (
	"encoding/json"
	"fmt"
	"io"
)

// Palette holds the ANSI sequences used to tag each role. The zero value
// prints without colour.
type Palette struct {
	User      string
	Assistant string
	Tool      string
	Reset     string
}

// DefaultPalette returns blue prompts, yellow assistant text and green tool
// invocations.
func DefaultPalette() Palette {
	return Palette{
		User:      "\u001b[94m",
		Assistant: "\u001b[93m",
		Tool:      "\u001b[92m",
		Reset:     "\u001b[0m",
	}
}

// PlainPalette returns a palette without escape sequences.
func PlainPalette() Palette { return Palette{} }

// Console writes the role-tagged chat echo.
type Console struct {
	w io.Writer
	p Palette
}

// NewConsole returns a Console writing to w with palette p.
func NewConsole(w io.Writer, p Palette) *Console {
	return &Console{w: w, p: p}
}

// Banner prints the session header.
func (c *Console) Banner(providerName string) {
	fmt.Fprintf(c.w, "Chat with %s (use 'ctrl-c' to quit)\n", providerName)
}

// Prompt prints the user prompt without a trailing newline.
func (c *Console) Prompt() {
	fmt.Fprintf(c.w, "%sYou%s: ", c.p.User, c.p.Reset)
}

// Assistant prints a model reply.
func (c *Console) Assistant(text string) {
	fmt.Fprintf(c.w, "%sAssistant%s: %s\n", c.p.Assistant, c.p.Reset, text)
}

// InferenceError reports a failed model call.
func (c *Console) InferenceError(err error) {
	fmt.Fprintf(c.w, "Error during inference: %v\n", err)
}

// ToolCall prints a tool invocation as name(args).
func (c *Console) ToolCall(name string, args json.RawMessage) {
	fmt.Fprintf(c.w, "%stool%s: %s(%s)\n", c.p.Tool, c.p.Reset, name, args)
}

// Exiting prints the interrupt notice.
func (c *Console) Exiting() {
	fmt.Fprintln(c.w, "\nExiting...")
}
