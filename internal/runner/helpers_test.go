package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/go-chat-agent/internal/fsops"
	"github.com/petasbytes/go-chat-agent/internal/provider"
	"github.com/petasbytes/go-chat-agent/internal/runner"
	"github.com/petasbytes/go-chat-agent/memory"
	"github.com/petasbytes/go-chat-agent/tools"
)

type step struct {
	msg memory.Message
	err error
}

// scriptedProvider replays steps in order, then answers "done".
type scriptedProvider struct {
	steps    []step
	requests []provider.Request
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Complete(ctx context.Context, req provider.Request) (memory.Message, error) {
	s.requests = append(s.requests, req)
	if len(s.steps) == 0 {
		return memory.AssistantMessage("done"), nil
	}
	st := s.steps[0]
	s.steps = s.steps[1:]
	return st.msg, st.err
}

// lines returns an InputFunc yielding each line then io.EOF.
func lines(in ...string) runner.InputFunc {
	return func(ctx context.Context) (string, error) {
		if len(in) == 0 {
			return "", io.EOF
		}
		l := in[0]
		in = in[1:]
		return l, nil
	}
}

func call(id, name, args string) memory.ToolCall {
	return memory.ToolCall{ID: id, Name: name, Arguments: json.RawMessage(args)}
}

// newRunner binds the file tools to a temp workspace. It returns the runner,
// its chat echo and the workspace root.
func newRunner(t *testing.T, p provider.Provider, opts ...runner.Option) (*runner.Runner, *bytes.Buffer, string) {
	t.Helper()
	fs, err := fsops.New(t.TempDir())
	if err != nil {
		t.Fatalf("fsops.New: %v", err)
	}
	r, out := newRunnerWith(t, p, tools.Default(fs), opts...)
	return r, out, fs.Root()
}

func newRunnerWith(t *testing.T, p provider.Provider, reg *tools.Registry, opts ...runner.Option) (*runner.Runner, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	base := []runner.Option{
		runner.WithConsole(runner.NewConsole(out, runner.PlainPalette())),
		runner.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return runner.New(p, reg, "test-model", append(base, opts...)...), out
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
}

func assistantWithCalls(calls ...memory.ToolCall) memory.Message {
	return memory.AssistantMessage("", calls...)
}

func newConv(userText string) *memory.Transcript {
	conv := memory.NewTranscript()
	conv.Append(memory.UserMessage(userText))
	return conv
}
