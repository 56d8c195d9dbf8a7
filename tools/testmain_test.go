package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/go-chat-agent/internal/fsops"
	"github.com/petasbytes/go-chat-agent/tools"
)

// workspace returns a registry bound to a fresh temp root and that root.
func workspace(t *testing.T) (*tools.Registry, string) {
	t.Helper()
	fs, err := fsops.New(t.TempDir())
	if err != nil {
		t.Fatalf("fsops.New: %v", err)
	}
	return tools.Default(fs), fs.Root()
}

// call runs the named tool with in marshalled as its arguments.
func call(t *testing.T, reg *tools.Registry, name string, in any) (string, error) {
	t.Helper()
	def, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("tool %q not registered", name)
	}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return def.Function(b)
}

func prepare(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}
}
