package tools_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/go-chat-agent/internal/safety"
	"github.com/petasbytes/go-chat-agent/tools"
)

func TestReadFile_Happy(t *testing.T) {
	reg, dir := workspace(t)
	prepare(t, filepath.Join(dir, "a.txt"), "hi\nthere\n")

	out, err := call(t, reg, "read_file", tools.ReadFileInput{Path: "a.txt"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "hi\nthere\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReadFile_NotFound(t *testing.T) {
	reg, _ := workspace(t)
	out, err := call(t, reg, "read_file", tools.ReadFileInput{Path: "does-not-exist.txt"})
	if err == nil {
		t.Fatal("expected error")
	}
	if out != "" {
		t.Fatalf("expected empty output alongside error, got %q", out)
	}
}

func TestReadFile_MissingPath(t *testing.T) {
	reg, _ := workspace(t)
	def, _ := reg.Lookup("read_file")
	for _, raw := range []string{`{}`, ``, `{"path":""}`} {
		_, err := def.Function(json.RawMessage(raw))
		if err != tools.ErrPathRequired {
			t.Fatalf("input %q: expected ErrPathRequired, got %v", raw, err)
		}
	}
}

func TestReadFile_DirectoryPath_Error(t *testing.T) {
	reg, dir := workspace(t)
	prepare(t, filepath.Join(dir, "sub", "x.txt"), "")

	_, err := call(t, reg, "read_file", tools.ReadFileInput{Path: "sub"})
	if err == nil {
		t.Fatal("expected error for directory path")
	}
	if !strings.Contains(err.Error(), safety.CodeNotAFile) {
		t.Fatalf("expected %s, got: %v", safety.CodeNotAFile, err)
	}
}

func TestReadFile_MalformedArguments(t *testing.T) {
	reg, _ := workspace(t)
	def, _ := reg.Lookup("read_file")
	if _, err := def.Function(json.RawMessage(`{"path":`)); err == nil {
		t.Fatal("expected decode error")
	}
}
