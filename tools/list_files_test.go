package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/go-chat-agent/tools"
)

func decodeNames(t *testing.T, out string) map[string]struct{} {
	t.Helper()
	var got []string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v; raw=%q", err, out)
	}
	set := make(map[string]struct{}, len(got))
	for _, x := range got {
		set[x] = struct{}{}
	}
	if len(set) != len(got) {
		t.Fatalf("duplicate entries in %v", got)
	}
	return set
}

func TestListFiles_OneDirOneFile(t *testing.T) {
	reg, dir := workspace(t)
	prepare(t, filepath.Join(dir, "a.txt"), "")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	out, err := call(t, reg, "list_files", tools.ListFilesInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	set := decodeNames(t, out)
	if len(set) != 2 {
		t.Fatalf("expected two entries, got %v", set)
	}
	if _, ok := set["sub/"]; !ok {
		t.Fatalf("missing sub/; got %v", set)
	}
	if _, ok := set["a.txt"]; !ok {
		t.Fatalf("missing a.txt; got %v", set)
	}
	if _, ok := set["a.txt/"]; ok {
		t.Fatalf("file entry must not carry a separator; got %v", set)
	}
}

func TestListFiles_Recursive(t *testing.T) {
	reg, dir := workspace(t)
	prepare(t, filepath.Join(dir, "proj", "main.go"), "")
	prepare(t, filepath.Join(dir, "proj", "pkg", "util", "util.go"), "")

	out, err := call(t, reg, "list_files", tools.ListFilesInput{Path: "proj"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	set := decodeNames(t, out)
	for _, want := range []string{"main.go", "pkg/", "pkg/util/", "pkg/util/util.go"} {
		if _, ok := set[want]; !ok {
			t.Fatalf("missing %q; got %v", want, set)
		}
	}
	if len(set) != 4 {
		t.Fatalf("unexpected extra entries: %v", set)
	}
}

func TestListFiles_EmptyDirReturnsEmptyArray(t *testing.T) {
	reg, dir := workspace(t)
	if err := os.Mkdir(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	out, err := call(t, reg, "list_files", tools.ListFilesInput{Path: "empty"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != "[]" {
		t.Fatalf("want [], got %q", out)
	}
}

func TestListFiles_InvalidPath_Error(t *testing.T) {
	reg, _ := workspace(t)
	_, err := call(t, reg, "list_files", tools.ListFilesInput{Path: filepath.Join("does", "not", "exist")})
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}
