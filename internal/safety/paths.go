// Package safety provides path policy for workspace-confined file access.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Error codes carried by ToolError.
const (
	CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedRead     = "ERR_DENIED_READ"
	CodeDeniedWrite    = "ERR_DENIED_WRITE"
	CodeNotAFile       = "ERR_NOT_A_FILE"
)

// ToolError is a machine-readable error body surfaced back to the model as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool results small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// ResolveRoot returns the absolute, symlink-resolved form of root.
// An empty root means the current working directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(%s): %w", root, err)
	}
	// Keep the absolute form when the root does not exist yet.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// Policy confines paths to Root. Entries in Deny are slash-separated
// directory prefixes relative to Root that may be neither read nor written.
type Policy struct {
	Root string
	Deny []string
}

// NewPolicy resolves root and returns a Policy denying the given directories.
func NewPolicy(root string, deny ...string) (Policy, error) {
	abs, err := ResolveRoot(root)
	if err != nil {
		return Policy{}, err
	}
	cleaned := make([]string, 0, len(deny))
	for _, d := range deny {
		d = strings.Trim(filepath.ToSlash(filepath.Clean(d)), "/")
		if d != "" && d != "." {
			cleaned = append(cleaned, d)
		}
	}
	return Policy{Root: abs, Deny: cleaned}, nil
}

// ValidateRead resolves relPath for reading.
func (p Policy) ValidateRead(relPath string) (string, error) {
	return p.validate(relPath, CodeDeniedRead, "reads")
}

// ValidateWrite resolves relPath for writing. The leaf may not exist yet.
func (p Policy) ValidateWrite(relPath string) (string, error) {
	return p.validate(relPath, CodeDeniedWrite, "writes")
}

// validate rejects absolute inputs, parent traversal and symlink escapes, then
// applies the deny list to the root-relative form of the resolved path.
func (p Policy) validate(relPath, denyCode, verb string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	candidate := filepath.Join(p.Root, cleaned)

	// Resolve the whole candidate if it exists, otherwise the deepest existing
	// ancestor, so a symlinked parent cannot smuggle a new file outside Root.
	candidate = resolveExisting(candidate)

	rel, err := filepath.Rel(p.Root, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "requested path resolves outside the sandbox root"}
	}

	if d, ok := p.Denied(rel); ok {
		return "", ToolError{Code: denyCode, Message: fmt.Sprintf("%s under %s/ are not allowed", verb, d)}
	}
	return candidate, nil
}

// Denied reports the deny entry covering the root-relative path rel, if any.
func (p Policy) Denied(rel string) (string, bool) {
	relSlash := filepath.ToSlash(filepath.Clean(rel))
	for _, d := range p.Deny {
		if relSlash == d || strings.HasPrefix(relSlash, d+"/") {
			return d, true
		}
	}
	return "", false
}

func resolveExisting(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	var tail []string
	cur := path
	for {
		parent := filepath.Dir(cur)
		tail = append([]string{filepath.Base(cur)}, tail...)
		if parent == cur {
			return path
		}
		if resolved, err := filepath.EvalSymlinks(parent); err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...)
		}
		cur = parent
	}
}
