// Package fsops implements the filesystem primitives behind the file tools.
//
// Paths are resolved against a workspace root. Without a sandbox policy,
// absolute paths are used as given; with one, every path must stay inside the
// root and outside the policy's deny list.
package fsops

import (
	"fmt"
	"path/filepath"

	"github.com/petasbytes/go-chat-agent/internal/safety"
)

// FS performs file operations relative to a workspace root.
type FS struct {
	root   string
	policy *safety.Policy
}

// New returns an unsandboxed FS rooted at root ("" means the working directory).
func New(root string) (*FS, error) {
	abs, err := safety.ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	return &FS{root: abs}, nil
}

// NewSandboxed returns an FS whose paths are confined to root. Directories in
// deny (relative to root) can be neither read nor written.
func NewSandboxed(root string, deny ...string) (*FS, error) {
	p, err := safety.NewPolicy(root, deny...)
	if err != nil {
		return nil, err
	}
	return &FS{root: p.Root, policy: &p}, nil
}

// Root returns the absolute workspace root.
func (f *FS) Root() string { return f.root }

// Sandboxed reports whether paths are confined to the root.
func (f *FS) Sandboxed() bool { return f.policy != nil }

func (f *FS) resolveRead(path string) (string, error) {
	if f.policy != nil {
		return f.policy.ValidateRead(path)
	}
	return f.join(path), nil
}

func (f *FS) resolveWrite(path string) (string, error) {
	if f.policy != nil {
		return f.policy.ValidateWrite(path)
	}
	return f.join(path), nil
}

func (f *FS) join(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(f.root, path)
}

func (f *FS) String() string {
	if f.policy != nil {
		return fmt.Sprintf("%s (sandboxed)", f.root)
	}
	return f.root
}
