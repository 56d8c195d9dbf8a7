package fsops

import (
	"errors"
	"io/fs"
	"os"

	"github.com/petasbytes/go-chat-agent/internal/safety"
)

// ReadFile returns the contents of the file at path.
func (f *FS) ReadFile(path string) (string, error) {
	abs, err := f.resolveRead(path)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Exists reports whether anything exists at path, resolving it as a write
// target. Errors other than "does not exist" are returned.
func (f *FS) Exists(path string) (bool, error) {
	abs, err := f.resolveWrite(path)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
