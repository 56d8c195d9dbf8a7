package fsops

import (
	"os"
	"path/filepath"
)

// WriteFile replaces the file at path with content, creating missing parent
// directories.
func (f *FS) WriteFile(path, content string) error {
	abs, err := f.resolveWrite(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}
	return os.WriteFile(abs, []byte(content), 0o644)
}
