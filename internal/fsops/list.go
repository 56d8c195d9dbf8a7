package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
)

// ListFiles recursively enumerates every entry below dir. Names are relative
// to dir with "/" separators; directories carry a trailing "/". The root
// itself is not included. Order follows the walk and is not part of the
// contract. In a sandbox, denied directories are listed but not entered.
func (f *FS) ListFiles(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	absDir, err := f.resolveRead(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absDir); err != nil {
		return nil, err
	}

	names := []string{}
	err = filepath.WalkDir(absDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == absDir {
				return walkErr
			}
			// Unreadable subtrees are skipped rather than failing the listing.
			return nil
		}
		if p == absDir {
			return nil
		}
		rel, err := filepath.Rel(absDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			name += "/"
		}
		names = append(names, name)
		if d.IsDir() && f.deniedDir(p) {
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (f *FS) deniedDir(abs string) bool {
	if f.policy == nil {
		return false
	}
	rel, err := filepath.Rel(f.root, abs)
	if err != nil {
		return false
	}
	_, denied := f.policy.Denied(rel)
	return denied
}
