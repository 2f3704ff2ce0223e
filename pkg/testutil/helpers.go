package testutil

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/cursync/cursync/pkg/types"
)

// CreateTree populates fsys with the given files. Keys are paths, values
// are file contents; parent directories are created as needed. A value
// of "" still creates the file. Keys ending in "/" create a bare
// directory.
func CreateTree(t *testing.T, fsys types.FS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		if filepath.Ext(path) == "" && len(path) > 0 && path[len(path)-1] == '/' {
			if err := fsys.MkdirAll(path[:len(path)-1], 0755); err != nil {
				t.Fatalf("failed to create directory %s: %v", path, err)
			}
			continue
		}
		if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", path, err)
		}
	}
}

// AssertLink fails the test unless target is a symlink pointing at source
func AssertLink(t *testing.T, fsys types.FS, target, source string) {
	t.Helper()
	info, err := fsys.Lstat(target)
	if err != nil {
		t.Fatalf("expected symlink at %s: %v", target, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Fatalf("expected %s to be a symlink, mode is %v", target, info.Mode())
	}
	dest, err := fsys.Readlink(target)
	if err != nil {
		t.Fatalf("failed to read link %s: %v", target, err)
	}
	if dest != source {
		t.Fatalf("link %s points at %s, want %s", target, dest, source)
	}
}

// AssertNotExists fails the test if anything exists at path
func AssertNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	if _, err := fsys.Lstat(path); err == nil {
		t.Fatalf("expected nothing at %s", path)
	}
}

// AssertRealDir fails the test unless path is a real directory (not a link)
func AssertRealDir(t *testing.T, fsys types.FS, path string) {
	t.Helper()
	info, err := fsys.Lstat(path)
	if err != nil {
		t.Fatalf("expected directory at %s: %v", path, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		t.Fatalf("expected %s to be a real directory, found symlink", path)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory, mode is %v", path, info.Mode())
	}
}
