package testutil

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage.
// Paths are normalized to absolute, cleaned form; relative paths are
// resolved against "/".
type MemoryFS struct {
	mu    sync.RWMutex
	nodes map[string]*fileNode

	// Error injection: operations touching these paths fail.
	errorPaths map[string]error
}

// fileNode represents a file, directory, or symlink in memory
type fileNode struct {
	mode     fs.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
}

// NewMemoryFS creates a new in-memory filesystem containing only the root
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		nodes: map[string]*fileNode{
			"/": {mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true},
		},
		errorPaths: make(map[string]error),
	}
}

// InjectError makes every operation on path fail with err
func (m *MemoryFS) InjectError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorPaths[m.normalize(path)] = err
}

func (m *MemoryFS) normalize(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) checkInjected(path string) error {
	if err, ok := m.errorPaths[path]; ok {
		return err
	}
	return nil
}

// resolve follows a symlink chain to the final node. Only used by the
// operations that follow links (Stat, ReadFile, ReadDir).
func (m *MemoryFS) resolve(path string) (string, *fileNode, error) {
	for range [16]int{} {
		node, ok := m.nodes[path]
		if !ok {
			return path, nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
		}
		if !node.isLink {
			return path, node, nil
		}
		dest := node.linkDest
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = filepath.Clean(dest)
	}
	return path, nil, &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many levels of symbolic links")}
}

func (m *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return nil, err
	}
	final, node, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	return newFileInfo(filepath.Base(final), node), nil
}

func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return nil, err
	}
	node, ok := m.nodes[path]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return newFileInfo(filepath.Base(path), node), nil
}

func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return nil, err
	}
	_, node, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

func (m *MemoryFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return err
	}
	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	content := make([]byte, len(data))
	copy(content, data)
	m.nodes[path] = &fileNode{mode: perm, modTime: time.Now(), content: content}
	return nil
}

func (m *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.normalize(path)
	if err := m.checkInjected(p); err != nil {
		return err
	}
	return m.mkdirAll(p, perm)
}

func (m *MemoryFS) mkdirAll(path string, perm fs.FileMode) error {
	if node, ok := m.nodes[path]; ok {
		if node.isDir {
			return nil
		}
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}
	parent := filepath.Dir(path)
	if parent != path {
		if err := m.mkdirAll(parent, perm); err != nil {
			return err
		}
	}
	m.nodes[path] = &fileNode{mode: perm | fs.ModeDir, modTime: time.Now(), isDir: true}
	return nil
}

func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return nil, err
	}
	final, node, err := m.resolve(path)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: errors.New("not a directory")}
	}

	prefix := final
	if prefix != "/" {
		prefix += "/"
	}
	var entries []fs.DirEntry
	for p, n := range m.nodes {
		if p == final || !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if strings.Contains(rest, "/") {
			continue
		}
		entries = append(entries, fs.FileInfoToDirEntry(newFileInfo(rest, n)))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (m *MemoryFS) Symlink(oldname, newname string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalize(newname)
	if err := m.checkInjected(path); err != nil {
		return err
	}
	if _, ok := m.nodes[path]; ok {
		return &fs.PathError{Op: "symlink", Path: path, Err: fs.ErrExist}
	}
	if _, ok := m.nodes[filepath.Dir(path)]; !ok {
		return &fs.PathError{Op: "symlink", Path: path, Err: fs.ErrNotExist}
	}
	m.nodes[path] = &fileNode{
		mode:     0777 | fs.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: oldname,
	}
	return nil
}

func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return "", err
	}
	node, ok := m.nodes[path]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: fs.ErrNotExist}
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: path, Err: errors.New("invalid argument")}
	}
	return node.linkDest, nil
}

func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalize(name)
	if err := m.checkInjected(path); err != nil {
		return err
	}
	node, ok := m.nodes[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if node.isDir {
		prefix := path + "/"
		for p := range m.nodes {
			if strings.HasPrefix(p, prefix) {
				return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
			}
		}
	}
	delete(m.nodes, path)
	return nil
}

func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.normalize(path)
	if err := m.checkInjected(p); err != nil {
		return err
	}
	prefix := p + "/"
	for k := range m.nodes {
		if k == p || strings.HasPrefix(k, prefix) {
			delete(m.nodes, k)
		}
	}
	return nil
}

// memFileInfo implements fs.FileInfo for memory nodes
type memFileInfo struct {
	name string
	node *fileNode
}

func newFileInfo(name string, node *fileNode) fs.FileInfo {
	return &memFileInfo{name: name, node: node}
}

func (i *memFileInfo) Name() string       { return i.name }
func (i *memFileInfo) Size() int64        { return int64(len(i.node.content)) }
func (i *memFileInfo) Mode() fs.FileMode  { return i.node.mode }
func (i *memFileInfo) ModTime() time.Time { return i.node.modTime }
func (i *memFileInfo) IsDir() bool        { return i.node.isDir }
func (i *memFileInfo) Sys() interface{}   { return nil }
