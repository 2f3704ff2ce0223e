package testutil

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFSFiles(t *testing.T) {
	m := NewMemoryFS()

	require.NoError(t, m.WriteFile("/repo/resources/rules/security/a.mdc", []byte("rule a"), 0644))

	content, err := m.ReadFile("/repo/resources/rules/security/a.mdc")
	require.NoError(t, err)
	assert.Equal(t, "rule a", string(content))

	// Parent directories were created implicitly.
	info, err := m.Stat("/repo/resources/rules")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFSReadDir(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/repo/rules/b.mdc", nil, 0644))
	require.NoError(t, m.WriteFile("/repo/rules/a.mdc", nil, 0644))
	require.NoError(t, m.MkdirAll("/repo/rules/nested", 0755))
	require.NoError(t, m.WriteFile("/repo/rules/nested/c.mdc", nil, 0644))

	entries, err := m.ReadDir("/repo/rules")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.mdc", entries[0].Name())
	assert.Equal(t, "b.mdc", entries[1].Name())
	assert.Equal(t, "nested", entries[2].Name())
	assert.True(t, entries[2].IsDir())
}

func TestMemoryFSSymlinks(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/src/file.mdc", []byte("content"), 0644))
	require.NoError(t, m.MkdirAll("/dst", 0755))

	require.NoError(t, m.Symlink("/src/file.mdc", "/dst/link.mdc"))

	// Lstat sees the link, Stat follows it.
	info, err := m.Lstat("/dst/link.mdc")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)

	info, err = m.Stat("/dst/link.mdc")
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&fs.ModeSymlink)

	content, err := m.ReadFile("/dst/link.mdc")
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	dest, err := m.Readlink("/dst/link.mdc")
	require.NoError(t, err)
	assert.Equal(t, "/src/file.mdc", dest)

	// Symlink refuses to overwrite, matching os.Symlink.
	err = m.Symlink("/src/file.mdc", "/dst/link.mdc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestMemoryFSDanglingSymlink(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/dst", 0755))
	require.NoError(t, m.Symlink("/nowhere", "/dst/dangling"))

	_, err := m.Lstat("/dst/dangling")
	require.NoError(t, err)

	_, err = m.Stat("/dst/dangling")
	require.Error(t, err)
}

func TestMemoryFSRemove(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/dir/file", nil, 0644))

	// Non-empty directory refuses Remove but allows RemoveAll.
	require.Error(t, m.Remove("/dir"))
	require.NoError(t, m.Remove("/dir/file"))
	require.NoError(t, m.WriteFile("/dir/file", nil, 0644))
	require.NoError(t, m.RemoveAll("/dir"))

	_, err := m.Lstat("/dir")
	require.Error(t, err)
}

func TestMemoryFSErrorInjection(t *testing.T) {
	m := NewMemoryFS()
	boom := errors.New("permission denied")
	m.InjectError("/dst/link", boom)
	require.NoError(t, m.MkdirAll("/dst", 0755))

	err := m.Symlink("/src", "/dst/link")
	assert.Equal(t, boom, err)
}
