package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "resources", cfg.Resources.Dir)
	assert.Equal(t, ".cursor", cfg.Target.Dir)
	assert.Equal(t, ".mdc", cfg.Rules.Extension)
	assert.Equal(t, "**/*.mdc", cfg.Rules.Pattern)
	assert.Empty(t, cfg.Rules.Categories)
	assert.Equal(t, 300, cfg.Sync.WatchDebounceMs)
}

func TestLoadRepoConfig(t *testing.T) {
	root := t.TempDir()
	content := `
[target]
dir = ".editor"

[rules]
categories = ["security", "code_quality"]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cursync.toml"), []byte(content), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, ".editor", cfg.Target.Dir)
	assert.Equal(t, []string{"security", "code_quality"}, cfg.Rules.Categories)
	// Untouched keys keep their defaults.
	assert.Equal(t, "resources", cfg.Resources.Dir)
	assert.Equal(t, ".mdc", cfg.Rules.Extension)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CURSYNC_TARGET_DIR", ".vscode")
	t.Setenv("CURSYNC_RULES_EXTENSION", ".md")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".vscode", cfg.Target.Dir)
	assert.Equal(t, ".md", cfg.Rules.Extension)
}

func TestEnvBeatsRepoConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cursync.toml"),
		[]byte("[target]\ndir = \".editor\"\n"), 0644))
	t.Setenv("CURSYNC_TARGET_DIR", ".winner")

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, ".winner", cfg.Target.Dir)
}

func TestLoadBadToml(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".cursync.toml"),
		[]byte("this is not toml ["), 0644))

	_, err := Load(root)
	require.Error(t, err)
}

func TestWatchDebounce(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "300ms", cfg.Sync.WatchDebounce().String())
}

func TestGenerate(t *testing.T) {
	out, err := Generate()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "[rules]")
	assert.Contains(t, s, "# extension = '.mdc'")
	assert.NotContains(t, s, "\nextension =")
}
