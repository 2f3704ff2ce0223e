package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursync/cursync/pkg/commands"
	"github.com/cursync/cursync/pkg/config"
	"github.com/cursync/cursync/pkg/paths"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/testutil"
	"github.com/cursync/cursync/pkg/types"
)

func newEnv(t *testing.T) (commands.Env, *testutil.MemoryFS) {
	t.Helper()
	fsys := testutil.NewMemoryFS()
	p, err := paths.New("/repo", paths.Options{})
	require.NoError(t, err)
	return commands.Env{FS: fsys, Paths: p, Config: config.Default()}, fsys
}

func seedTree(t *testing.T, fsys *testutil.MemoryFS) {
	t.Helper()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/code_quality/a.mdc": "rule a",
		"/repo/resources/rules/security/b.mdc":     "rule b",
		"/repo/resources/agents/reviewer.md":       "agent",
		"/repo/resources/skills/refactor.md":       "skill",
	})
}

func TestSyncEndToEnd(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)

	result, err := commands.Sync(commands.SyncOptions{Env: env})
	require.NoError(t, err)
	assert.Len(t, result.Results, 5)
	assert.Empty(t, result.Warnings)

	testutil.AssertLink(t, fsys, "/repo/.cursor/rules/a.mdc", "/repo/resources/rules/code_quality/a.mdc")
	testutil.AssertLink(t, fsys, "/repo/.cursor/rules/b.mdc", "/repo/resources/rules/security/b.mdc")
	testutil.AssertLink(t, fsys, "/repo/.cursor/agents", "/repo/resources/agents")
	testutil.AssertLink(t, fsys, "/repo/.cursor/skills", "/repo/resources/skills")
}

func TestSyncUsesConfiguredCategories(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)
	env.Config.Rules.Categories = []string{"security"}

	_, err := commands.Sync(commands.SyncOptions{Env: env})
	require.NoError(t, err)

	testutil.AssertLink(t, fsys, "/repo/.cursor/rules/b.mdc", "/repo/resources/rules/security/b.mdc")
	testutil.AssertNotExists(t, fsys, "/repo/.cursor/rules/a.mdc")
}

func TestSyncExplicitFilterBeatsConfig(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)
	env.Config.Rules.Categories = []string{"security"}

	_, err := commands.Sync(commands.SyncOptions{
		Env:    env,
		Filter: rules.ParseFilter("code_quality"),
	})
	require.NoError(t, err)

	testutil.AssertLink(t, fsys, "/repo/.cursor/rules/a.mdc", "/repo/resources/rules/code_quality/a.mdc")
	testutil.AssertNotExists(t, fsys, "/repo/.cursor/rules/b.mdc")
}

func TestSyncDryRun(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)

	result, err := commands.Sync(commands.SyncOptions{Env: env, DryRun: true})
	require.NoError(t, err)
	for _, r := range result.Results {
		assert.Equal(t, types.StatusWould, r.Status)
	}
	testutil.AssertNotExists(t, fsys, "/repo/.cursor")
}

func TestStatusAfterSync(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)

	_, err := commands.Sync(commands.SyncOptions{Env: env})
	require.NoError(t, err)

	status, err := commands.Status(commands.StatusOptions{Env: env})
	require.NoError(t, err)
	require.Len(t, status.Statuses, 4)
	for _, s := range status.Statuses {
		assert.Equal(t, types.LinkOK, s.State, s.Mapping.Target)
	}
	assert.Empty(t, status.Shadowed)
}

func TestStatusReportsShadowedRules(t *testing.T) {
	env, fsys := newEnv(t)
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/code_quality/foo.mdc": "first",
		"/repo/resources/rules/security/foo.mdc":     "second",
	})

	status, err := commands.Status(commands.StatusOptions{Env: env})
	require.NoError(t, err)
	require.Len(t, status.Shadowed, 1)
	assert.Contains(t, status.Shadowed[0], "foo.mdc")
}

func TestCleanUndoesSync(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)

	_, err := commands.Sync(commands.SyncOptions{Env: env})
	require.NoError(t, err)

	_, err = commands.Clean(commands.CleanOptions{Env: env})
	require.NoError(t, err)

	testutil.AssertNotExists(t, fsys, "/repo/.cursor/rules/a.mdc")
	testutil.AssertNotExists(t, fsys, "/repo/.cursor/rules/b.mdc")
	testutil.AssertNotExists(t, fsys, "/repo/.cursor/agents")
	testutil.AssertNotExists(t, fsys, "/repo/.cursor/skills")
}

func TestCleanIgnoresFilter(t *testing.T) {
	env, fsys := newEnv(t)
	seedTree(t, fsys)

	// Sync only security, then clean with the same config; the
	// code_quality link from a previous unfiltered run must go too.
	_, err := commands.Sync(commands.SyncOptions{Env: env})
	require.NoError(t, err)
	env.Config.Rules.Categories = []string{"security"}

	_, err = commands.Clean(commands.CleanOptions{Env: env})
	require.NoError(t, err)

	testutil.AssertNotExists(t, fsys, "/repo/.cursor/rules/a.mdc")
}

func TestInitScaffoldsRepo(t *testing.T) {
	env, fsys := newEnv(t)

	result, err := commands.Init(commands.InitOptions{Env: env})
	require.NoError(t, err)
	assert.Len(t, result.CreatedDirs, 3)
	assert.Equal(t, "/repo/.cursync.toml", result.CreatedConfigFile)

	content, err := fsys.ReadFile("/repo/.cursync.toml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "[rules]")
}

func TestInitIsIdempotent(t *testing.T) {
	env, fsys := newEnv(t)
	require.NoError(t, fsys.WriteFile("/repo/.cursync.toml", []byte("# mine\n"), 0644))
	require.NoError(t, fsys.MkdirAll("/repo/resources/rules", 0755))

	result, err := commands.Init(commands.InitOptions{Env: env})
	require.NoError(t, err)
	assert.Len(t, result.CreatedDirs, 2)
	assert.Empty(t, result.CreatedConfigFile)

	// The user's config file is untouched.
	content, err := fsys.ReadFile("/repo/.cursync.toml")
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(content))
}
