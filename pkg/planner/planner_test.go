package planner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursync/cursync/pkg/config"
	"github.com/cursync/cursync/pkg/paths"
	"github.com/cursync/cursync/pkg/planner"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/testutil"
	"github.com/cursync/cursync/pkg/types"
)

func newPaths(t *testing.T) paths.Paths {
	t.Helper()
	p, err := paths.New("/repo", paths.Options{})
	require.NoError(t, err)
	return p
}

func fullTree(t *testing.T, fsys *testutil.MemoryFS) {
	t.Helper()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/code_quality/a.mdc": "rule a",
		"/repo/resources/rules/security/b.mdc":     "rule b",
		"/repo/resources/agents/reviewer.md":       "agent",
		"/repo/resources/skills/refactor.md":       "skill",
	})
}

func TestComputeFullTree(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	fullTree(t, fsys)

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.Filter{})
	require.NoError(t, err)

	// mkdir, two rule links, agents link, skills link.
	require.Len(t, plan.Operations, 5)
	assert.Equal(t, types.OperationCreateDir, plan.Operations[0].Type)
	assert.Equal(t, "/repo/.cursor/rules", plan.Operations[0].Target)

	wantLinks := map[string]string{
		"/repo/.cursor/rules/a.mdc": "/repo/resources/rules/code_quality/a.mdc",
		"/repo/.cursor/rules/b.mdc": "/repo/resources/rules/security/b.mdc",
		"/repo/.cursor/agents":      "/repo/resources/agents",
		"/repo/.cursor/skills":      "/repo/resources/skills",
	}
	require.Len(t, plan.Mappings, len(wantLinks))
	for _, m := range plan.Mappings {
		assert.Equal(t, wantLinks[m.Target], m.Source, "mapping for %s", m.Target)
	}
	assert.Empty(t, plan.Warnings)
}

func TestComputeCategoryFilter(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	fullTree(t, fsys)

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.ParseFilter("security"))
	require.NoError(t, err)

	var ruleTargets []string
	for _, m := range plan.Mappings {
		if m.Kind == types.MappingRule {
			ruleTargets = append(ruleTargets, m.Target)
		}
	}
	assert.Equal(t, []string{"/repo/.cursor/rules/b.mdc"}, ruleTargets)
}

func TestComputeUnknownCategoryMatchesNothing(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	fullTree(t, fsys)

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.ParseFilter("no_such_category"))
	require.NoError(t, err)

	for _, m := range plan.Mappings {
		assert.NotEqual(t, types.MappingRule, m.Kind)
	}
	// No rules matched, so the rules directory is not created. The
	// target root still is, for the agents and skills links.
	var dirTargets []string
	for _, op := range plan.Operations {
		if op.Type == types.OperationCreateDir {
			dirTargets = append(dirTargets, op.Target)
		}
	}
	assert.Equal(t, []string{"/repo/.cursor"}, dirTargets)
}

func TestComputeCollisionLastWriteWins(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/code_quality/foo.mdc": "first",
		"/repo/resources/rules/security/foo.mdc":     "second",
	})

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.Filter{})
	require.NoError(t, err)

	var ruleMappings []types.LinkMapping
	for _, m := range plan.Mappings {
		if m.Kind == types.MappingRule {
			ruleMappings = append(ruleMappings, m)
		}
	}
	require.Len(t, ruleMappings, 1)
	// security sorts after code_quality, so it wins the flat target.
	assert.Equal(t, "/repo/resources/rules/security/foo.mdc", ruleMappings[0].Source)

	require.Len(t, plan.Warnings, 3)
	shadowed := plan.Warnings[0]
	assert.Equal(t, planner.WarnShadowed, shadowed.Kind)
	assert.Contains(t, shadowed.Message, "security/foo.mdc")
	assert.Contains(t, shadowed.Message, "code_quality/foo.mdc")
}

func TestComputeWarnsOnBadFrontmatter(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/code_quality/good.mdc": "---\ndescription: fine\n---\nbody\n",
		"/repo/resources/rules/code_quality/bad.mdc":  "---\ndescription: [oops\n---\nbody\n",
	})

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.Filter{})
	require.NoError(t, err)

	// Both rules are still linked; the malformed one is just reported.
	require.Len(t, plan.Mappings, 2)

	var found bool
	for _, w := range plan.Warnings {
		if w.Kind == planner.WarnBadRule && strings.Contains(w.Message, "bad.mdc") {
			found = true
		}
	}
	assert.True(t, found, "expected a bad-rule warning, got %v", plan.Warnings)
}

func TestComputeMissingRulesDir(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/agents/reviewer.md": "agent",
		"/repo/resources/skills/refactor.md": "skill",
	})

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.Filter{})
	require.NoError(t, err)

	// Missing rules tree is a no-op, not an error; directory links
	// still planned, behind the target root creation.
	require.Len(t, plan.Operations, 3)
	assert.Equal(t, types.OperationCreateDir, plan.Operations[0].Type)
	assert.Equal(t, "/repo/.cursor", plan.Operations[0].Target)
	assert.Equal(t, types.MappingAgents, plan.Operations[1].Mapping.Kind)
	assert.Equal(t, types.MappingSkills, plan.Operations[2].Mapping.Kind)
}

func TestComputeMissingAgentsDir(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/security/b.mdc": "rule b",
		"/repo/resources/skills/refactor.md":   "skill",
	})

	plan, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.Filter{})
	require.NoError(t, err)

	for _, m := range plan.Mappings {
		assert.NotEqual(t, types.MappingAgents, m.Kind)
	}

	var found bool
	for _, w := range plan.Warnings {
		if w.Kind == planner.WarnSourceMissing && strings.Contains(w.Message, "agents") {
			found = true
		}
	}
	assert.True(t, found, "expected a source-missing warning for agents, got %v", plan.Warnings)
}

func TestComputeIsPure(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	fullTree(t, fsys)

	_, err := planner.Compute(fsys, newPaths(t), config.Default(), rules.Filter{})
	require.NoError(t, err)

	// Planning must not create the target tree.
	testutil.AssertNotExists(t, fsys, "/repo/.cursor")
}
