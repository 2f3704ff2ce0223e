package linker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursync/cursync/pkg/linker"
	"github.com/cursync/cursync/pkg/testutil"
	"github.com/cursync/cursync/pkg/types"
)

func TestCheckClassifiesStates(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	testutil.CreateTree(t, fsys, map[string]string{
		"/repo/resources/rules/security/b.mdc": "rule b",
		"/repo/.cursor/blocked/":               "",
	})
	require.NoError(t, fsys.Symlink("/repo/resources/rules/security/b.mdc", "/repo/.cursor/ok.mdc"))
	require.NoError(t, fsys.Symlink("/elsewhere/b.mdc", "/repo/.cursor/wrong.mdc"))

	mappings := []types.LinkMapping{
		{Kind: types.MappingRule, Source: "/repo/resources/rules/security/b.mdc", Target: "/repo/.cursor/ok.mdc"},
		{Kind: types.MappingRule, Source: "/repo/resources/rules/security/b.mdc", Target: "/repo/.cursor/wrong.mdc"},
		{Kind: types.MappingRule, Source: "/repo/resources/rules/security/b.mdc", Target: "/repo/.cursor/missing.mdc"},
		{Kind: types.MappingAgents, Source: "/repo/resources/agents", Target: "/repo/.cursor/blocked"},
	}

	statuses, err := linker.Check(fsys, mappings)
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	assert.Equal(t, types.LinkOK, statuses[0].State)
	assert.Equal(t, types.LinkWrongTarget, statuses[1].State)
	assert.Equal(t, "/elsewhere/b.mdc", statuses[1].ActualTarget)
	assert.Equal(t, types.LinkMissing, statuses[2].State)
	assert.Equal(t, types.LinkBlocked, statuses[3].State)
}
