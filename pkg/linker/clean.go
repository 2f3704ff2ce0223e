package linker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/types"
)

// CleanOperations builds the remove operations for every planned
// mapping, plus stale rule links left in the target rules directory by
// earlier runs (links whose name no longer maps to any rule). Only
// symlinks are ever removed; the executor's guard keeps real files in
// place.
func CleanOperations(fsys types.FS, mappings []types.LinkMapping, targetRulesDir, ruleExtension string) []types.Operation {
	logger := logging.GetLogger("linker")

	var ops []types.Operation
	known := make(map[string]bool)
	for _, mapping := range mappings {
		known[mapping.Target] = true
		m := mapping
		ops = append(ops, types.Operation{
			Type:        types.OperationRemoveLink,
			Target:      mapping.Target,
			Description: removeDescription(mapping),
			Mapping:     &m,
		})
	}

	// Stale links: *.mdc symlinks in the flat rules directory that no
	// current mapping accounts for.
	entries, err := fsys.ReadDir(targetRulesDir)
	if err != nil {
		return ops
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ruleExtension) {
			continue
		}
		target := filepath.Join(targetRulesDir, entry.Name())
		if known[target] {
			continue
		}
		info, err := fsys.Lstat(target)
		if err != nil || info.Mode()&fs.ModeSymlink == 0 {
			continue
		}
		logger.Debug().Str("target", target).Msg("found stale rule link")
		ops = append(ops, types.Operation{
			Type:        types.OperationRemoveLink,
			Target:      target,
			Description: fmt.Sprintf("remove stale rule link %s", entry.Name()),
		})
	}
	return ops
}

func removeDescription(mapping types.LinkMapping) string {
	if mapping.Kind == types.MappingRule {
		return fmt.Sprintf("remove rule link %s", mapping.Name)
	}
	return fmt.Sprintf("remove %s link", mapping.Kind)
}
