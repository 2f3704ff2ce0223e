// Package rules discovers rule files in the resource tree. A category
// is a first-level directory under resources/rules; rule files are
// matched by a doublestar pattern relative to their category directory,
// so nested subdirectories within a category are included.
package rules

import (
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/cursync/cursync/pkg/errors"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/types"
)

// Rule is a single discovered rule file.
type Rule struct {
	// Name is the base file name, e.g. "no-todo-comments.mdc".
	Name string

	// Category is the first-level directory the rule lives under.
	Category string

	// Path is the absolute path of the rule file.
	Path string
}

// Discover walks the rules directory and returns every rule file whose
// path relative to its category directory matches pattern. A missing
// rules directory yields an empty slice, not an error: an empty rule
// set is a valid state.
//
// Results are sorted by category, then by relative path, which fixes
// the winner when two categories carry the same base name (later
// categories overwrite earlier ones in the flat target).
func Discover(fsys types.FS, rulesDir, pattern string) ([]Rule, error) {
	logger := logging.GetLogger("rules")

	entries, err := fsys.ReadDir(rulesDir)
	if err != nil {
		logger.Debug().Str("dir", rulesDir).Msg("rules directory not readable, treating as empty")
		return nil, nil
	}

	var rules []Rule
	for _, entry := range entries {
		if !entry.IsDir() {
			// Loose files directly under rules/ have no category and
			// are not linked, same as the original layout.
			continue
		}
		category := entry.Name()
		categoryDir := filepath.Join(rulesDir, category)

		files, err := collectFiles(fsys, categoryDir, "")
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to scan category %s", category)
		}

		for _, rel := range files {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrInvalidInput, "bad rule pattern %q", pattern)
			}
			if !ok {
				continue
			}
			rules = append(rules, Rule{
				Name:     path.Base(rel),
				Category: category,
				Path:     filepath.Join(categoryDir, filepath.FromSlash(rel)),
			})
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Category != rules[j].Category {
			return rules[i].Category < rules[j].Category
		}
		return rules[i].Path < rules[j].Path
	})

	logger.Debug().Int("count", len(rules)).Str("dir", rulesDir).Msg("discovered rules")
	return rules, nil
}

// collectFiles returns slash-separated paths of all regular files under
// dir, relative to dir.
func collectFiles(fsys types.FS, dir, prefix string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		rel := entry.Name()
		if prefix != "" {
			rel = prefix + "/" + rel
		}
		if entry.IsDir() {
			sub, err := collectFiles(fsys, filepath.Join(dir, entry.Name()), rel)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
			continue
		}
		files = append(files, rel)
	}
	return files, nil
}
