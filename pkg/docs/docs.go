// Package docs lists and renders the markdown documents in the resource
// tree (agent personas and skill templates) for terminal reading.
package docs

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/cursync/cursync/pkg/errors"
	"github.com/cursync/cursync/pkg/types"
)

// Kind tells which part of the resource tree a document came from.
type Kind string

const (
	KindAgent Kind = "agent"
	KindSkill Kind = "skill"
)

// Doc is a single markdown document in the resource tree.
type Doc struct {
	// Name is the file name without the .md extension, used to address
	// the document from the command line.
	Name string
	Kind Kind
	Path string
}

// List returns every markdown document under the agents and skills
// directories, sorted by kind then name. Missing directories contribute
// nothing.
func List(fsys types.FS, agentsDir, skillsDir string) []Doc {
	var out []Doc
	out = append(out, scan(fsys, agentsDir, KindAgent)...)
	out = append(out, scan(fsys, skillsDir, KindSkill)...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func scan(fsys types.FS, dir string, kind Kind) []Doc {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Doc
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		out = append(out, Doc{
			Name: strings.TrimSuffix(entry.Name(), ".md"),
			Kind: kind,
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return out
}

// Find returns the document with the given name. Agent documents win
// when an agent and a skill share a name.
func Find(fsys types.FS, agentsDir, skillsDir, name string) (Doc, error) {
	for _, doc := range List(fsys, agentsDir, skillsDir) {
		if doc.Name == name {
			return doc, nil
		}
	}
	return Doc{}, errors.Newf(errors.ErrDocNotFound, "no agent or skill document named %q", name)
}
