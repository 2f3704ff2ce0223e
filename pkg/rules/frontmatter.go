package rules

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/cursync/cursync/pkg/errors"
)

// Frontmatter is the YAML header a .mdc rule file may carry.
type Frontmatter struct {
	Description string   `yaml:"description"`
	Globs       []string `yaml:"globs"`
	AlwaysApply bool     `yaml:"alwaysApply"`
}

var frontmatterDelim = []byte("---")

// ParseFrontmatter extracts the YAML frontmatter from rule file content.
// Files without a frontmatter block return a zero Frontmatter and no
// error; a malformed YAML block is an error.
func ParseFrontmatter(content []byte) (Frontmatter, error) {
	var fm Frontmatter

	trimmed := bytes.TrimLeft(content, "\xef\xbb\xbf")
	if !bytes.HasPrefix(trimmed, frontmatterDelim) {
		return fm, nil
	}
	rest := trimmed[len(frontmatterDelim):]
	// The opening delimiter must end its line.
	if nl := bytes.IndexByte(rest, '\n'); nl < 0 || len(bytes.TrimSpace(rest[:nl])) > 0 {
		return fm, nil
	} else {
		rest = rest[nl+1:]
	}

	if bytes.HasPrefix(rest, frontmatterDelim) {
		// Empty frontmatter block.
		return fm, nil
	}

	end := bytes.Index(rest, append([]byte("\n"), frontmatterDelim...))
	if end < 0 {
		return fm, errors.New(errors.ErrRuleParse, "unterminated frontmatter block")
	}

	if err := yaml.Unmarshal(rest[:end+1], &fm); err != nil {
		return fm, errors.Wrap(err, errors.ErrRuleParse, "invalid frontmatter")
	}
	return fm, nil
}
