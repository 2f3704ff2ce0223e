// Package paths provides centralized path handling for cursync.
// It resolves the repository root, the resource tree underneath it, and
// the .cursor target directory, plus the XDG directories cursync uses
// for state.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cursync/cursync/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot is the primary environment variable for the repository root
	EnvRoot = "CURSYNC_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directory names. The resources and target names are
// user-configurable through .cursync.toml; these are the fallbacks the
// config layer starts from.
const (
	// DefaultResourcesDirName is the directory holding the resource tree
	DefaultResourcesDirName = "resources"

	// DefaultTargetDirName is the directory the resource tree is linked into
	DefaultTargetDirName = ".cursor"

	// RulesDirName is the rules subdirectory of both trees
	RulesDirName = "rules"

	// AgentsDirName is the agents subdirectory
	AgentsDirName = "agents"

	// SkillsDirName is the skills subdirectory
	SkillsDirName = "skills"

	// CursyncDirName is the directory name for cursync-specific files
	CursyncDirName = "cursync"

	// ConfigFileName is the name of the repository configuration file
	ConfigFileName = ".cursync.toml"
)

// Paths provides centralized path management for cursync
type Paths interface {
	RepoRoot() string
	UsedFallback() bool
	ResourcesDir() string
	RulesDir() string
	AgentsDir() string
	SkillsDir() string
	CategoryDir(category string) string
	TargetDir() string
	TargetRulesDir() string
	TargetAgentsPath() string
	TargetSkillsPath() string
	ConfigFilePath() string
	DataDir() string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	repoRoot      string
	resourcesName string
	targetName    string
	xdgData       string
	xdgState      string
	usedFallback  bool
}

// Options override the directory names used when resolving paths.
// Zero values fall back to the defaults.
type Options struct {
	ResourcesDirName string
	TargetDirName    string
}

// New creates a Paths instance rooted at repoRoot. If repoRoot is
// empty it is determined from CURSYNC_ROOT, then by walking upward from
// the working directory to the first directory containing the resources
// tree, then falling back to the working directory itself.
func New(repoRoot string, opts Options) (Paths, error) {
	p := &paths{
		resourcesName: opts.ResourcesDirName,
		targetName:    opts.TargetDirName,
	}
	if p.resourcesName == "" {
		p.resourcesName = DefaultResourcesDirName
	}
	if p.targetName == "" {
		p.targetName = DefaultTargetDirName
	}

	if repoRoot == "" {
		root, usedFallback, err := findRepoRoot(p.resourcesName)
		if err != nil {
			return nil, err
		}
		p.repoRoot = root
		p.usedFallback = usedFallback
	} else {
		p.repoRoot = expandHome(repoRoot)
	}

	absRoot, err := filepath.Abs(p.repoRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for repository root")
	}
	p.repoRoot = absRoot

	p.xdgData = filepath.Join(xdg.DataHome, CursyncDirName)
	p.xdgState = filepath.Join(xdg.StateHome, CursyncDirName)

	return p, nil
}

func (p *paths) RepoRoot() string {
	return p.repoRoot
}

func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) ResourcesDir() string {
	return filepath.Join(p.repoRoot, p.resourcesName)
}

func (p *paths) RulesDir() string {
	return filepath.Join(p.ResourcesDir(), RulesDirName)
}

func (p *paths) AgentsDir() string {
	return filepath.Join(p.ResourcesDir(), AgentsDirName)
}

func (p *paths) SkillsDir() string {
	return filepath.Join(p.ResourcesDir(), SkillsDirName)
}

func (p *paths) CategoryDir(category string) string {
	return filepath.Join(p.RulesDir(), category)
}

func (p *paths) TargetDir() string {
	return filepath.Join(p.repoRoot, p.targetName)
}

func (p *paths) TargetRulesDir() string {
	return filepath.Join(p.TargetDir(), RulesDirName)
}

func (p *paths) TargetAgentsPath() string {
	return filepath.Join(p.TargetDir(), AgentsDirName)
}

func (p *paths) TargetSkillsPath() string {
	return filepath.Join(p.TargetDir(), SkillsDirName)
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.repoRoot, ConfigFileName)
}

func (p *paths) DataDir() string {
	return p.xdgData
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, "cursync.log")
}

// findRepoRoot determines the repository root using the following priority:
//  1. CURSYNC_ROOT environment variable (if set)
//  2. The nearest ancestor of the working directory containing the
//     resources tree
//  3. Current working directory (fallback)
//
// The returned bool reports whether the working-directory fallback was
// used, so callers can warn about it.
func findRepoRoot(resourcesName string) (string, bool, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	dir := cwd
	for {
		if info, err := os.Stat(filepath.Join(dir, resourcesName)); err == nil && info.IsDir() {
			return dir, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd, true, nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
