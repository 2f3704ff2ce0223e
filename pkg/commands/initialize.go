package commands

import (
	"path/filepath"

	"github.com/cursync/cursync/pkg/config"
	"github.com/cursync/cursync/pkg/errors"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/paths"
)

// InitOptions configures repository scaffolding.
type InitOptions struct {
	Env Env
}

// InitResult lists what init created.
type InitResult struct {
	CreatedDirs       []string
	CreatedConfigFile string
}

// Init scaffolds the resource tree (rules/, agents/, skills/) and drops
// a starter .cursync.toml at the repository root. Existing directories
// are left alone; an existing config file is never overwritten.
func Init(opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands.init")
	result := &InitResult{}

	dirs := []string{
		opts.Env.Paths.RulesDir(),
		opts.Env.Paths.AgentsDir(),
		opts.Env.Paths.SkillsDir(),
	}
	for _, dir := range dirs {
		if _, err := opts.Env.FS.Lstat(dir); err == nil {
			continue
		}
		if err := opts.Env.FS.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
		result.CreatedDirs = append(result.CreatedDirs, dir)
	}

	configPath := filepath.Join(opts.Env.Paths.RepoRoot(), paths.ConfigFileName)
	if _, err := opts.Env.FS.Lstat(configPath); err == nil {
		logger.Debug().Str("path", configPath).Msg("config file already present")
		return result, nil
	}

	content, err := config.Generate()
	if err != nil {
		return nil, err
	}
	if err := opts.Env.FS.WriteFile(configPath, content, 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to write %s", configPath)
	}
	result.CreatedConfigFile = configPath

	logger.Info().Str("root", opts.Env.Paths.RepoRoot()).Msg("repository scaffolded")
	return result, nil
}
