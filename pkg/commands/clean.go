package commands

import (
	"github.com/cursync/cursync/pkg/linker"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/planner"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/types"
)

// CleanOptions configures a clean run.
type CleanOptions struct {
	Env    Env
	DryRun bool
}

// CleanResult carries the outcome of removing established links.
type CleanResult struct {
	Results []types.OperationResult
}

// Clean removes every link the current plan would establish, plus stale
// rule links from earlier runs. Only symlinks are removed; anything
// else in the target tree is left alone. The category filter is
// deliberately not applied here so a filtered sync followed by a clean
// still removes everything cursync created.
func Clean(opts CleanOptions) (*CleanResult, error) {
	logger := logging.GetLogger("commands.clean")

	plan, err := planner.Compute(opts.Env.FS, opts.Env.Paths, opts.Env.Config, rules.Filter{})
	if err != nil {
		return nil, err
	}

	ops := linker.CleanOperations(opts.Env.FS, plan.Mappings,
		opts.Env.Paths.TargetRulesDir(), opts.Env.Config.Rules.Extension)

	logger.Info().Int("operations", len(ops)).Bool("dry_run", opts.DryRun).Msg("cleaning links")

	results, err := linker.NewExecutor(opts.Env.FS, opts.DryRun).Execute(ops)
	return &CleanResult{Results: results}, err
}
