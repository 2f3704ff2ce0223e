package commands

import (
	"github.com/cursync/cursync/pkg/linker"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/planner"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/types"
)

// SyncOptions configures a sync run.
type SyncOptions struct {
	Env Env

	// Filter restricts rule categories; empty links everything. When
	// unset, the configured default categories apply.
	Filter rules.Filter

	// DryRun plans and reports without mutating anything.
	DryRun bool
}

// SyncResult carries everything the CLI renders after a sync.
type SyncResult struct {
	Results  []types.OperationResult
	Warnings []planner.Warning
}

// Sync computes the plan for the resource tree and applies it. Guarded
// skips are reported in Results and do not fail the run; the first
// fatal filesystem error aborts remaining operations and is returned.
func Sync(opts SyncOptions) (*SyncResult, error) {
	logger := logging.GetLogger("commands.sync")

	filter := opts.Filter
	if filter.IsEmpty() {
		filter = rules.NewFilter(opts.Env.Config.Rules.Categories)
	}

	plan, err := planner.Compute(opts.Env.FS, opts.Env.Paths, opts.Env.Config, filter)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("operations", len(plan.Operations)).
		Bool("dry_run", opts.DryRun).
		Str("root", opts.Env.Paths.RepoRoot()).
		Msg("syncing resource tree")

	results, err := linker.NewExecutor(opts.Env.FS, opts.DryRun).Execute(plan.Operations)
	return &SyncResult{Results: results, Warnings: plan.Warnings}, err
}
