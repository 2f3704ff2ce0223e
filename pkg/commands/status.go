package commands

import (
	"github.com/cursync/cursync/pkg/linker"
	"github.com/cursync/cursync/pkg/planner"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/types"
)

// StatusOptions configures a status report.
type StatusOptions struct {
	Env    Env
	Filter rules.Filter
}

// StatusResult is the observed state of every expected link.
type StatusResult struct {
	Statuses []types.LinkStatus

	// Shadowed lists rules hidden by flat-target name collisions.
	Shadowed []string
}

// Status reports the state of every link the current plan expects,
// without mutating anything.
func Status(opts StatusOptions) (*StatusResult, error) {
	filter := opts.Filter
	if filter.IsEmpty() {
		filter = rules.NewFilter(opts.Env.Config.Rules.Categories)
	}

	plan, err := planner.Compute(opts.Env.FS, opts.Env.Paths, opts.Env.Config, filter)
	if err != nil {
		return nil, err
	}

	statuses, err := linker.Check(opts.Env.FS, plan.Mappings)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{Statuses: statuses}
	for _, w := range plan.Warnings {
		if w.Kind == planner.WarnShadowed {
			result.Shadowed = append(result.Shadowed, w.Message)
		}
	}
	return result, nil
}
