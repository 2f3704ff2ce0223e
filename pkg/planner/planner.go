// Package planner computes the link mappings and operations a sync run
// would apply. Planning only reads the filesystem; all mutation happens
// in pkg/linker. This split keeps the matching logic (which rule files
// land where, under which filter) testable against an in-memory tree.
package planner

import (
	"fmt"
	"path/filepath"

	"github.com/cursync/cursync/pkg/config"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/paths"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/types"
)

// WarningKind classifies plan warnings.
type WarningKind string

const (
	// WarnShadowed means two categories carry a rule with the same base
	// name; the flat target keeps only the later one.
	WarnShadowed WarningKind = "shadowed"

	// WarnSourceMissing means a directory link's source does not exist
	// and the step will be skipped.
	WarnSourceMissing WarningKind = "source-missing"

	// WarnBadRule means a rule file carries malformed frontmatter. The
	// rule is still linked; Cursor will complain about it either way.
	WarnBadRule WarningKind = "bad-rule"
)

// Warning is a non-fatal condition detected while planning.
type Warning struct {
	Kind    WarningKind
	Message string
}

// Plan is the computed outcome of a sync before any mutation.
type Plan struct {
	// Operations in apply order: target directory creation first, then
	// rule links, then the agents and skills directory links.
	Operations []types.Operation

	// Mappings is every link the plan establishes, in operation order.
	Mappings []types.LinkMapping

	// Warnings carries shadowed rules and skipped steps.
	Warnings []Warning
}

// Compute builds the plan for one sync run. The filter restricts rule
// categories; an empty filter links every category. Compute never
// mutates fsys.
func Compute(fsys types.FS, p paths.Paths, cfg *config.Config, filter rules.Filter) (*Plan, error) {
	logger := logging.GetLogger("planner")
	plan := &Plan{}

	ruleOps, err := planRules(fsys, p, cfg, filter, plan)
	if err != nil {
		return nil, err
	}

	if len(ruleOps) > 0 {
		plan.Operations = append(plan.Operations, types.Operation{
			Type:        types.OperationCreateDir,
			Target:      p.TargetRulesDir(),
			Description: fmt.Sprintf("create %s", p.TargetRulesDir()),
		})
		plan.Operations = append(plan.Operations, ruleOps...)
	}

	// Creating the rules directory also creates the target root. With
	// no rules matched the directory links still need the root to
	// exist, so plan it explicitly.
	before := len(plan.Operations)
	planDirLink(fsys, plan, types.MappingAgents, p.AgentsDir(), p.TargetAgentsPath())
	planDirLink(fsys, plan, types.MappingSkills, p.SkillsDir(), p.TargetSkillsPath())
	if len(ruleOps) == 0 && len(plan.Operations) > before {
		plan.Operations = append([]types.Operation{{
			Type:        types.OperationCreateDir,
			Target:      p.TargetDir(),
			Description: fmt.Sprintf("create %s", p.TargetDir()),
		}}, plan.Operations...)
	}

	logger.Debug().
		Int("operations", len(plan.Operations)).
		Int("warnings", len(plan.Warnings)).
		Msg("plan computed")
	return plan, nil
}

// planRules maps every discovered rule into the flat target rules
// directory. Discovery order is category-alphabetical, so on base-name
// collisions the alphabetically later category wins; the loser is
// reported as shadowed.
func planRules(fsys types.FS, p paths.Paths, cfg *config.Config, filter rules.Filter, plan *Plan) ([]types.Operation, error) {
	logger := logging.GetLogger("planner")

	found, err := rules.Discover(fsys, p.RulesDir(), cfg.Rules.Pattern)
	if err != nil {
		return nil, err
	}

	byTarget := make(map[string]types.LinkMapping)
	var order []string
	for _, rule := range found {
		if !filter.Match(rule.Category) {
			logger.Trace().Str("rule", rule.Name).Str("category", rule.Category).Msg("filtered out")
			continue
		}

		if content, rerr := fsys.ReadFile(rule.Path); rerr == nil {
			if _, ferr := rules.ParseFrontmatter(content); ferr != nil {
				plan.Warnings = append(plan.Warnings, Warning{
					Kind:    WarnBadRule,
					Message: fmt.Sprintf("rule %s: %s", rule.Path, ferr),
				})
			}
		}

		target := filepath.Join(p.TargetRulesDir(), rule.Name)
		mapping := types.LinkMapping{
			Kind:     types.MappingRule,
			Source:   rule.Path,
			Target:   target,
			Category: rule.Category,
			Name:     rule.Name,
		}

		if prev, ok := byTarget[target]; ok {
			plan.Warnings = append(plan.Warnings, Warning{
				Kind: WarnShadowed,
				Message: fmt.Sprintf("rule %s: %s shadows %s in the flat rules directory",
					rule.Name, rule.Path, prev.Source),
			})
		} else {
			order = append(order, target)
		}
		byTarget[target] = mapping
	}

	var ops []types.Operation
	for _, target := range order {
		mapping := byTarget[target]
		plan.Mappings = append(plan.Mappings, mapping)
		ops = append(ops, linkOperation(mapping, fmt.Sprintf("link rule %s", mapping.Name)))
	}
	return ops, nil
}

// planDirLink plans the single directory link for agents or skills. A
// missing source directory skips the step with a warning instead of
// failing the run.
func planDirLink(fsys types.FS, plan *Plan, kind types.MappingKind, source, target string) {
	info, err := fsys.Stat(source)
	if err != nil || !info.IsDir() {
		plan.Warnings = append(plan.Warnings, Warning{
			Kind:    WarnSourceMissing,
			Message: fmt.Sprintf("%s directory %s does not exist, skipping", kind, source),
		})
		return
	}

	mapping := types.LinkMapping{Kind: kind, Source: source, Target: target}
	plan.Mappings = append(plan.Mappings, mapping)
	plan.Operations = append(plan.Operations, linkOperation(mapping, fmt.Sprintf("link %s directory", kind)))
}

func linkOperation(mapping types.LinkMapping, description string) types.Operation {
	m := mapping
	return types.Operation{
		Type:        types.OperationCreateLink,
		Source:      mapping.Source,
		Target:      mapping.Target,
		Description: description,
		Mapping:     &m,
	}
}
