package types

// MappingKind identifies which part of the resource tree a link mapping
// comes from.
type MappingKind string

const (
	// MappingRule is a single rule file linked flat into the target
	// rules directory.
	MappingRule MappingKind = "rule"

	// MappingAgents is the directory link for resources/agents.
	MappingAgents MappingKind = "agents"

	// MappingSkills is the directory link for resources/skills.
	MappingSkills MappingKind = "skills"
)

// LinkMapping is a single (source, target) pair the planner computed.
// Source and Target are absolute paths.
type LinkMapping struct {
	Kind   MappingKind
	Source string
	Target string

	// Category and Name are set for rule mappings only.
	Category string
	Name     string
}

// LinkState classifies how a target path relates to its expected mapping.
type LinkState string

const (
	// LinkOK means the target is a symlink pointing at the source.
	LinkOK LinkState = "ok"

	// LinkMissing means nothing exists at the target path.
	LinkMissing LinkState = "missing"

	// LinkWrongTarget means the target is a symlink pointing elsewhere.
	LinkWrongTarget LinkState = "wrong-target"

	// LinkBlocked means a real file or directory occupies the target
	// path. cursync never removes these.
	LinkBlocked LinkState = "blocked"
)

// LinkStatus is the observed state of one mapping, as reported by the
// status command.
type LinkStatus struct {
	Mapping LinkMapping
	State   LinkState

	// ActualTarget is what the symlink currently points at when State
	// is LinkWrongTarget.
	ActualTarget string
}
