package types

import "fmt"

// OperationType identifies the kind of filesystem mutation an operation
// performs.
type OperationType string

const (
	// OperationCreateDir creates a directory (and parents).
	OperationCreateDir OperationType = "create_dir"

	// OperationCreateLink creates a symlink at Target pointing to
	// Source, replacing an existing symlink at the same path.
	OperationCreateLink OperationType = "create_link"

	// OperationRemoveLink removes the symlink at Target. It never
	// removes anything that is not a symlink.
	OperationRemoveLink OperationType = "remove_link"
)

// OperationStatus is the outcome of applying a single operation.
type OperationStatus string

const (
	// StatusDone means the operation was applied.
	StatusDone OperationStatus = "done"

	// StatusUnchanged means the filesystem was already in the desired
	// state and nothing was touched.
	StatusUnchanged OperationStatus = "unchanged"

	// StatusSkipped means the operation was refused by the clobber
	// guard: a real file or directory occupies the target.
	StatusSkipped OperationStatus = "skipped"

	// StatusWould means dry-run mode reported the operation without
	// applying it.
	StatusWould OperationStatus = "would"

	// StatusFailed means the filesystem raised an error.
	StatusFailed OperationStatus = "failed"
)

// Operation is a single planned filesystem mutation. The planner emits
// these; the executor in pkg/linker applies them in order.
type Operation struct {
	Type        OperationType
	Source      string
	Target      string
	Description string

	// Mapping is the link mapping this operation realizes, when there
	// is one (create_dir operations carry none).
	Mapping *LinkMapping
}

// OperationResult pairs an operation with its outcome.
type OperationResult struct {
	Operation Operation
	Status    OperationStatus
	Message   string
	Error     error
}

func (r OperationResult) String() string {
	if r.Error != nil {
		return fmt.Sprintf("%s: %s (%v)", r.Status, r.Operation.Description, r.Error)
	}
	return fmt.Sprintf("%s: %s", r.Status, r.Operation.Description)
}
