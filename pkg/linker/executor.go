// Package linker applies, verifies, and removes the links a plan
// describes. This is the only package that mutates the filesystem, and
// it only ever does so through the injected types.FS.
package linker

import (
	"io/fs"
	"os"

	"github.com/cursync/cursync/pkg/errors"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/types"
)

// Executor applies planned operations in order, stopping at the first
// fatal filesystem error. Guarded skips (a real file where a link
// should go) are not fatal.
type Executor struct {
	fs     types.FS
	dryRun bool
}

// NewExecutor creates an executor over fsys. With dryRun set, Execute
// reports what would happen without touching anything.
func NewExecutor(fsys types.FS, dryRun bool) *Executor {
	return &Executor{fs: fsys, dryRun: dryRun}
}

// Execute applies the operations in order. It returns the results of
// every operation attempted; on a fatal error the returned slice ends
// with the failed operation and the error is returned alongside.
func (e *Executor) Execute(operations []types.Operation) ([]types.OperationResult, error) {
	logger := logging.GetLogger("linker").With().
		Int("operation_count", len(operations)).
		Bool("dry_run", e.dryRun).
		Logger()
	defer logging.LogOperationStart(logger, "execute")()

	var results []types.OperationResult
	for _, op := range operations {
		logger.Debug().
			Str("type", string(op.Type)).
			Str("target", op.Target).
			Msg("executing operation")

		result := e.executeOne(op)
		results = append(results, result)

		if result.Error != nil {
			logger.Error().Err(result.Error).Str("target", op.Target).Msg("operation failed, aborting")
			return results, result.Error
		}
	}
	return results, nil
}

func (e *Executor) executeOne(op types.Operation) types.OperationResult {
	switch op.Type {
	case types.OperationCreateDir:
		return e.createDir(op)
	case types.OperationCreateLink:
		return e.createLink(op)
	case types.OperationRemoveLink:
		return e.removeLink(op)
	default:
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusFailed,
			Error:     errors.Newf(errors.ErrInternal, "unsupported operation type: %s", op.Type),
		}
	}
}

func (e *Executor) createDir(op types.Operation) types.OperationResult {
	if info, err := e.fs.Lstat(op.Target); err == nil && info.IsDir() {
		return types.OperationResult{Operation: op, Status: types.StatusUnchanged}
	}
	if e.dryRun {
		return types.OperationResult{Operation: op, Status: types.StatusWould}
	}
	if err := e.fs.MkdirAll(op.Target, 0755); err != nil {
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", op.Target),
		}
	}
	return types.OperationResult{Operation: op, Status: types.StatusDone}
}

// createLink establishes op.Target -> op.Source. An existing symlink at
// the target is replaced; anything else at the target blocks the step.
func (e *Executor) createLink(op types.Operation) types.OperationResult {
	info, err := e.fs.Lstat(op.Target)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink == 0:
		// A real file or directory. Never ours to delete.
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusSkipped,
			Message:   "exists and is not a symlink, refusing to overwrite",
		}
	case err == nil:
		if dest, rerr := e.fs.Readlink(op.Target); rerr == nil && dest == op.Source {
			return types.OperationResult{Operation: op, Status: types.StatusUnchanged}
		}
		if e.dryRun {
			return types.OperationResult{Operation: op, Status: types.StatusWould}
		}
		if rerr := e.fs.Remove(op.Target); rerr != nil {
			return types.OperationResult{
				Operation: op,
				Status:    types.StatusFailed,
				Error:     errors.Wrapf(rerr, errors.ErrLinkRemove, "failed to remove stale link %s", op.Target),
			}
		}
	case !os.IsNotExist(err):
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", op.Target),
		}
	default:
		if e.dryRun {
			return types.OperationResult{Operation: op, Status: types.StatusWould}
		}
	}

	if err := e.fs.Symlink(op.Source, op.Target); err != nil {
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrLinkCreate, "failed to link %s", op.Target),
		}
	}
	return types.OperationResult{Operation: op, Status: types.StatusDone}
}

// removeLink removes the symlink at op.Target. Real files are skipped,
// a missing target is already the desired state.
func (e *Executor) removeLink(op types.Operation) types.OperationResult {
	info, err := e.fs.Lstat(op.Target)
	if err != nil {
		return types.OperationResult{Operation: op, Status: types.StatusUnchanged}
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusSkipped,
			Message:   "not a symlink, leaving in place",
		}
	}
	if e.dryRun {
		return types.OperationResult{Operation: op, Status: types.StatusWould}
	}
	if err := e.fs.Remove(op.Target); err != nil {
		return types.OperationResult{
			Operation: op,
			Status:    types.StatusFailed,
			Error:     errors.Wrapf(err, errors.ErrLinkRemove, "failed to remove %s", op.Target),
		}
	}
	return types.OperationResult{Operation: op, Status: types.StatusDone}
}
