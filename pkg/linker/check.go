package linker

import (
	"io/fs"
	"os"

	"github.com/cursync/cursync/pkg/errors"
	"github.com/cursync/cursync/pkg/types"
)

// Check classifies the current state of every mapping without mutating
// anything. Used by the status command.
func Check(fsys types.FS, mappings []types.LinkMapping) ([]types.LinkStatus, error) {
	statuses := make([]types.LinkStatus, 0, len(mappings))
	for _, mapping := range mappings {
		status, err := checkOne(fsys, mapping)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func checkOne(fsys types.FS, mapping types.LinkMapping) (types.LinkStatus, error) {
	status := types.LinkStatus{Mapping: mapping}

	info, err := fsys.Lstat(mapping.Target)
	switch {
	case os.IsNotExist(err):
		status.State = types.LinkMissing
	case err != nil:
		return status, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", mapping.Target)
	case info.Mode()&fs.ModeSymlink == 0:
		status.State = types.LinkBlocked
	default:
		dest, rerr := fsys.Readlink(mapping.Target)
		if rerr != nil {
			return status, errors.Wrapf(rerr, errors.ErrFileAccess, "failed to read link %s", mapping.Target)
		}
		if dest == mapping.Source {
			status.State = types.LinkOK
		} else {
			status.State = types.LinkWrongTarget
			status.ActualTarget = dest
		}
	}
	return status, nil
}
