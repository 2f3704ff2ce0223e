// Package commands provides the high-level command implementations for
// cursync. Each command takes an Options struct carrying the filesystem
// and resolved paths, so the whole layer runs unchanged against the
// in-memory filesystem in tests.
package commands

import (
	"github.com/cursync/cursync/pkg/config"
	"github.com/cursync/cursync/pkg/paths"
	"github.com/cursync/cursync/pkg/types"
)

// Env bundles what every command needs: the filesystem to operate on,
// the resolved paths, and the merged configuration.
type Env struct {
	FS     types.FS
	Paths  paths.Paths
	Config *config.Config
}
