// Package testutil provides test helpers for cursync, most notably an
// in-memory implementation of types.FS with symlink support and error
// injection, so the planner and executor can be exercised without
// touching a real filesystem.
package testutil
