// Package filesystem provides filesystem implementations for cursync.
//
// This package contains the production implementation of the types.FS
// interface backed by the operating system. The in-memory test
// implementation lives in pkg/testutil.
package filesystem
