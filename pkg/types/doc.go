// Package types defines the shared types used across cursync: the
// filesystem interface every mutating component runs against, the link
// mappings the planner produces, and the operations the executor applies.
package types
