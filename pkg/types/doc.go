// Package types defines the core types and interfaces used throughout fnr.
// This includes the Entry and RenameItem data structures, the ExecutionPlan,
// and the FS and DecisionReader interfaces.
package types
