package types

import (
	"io/fs"
)

// FS is the filesystem interface required for planning and executing
// renames. The OS implementation lives in pkg/filesystem; tests substitute
// an afero-backed one.
type FS interface {
	Stat(name string) (fs.FileInfo, error)

	// Lstat must not follow symlinks. For filesystems without symlink
	// support it may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)

	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)

	// Rename moves oldpath to newpath as a single atomic operation.
	Rename(oldpath, newpath string) error
}

// DecisionReader supplies one decision per prompted item. The terminal
// implementation reads single keystrokes in raw mode; tests use a scripted
// sequence.
type DecisionReader interface {
	NextDecision() (Decision, error)
}

// Decider is what the executor consults before each item. The interaction
// controller implements it; non-interactive runs use an always-approve one.
type Decider interface {
	Decide(item RenameItem) (Decision, error)
}
