package types

import "path/filepath"

// EntryKind distinguishes files from directories in traversal output.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// String implements fmt.Stringer
func (k EntryKind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// EntryFilter restricts which entry kinds are rename candidates.
type EntryFilter int

const (
	FilterBoth EntryFilter = iota
	FilterFile
	FilterDir
)

// Admits reports whether the filter accepts an entry of the given kind.
func (f EntryFilter) Admits(kind EntryKind) bool {
	switch f {
	case FilterFile:
		return kind == KindFile
	case FilterDir:
		return kind == KindDir
	default:
		return true
	}
}

// Entry is a single filesystem entry produced by traversal.
// Depth 0 is the base directory itself; its direct children are depth 1.
type Entry struct {
	// Path is the absolute path of the entry
	Path string

	// RelPath is the path relative to the traversal base, slash-separated.
	// Glob and gitignore patterns match against this.
	RelPath string

	// Kind is whether the entry is a file or a directory
	Kind EntryKind

	// Depth is the entry's depth below the base directory
	Depth int
}

// RenameItem is a single planned rename. The new path always shares the
// original path's parent directory; renames change the base name only.
type RenameItem struct {
	// Path is the entry's current absolute path
	Path string

	// NewName is the computed replacement base name
	NewName string

	// Kind is whether the entry is a file or a directory
	Kind EntryKind

	// Depth is the entry's depth below the base directory
	Depth int
}

// NewPath returns the item's destination path.
func (i RenameItem) NewPath() string {
	return filepath.Join(filepath.Dir(i.Path), i.NewName)
}

// Name returns the item's current base name.
func (i RenameItem) Name() string {
	return filepath.Base(i.Path)
}

// Plan is the ordered, conflict-free sequence of renames. Items are ordered
// so that no directory is renamed before everything nested beneath it, and
// files precede directories at equal depth. Conflicts holds the groups that
// were excluded from Items because their destinations collide.
type Plan struct {
	Items     []RenameItem
	Conflicts [][]RenameItem
}

// IsEmpty reports whether the plan has nothing to execute or report.
func (p *Plan) IsEmpty() bool {
	return len(p.Items) == 0 && len(p.Conflicts) == 0
}

// Decision is a per-item answer from the interactive session.
type Decision int

const (
	// DecisionNone marks items that were never prompted (conflicts)
	DecisionNone Decision = iota
	DecisionApprove
	DecisionSkip
	DecisionApproveAll
	DecisionQuit
)

// String implements fmt.Stringer
func (d Decision) String() string {
	switch d {
	case DecisionApprove:
		return "approve"
	case DecisionSkip:
		return "skip"
	case DecisionApproveAll:
		return "approve-all"
	case DecisionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Outcome is the per-item execution result.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeSkipped
	OutcomeFailed
	OutcomeConflicted
	OutcomeDryRun
)

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeConflicted:
		return "conflicted"
	default:
		return "dry-run"
	}
}

// Result is one element of the event stream consumed by the presentation
// layer: what was planned, what the user decided, and what happened.
type Result struct {
	Item     RenameItem
	Decision Decision
	Outcome  Outcome
	Err      error
}

// Summary aggregates results for the final report and the exit status.
type Summary struct {
	Applied    int
	Skipped    int
	Failed     int
	Conflicted int
	DryRun     int

	// Failures keeps the reasons for every Failed item
	Failures []error
}

// Record folds one result into the summary.
func (s *Summary) Record(r Result) {
	switch r.Outcome {
	case OutcomeApplied:
		s.Applied++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
		s.Failures = append(s.Failures, r.Err)
	case OutcomeConflicted:
		s.Conflicted++
	case OutcomeDryRun:
		s.DryRun++
	}
}

// Clean reports whether the run should exit zero: no failed and no
// conflicted items.
func (s *Summary) Clean() bool {
	return s.Failed == 0 && s.Conflicted == 0
}

// TraversalConfig holds the resolved traversal constraints. Depths are on
// the base-dir-is-zero scale; MinDepth and MaxDepth are inclusive, zero
// meaning unset.
type TraversalConfig struct {
	BaseDir          string
	Recursive        bool
	MinDepth         int
	MaxDepth         int
	Hidden           bool
	FollowSymlinks   bool
	RespectGitignore bool
	Filter           EntryFilter
}

// DepthWindow returns the effective inclusive depth bounds. Non-recursive
// traversal is the [1,1] window.
func (c TraversalConfig) DepthWindow() (min, max int) {
	if !c.Recursive {
		return 1, 1
	}
	min = c.MinDepth
	if min < 1 {
		min = 1
	}
	max = c.MaxDepth
	return min, max
}
