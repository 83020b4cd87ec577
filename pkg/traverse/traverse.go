// Package traverse enumerates filesystem entries under the base directory
// as a lazy, pull-based sequence.
//
// The walker applies the depth window, hidden-entry, symlink and gitignore
// constraints; glob and type filtering happen downstream in the planner so
// each concern stays independently testable. Traversal never mutates the
// filesystem.
package traverse

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/Sriram-PR/go-ignore"
	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/logging"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/rs/zerolog"
)

// Source is the pull interface the planner consumes. Next returns false
// once the sequence is exhausted; the sequence is finite and not
// restartable.
type Source interface {
	Next() (types.Entry, bool)
}

type dirFrame struct {
	path  string // absolute path of the directory
	rel   string // slash-separated path relative to base, "" for base
	depth int    // depth of the directory itself, base = 0
}

// Walker produces (path, kind, depth) entries below the base directory.
// Depth 0 is the base directory itself; it is never emitted, so the first
// entries are its direct children at depth 1.
type Walker struct {
	cfg      types.TraversalConfig
	minDepth int
	maxDepth int // 0 = unbounded
	pending  []types.Entry
	dirs     []dirFrame
	ign      *ignore.Matcher
	logger   zerolog.Logger
}

// New validates the base directory and returns a walker positioned before
// the first entry. An unreadable base directory is fatal.
func New(cfg types.TraversalConfig) (*Walker, error) {
	info, err := os.Stat(cfg.BaseDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBaseDirAccess, "cannot access base directory %q", cfg.BaseDir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrBaseDirAccess, "base directory %q is not a directory", cfg.BaseDir)
	}

	w := &Walker{
		cfg:    cfg,
		dirs:   []dirFrame{{path: cfg.BaseDir, rel: "", depth: 0}},
		logger: logging.GetLogger("traverse"),
	}
	w.minDepth, w.maxDepth = cfg.DepthWindow()
	if cfg.RespectGitignore {
		w.ign = ignore.New()
	}
	return w, nil
}

// Next returns the next entry, or false when traversal is done.
func (w *Walker) Next() (types.Entry, bool) {
	for {
		if len(w.pending) > 0 {
			e := w.pending[0]
			w.pending = w.pending[1:]
			return e, true
		}
		if len(w.dirs) == 0 {
			return types.Entry{}, false
		}
		frame := w.dirs[len(w.dirs)-1]
		w.dirs = w.dirs[:len(w.dirs)-1]
		w.readDir(frame)
	}
}

// Collect drains the walker. Handy for tests and search mode.
func (w *Walker) Collect() []types.Entry {
	var out []types.Entry
	for {
		e, ok := w.Next()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func (w *Walker) readDir(frame dirFrame) {
	entries, err := os.ReadDir(frame.path)
	if err != nil {
		// Unreadable subdirectories are skipped, not fatal
		w.logger.Warn().Err(err).Str("dir", frame.path).Msg("Skipping unreadable directory")
		return
	}

	// The nearest applicable .gitignore is loaded before its siblings and
	// descendants are filtered
	if w.ign != nil {
		ignPath := filepath.Join(frame.path, ".gitignore")
		if content, err := os.ReadFile(ignPath); err == nil {
			w.ign.AddPatterns(frame.rel, content)
		}
	}

	childDepth := frame.depth + 1
	for _, de := range entries {
		name := de.Name()
		if !w.cfg.Hidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := path.Join(frame.rel, name)
		abs := filepath.Join(frame.path, name)
		kind, recurse := w.classify(abs, de)

		// An ignored entry is pruned together with its entire subtree
		if w.ign != nil && w.ign.Match(rel, kind == types.KindDir) {
			w.logger.Trace().Str("path", rel).Msg("Pruned by gitignore")
			continue
		}

		if childDepth >= w.minDepth && (w.maxDepth == 0 || childDepth <= w.maxDepth) {
			w.pending = append(w.pending, types.Entry{
				Path:    abs,
				RelPath: rel,
				Kind:    kind,
				Depth:   childDepth,
			})
		}

		// Descend while deeper entries can still fall inside the window.
		// Below min-depth we descend without emitting.
		if recurse && (w.maxDepth == 0 || childDepth < w.maxDepth) {
			w.dirs = append(w.dirs, dirFrame{path: abs, rel: rel, depth: childDepth})
		}
	}
}

// classify resolves an entry's kind and whether it can be descended into.
// Symlinks are always reported as entries; their targets are descended into
// only when the follow-symlink flag is set, otherwise a symlink is a
// non-recursable leaf.
func (w *Walker) classify(abs string, de fs.DirEntry) (types.EntryKind, bool) {
	if de.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(abs)
		if err != nil {
			// Broken link, report as a file leaf
			return types.KindFile, false
		}
		if info.IsDir() {
			return types.KindDir, w.cfg.FollowSymlinks
		}
		return types.KindFile, false
	}
	if de.IsDir() {
		return types.KindDir, true
	}
	return types.KindFile, false
}
