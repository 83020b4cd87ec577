// Package testutil provides test helpers: a scripted decision reader, an
// in-memory filesystem and a synthetic traversal source.
package testutil

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/fnr/pkg/filesystem"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ScriptedReader feeds a fixed decision sequence to the interaction
// controller, standing in for the raw-mode terminal reader.
type ScriptedReader struct {
	decisions []types.Decision
	pos       int
}

// NewScriptedReader creates a reader that yields the given decisions in order.
func NewScriptedReader(decisions ...types.Decision) *ScriptedReader {
	return &ScriptedReader{decisions: decisions}
}

// NextDecision implements types.DecisionReader.
func (r *ScriptedReader) NextDecision() (types.Decision, error) {
	if r.pos >= len(r.decisions) {
		return types.DecisionQuit, fmt.Errorf("scripted reader exhausted after %d decisions", r.pos)
	}
	d := r.decisions[r.pos]
	r.pos++
	return d, nil
}

// NewMemFS returns an in-memory types.FS together with the afero backend
// for direct inspection.
func NewMemFS() (types.FS, afero.Fs) {
	backend := afero.NewMemMapFs()
	return filesystem.NewAferoFS(backend), backend
}

// WriteTree populates fs with files (contents "x") and directories
// (trailing slash). Paths are slash-separated.
func WriteTree(t *testing.T, fs afero.Fs, paths ...string) {
	t.Helper()
	for _, p := range paths {
		abs := filepath.FromSlash(p)
		if strings.HasSuffix(p, "/") {
			require.NoError(t, fs.MkdirAll(abs, 0o755))
			continue
		}
		require.NoError(t, fs.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, afero.WriteFile(fs, abs, []byte("x"), 0o644))
	}
}

// EntrySource feeds synthetic entries to the planner without a live
// filesystem walk.
type EntrySource struct {
	entries []types.Entry
	pos     int
}

// NewEntrySource creates a source over the given entries.
func NewEntrySource(entries ...types.Entry) *EntrySource {
	return &EntrySource{entries: entries}
}

// Next implements the planner's Source.
func (s *EntrySource) Next() (types.Entry, bool) {
	if s.pos >= len(s.entries) {
		return types.Entry{}, false
	}
	e := s.entries[s.pos]
	s.pos++
	return e, true
}

// Entry builds a types.Entry below base from a slash-separated relative
// path, deriving the depth from the path's segment count.
func Entry(base, rel string, kind types.EntryKind) types.Entry {
	return types.Entry{
		Path:    filepath.Join(base, filepath.FromSlash(rel)),
		RelPath: rel,
		Kind:    kind,
		Depth:   len(strings.Split(path.Clean(rel), "/")),
	}
}
