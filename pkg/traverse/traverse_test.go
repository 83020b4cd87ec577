package traverse_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/traverse"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (contents "x") and directories (trailing slash)
// under root.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		abs := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(abs, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte("x"), 0o644))
	}
}

func relPaths(entries []types.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.RelPath)
	}
	sort.Strings(out)
	return out
}

func collect(t *testing.T, cfg types.TraversalConfig) []types.Entry {
	t.Helper()
	w, err := traverse.New(cfg)
	require.NoError(t, err)
	return w.Collect()
}

func TestNew_UnreadableBase(t *testing.T) {
	_, err := traverse.New(types.TraversalConfig{BaseDir: "/no/such/dir", Recursive: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBaseDirAccess))
}

func TestNew_BaseIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "plain.txt")
	_, err := traverse.New(types.TraversalConfig{BaseDir: filepath.Join(root, "plain.txt"), Recursive: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrBaseDirAccess))
}

func TestWalker_RecursiveDepths(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "sub/b.txt", "sub/deep/c.txt")

	entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true})
	assert.ElementsMatch(t,
		[]string{"a.txt", "sub", "sub/b.txt", "sub/deep", "sub/deep/c.txt"},
		relPaths(entries))

	depths := map[string]int{}
	kinds := map[string]types.EntryKind{}
	for _, e := range entries {
		depths[e.RelPath] = e.Depth
		kinds[e.RelPath] = e.Kind
	}
	assert.Equal(t, 1, depths["a.txt"])
	assert.Equal(t, 1, depths["sub"])
	assert.Equal(t, 2, depths["sub/b.txt"])
	assert.Equal(t, 3, depths["sub/deep/c.txt"])
	assert.Equal(t, types.KindDir, kinds["sub"])
	assert.Equal(t, types.KindFile, kinds["sub/b.txt"])
}

func TestWalker_NonRecursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "sub/b.txt")

	entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: false})
	assert.ElementsMatch(t, []string{"a.txt", "sub"}, relPaths(entries))
}

func TestWalker_DepthWindow(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "sub/b.txt", "sub/deep/c.txt", "sub/deep/deeper/d.txt")

	t.Run("max_depth_prunes_subtree", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true, MaxDepth: 2})
		assert.ElementsMatch(t, []string{"a.txt", "sub", "sub/b.txt", "sub/deep"}, relPaths(entries))
	})

	t.Run("min_depth_descends_without_emitting", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true, MinDepth: 3})
		assert.ElementsMatch(t, []string{"sub/deep/c.txt", "sub/deep/deeper", "sub/deep/deeper/d.txt"}, relPaths(entries))
	})
}

func TestWalker_Hidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "visible.txt", ".hidden.txt", ".hiddendir/inner.txt")

	t.Run("pruned_by_default", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true})
		assert.ElementsMatch(t, []string{"visible.txt"}, relPaths(entries))
	})

	t.Run("included_with_flag", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true, Hidden: true})
		assert.ElementsMatch(t,
			[]string{"visible.txt", ".hidden.txt", ".hiddendir", ".hiddendir/inner.txt"},
			relPaths(entries))
	})
}

func TestWalker_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "keep.log", "build/out.bin", "sub/keep.txt", "sub/scratch.txt")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("build/\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", ".gitignore"), []byte("scratch.txt\n"), 0o644))

	t.Run("respected", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true, RespectGitignore: true})
		assert.ElementsMatch(t, []string{"keep.log", "sub", "sub/keep.txt"}, relPaths(entries))
	})

	t.Run("disabled", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true})
		assert.ElementsMatch(t,
			[]string{"keep.log", "build", "build/out.bin", "sub", "sub/keep.txt", "sub/scratch.txt"},
			relPaths(entries))
	})
}

func TestWalker_Symlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real/inner.txt")
	link := filepath.Join(root, "link")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), link))

	t.Run("reported_as_leaf", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true})
		assert.ElementsMatch(t, []string{"real", "real/inner.txt", "link"}, relPaths(entries))
	})

	t.Run("descended_when_following", func(t *testing.T) {
		entries := collect(t, types.TraversalConfig{BaseDir: root, Recursive: true, FollowSymlinks: true})
		assert.ElementsMatch(t,
			[]string{"real", "real/inner.txt", "link", "link/inner.txt"},
			relPaths(entries))
	})
}
