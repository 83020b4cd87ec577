package executor_test

import (
	"testing"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/executor"
	"github.com/arthur-debert/fnr/pkg/interaction"
	"github.com/arthur-debert/fnr/pkg/testutil"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approveAll() types.Decider {
	return interaction.New(interaction.Options{Interactive: false})
}

func exists(t *testing.T, backend afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(backend, path)
	require.NoError(t, err)
	return ok
}

func TestRun_AppliesInPlanOrder(t *testing.T) {
	fs, backend := testutil.NewMemFS()
	testutil.WriteTree(t, backend, "/base/old_dir/", "/base/old_dir/old_file.txt")

	plan := &types.Plan{Items: []types.RenameItem{
		{Path: "/base/old_dir/old_file.txt", NewName: "new_file.txt", Kind: types.KindFile, Depth: 2},
		{Path: "/base/old_dir", NewName: "new_dir", Kind: types.KindDir, Depth: 1},
	}}

	var order []string
	summary := executor.New(executor.Options{FS: fs}).Run(plan, approveAll(), func(r types.Result) {
		order = append(order, r.Item.Path)
		assert.Equal(t, types.OutcomeApplied, r.Outcome)
	})

	assert.Equal(t, []string{"/base/old_dir/old_file.txt", "/base/old_dir"}, order)
	assert.Equal(t, 2, summary.Applied)
	assert.True(t, summary.Clean())
	assert.True(t, exists(t, backend, "/base/new_dir/new_file.txt"))
	assert.False(t, exists(t, backend, "/base/old_dir"))
}

func TestRun_DryRunLeavesFilesystemUntouched(t *testing.T) {
	fs, backend := testutil.NewMemFS()
	testutil.WriteTree(t, backend, "/base/old.txt")

	plan := &types.Plan{Items: []types.RenameItem{
		{Path: "/base/old.txt", NewName: "new.txt", Kind: types.KindFile, Depth: 1},
	}}

	summary := executor.New(executor.Options{FS: fs, DryRun: true}).Run(plan, approveAll(), nil)

	assert.Equal(t, 1, summary.DryRun)
	assert.Equal(t, 0, summary.Applied)
	assert.True(t, exists(t, backend, "/base/old.txt"))
	assert.False(t, exists(t, backend, "/base/new.txt"))
}

func TestRun_SkipLeavesItemUntouched(t *testing.T) {
	fs, backend := testutil.NewMemFS()
	testutil.WriteTree(t, backend, "/base/a.txt", "/base/b.txt")

	plan := &types.Plan{Items: []types.RenameItem{
		{Path: "/base/a.txt", NewName: "a2.txt", Kind: types.KindFile, Depth: 1},
		{Path: "/base/b.txt", NewName: "b2.txt", Kind: types.KindFile, Depth: 1},
	}}

	ctrl := interaction.New(interaction.Options{
		Reader:      testutil.NewScriptedReader(types.DecisionSkip, types.DecisionApprove),
		Interactive: true,
	})
	summary := executor.New(executor.Options{FS: fs}).Run(plan, ctrl, nil)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Applied)
	assert.True(t, exists(t, backend, "/base/a.txt"))
	assert.True(t, exists(t, backend, "/base/b2.txt"))
}

func TestRun_QuitStopsRemainingItems(t *testing.T) {
	fs, backend := testutil.NewMemFS()
	testutil.WriteTree(t, backend, "/base/a.txt", "/base/b.txt", "/base/c.txt")

	plan := &types.Plan{Items: []types.RenameItem{
		{Path: "/base/a.txt", NewName: "a2.txt", Kind: types.KindFile, Depth: 1},
		{Path: "/base/b.txt", NewName: "b2.txt", Kind: types.KindFile, Depth: 1},
		{Path: "/base/c.txt", NewName: "c2.txt", Kind: types.KindFile, Depth: 1},
	}}

	ctrl := interaction.New(interaction.Options{
		Reader:      testutil.NewScriptedReader(types.DecisionApprove, types.DecisionQuit),
		Interactive: true,
	})
	summary := executor.New(executor.Options{FS: fs}).Run(plan, ctrl, nil)

	// The first rename stays applied; nothing after the quit is touched
	assert.Equal(t, 1, summary.Applied)
	assert.True(t, exists(t, backend, "/base/a2.txt"))
	assert.True(t, exists(t, backend, "/base/b.txt"))
	assert.True(t, exists(t, backend, "/base/c.txt"))
}

func TestRun_FailureIsIsolatedPerItem(t *testing.T) {
	fs, backend := testutil.NewMemFS()
	testutil.WriteTree(t, backend, "/base/a.txt", "/base/a2.txt", "/base/b.txt")

	plan := &types.Plan{Items: []types.RenameItem{
		// a2.txt already exists: this item fails
		{Path: "/base/a.txt", NewName: "a2.txt", Kind: types.KindFile, Depth: 1},
		{Path: "/base/b.txt", NewName: "b2.txt", Kind: types.KindFile, Depth: 1},
	}}

	var results []types.Result
	summary := executor.New(executor.Options{FS: fs}).Run(plan, approveAll(), func(r types.Result) {
		results = append(results, r)
	})

	require.Len(t, results, 2)
	assert.Equal(t, types.OutcomeFailed, results[0].Outcome)
	assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrDestExists))
	assert.Equal(t, types.OutcomeApplied, results[1].Outcome)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Applied)
	assert.False(t, summary.Clean())
	assert.True(t, exists(t, backend, "/base/a.txt"))
	assert.True(t, exists(t, backend, "/base/b2.txt"))
}

func TestRun_ConflictsReportedNotPrompted(t *testing.T) {
	fs, backend := testutil.NewMemFS()
	testutil.WriteTree(t, backend, "/base/a_one.txt", "/base/a_two.txt")

	plan := &types.Plan{Conflicts: [][]types.RenameItem{{
		{Path: "/base/a_one.txt", NewName: "b.txt", Kind: types.KindFile, Depth: 1},
		{Path: "/base/a_two.txt", NewName: "b.txt", Kind: types.KindFile, Depth: 1},
	}}}

	// An exhausted reader: any prompt would error the test via Decide
	ctrl := interaction.New(interaction.Options{
		Reader:      testutil.NewScriptedReader(),
		Interactive: true,
	})

	var results []types.Result
	summary := executor.New(executor.Options{FS: fs}).Run(plan, ctrl, func(r types.Result) {
		results = append(results, r)
	})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, types.OutcomeConflicted, r.Outcome)
		assert.Equal(t, types.DecisionNone, r.Decision)
		assert.True(t, errors.IsErrorCode(r.Err, errors.ErrConflict))
	}
	assert.Equal(t, 2, summary.Conflicted)
	assert.False(t, summary.Clean())
	assert.True(t, exists(t, backend, "/base/a_one.txt"))
	assert.True(t, exists(t, backend, "/base/a_two.txt"))
}
