package globfilter_test

import (
	"testing"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/globfilter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyList_AdmitsEverything(t *testing.T) {
	f, err := globfilter.New(nil)
	require.NoError(t, err)
	assert.True(t, f.Empty())
	assert.True(t, f.Candidate("any/path/at.all"))
}

func TestNoMatch_Excluded(t *testing.T) {
	f, err := globfilter.New([]string{"*.go"})
	require.NoError(t, err)
	assert.True(t, f.Candidate("main.go"))
	assert.False(t, f.Candidate("main.py"))
}

func TestNegation_LastMatchWins(t *testing.T) {
	f, err := globfilter.New([]string{"**/*.rs", "!target/**"})
	require.NoError(t, err)

	assert.True(t, f.Candidate("src/main.rs"))
	assert.True(t, f.Candidate("lib.rs"))
	// Nothing under target/ survives, regardless of extension
	assert.False(t, f.Candidate("target/debug/main.rs"))
	assert.False(t, f.Candidate("target/main.rs"))
}

func TestReinclude_AfterExclude(t *testing.T) {
	f, err := globfilter.New([]string{"**/*.log", "!build/**", "build/keep.log"})
	require.NoError(t, err)

	assert.True(t, f.Candidate("app.log"))
	assert.False(t, f.Candidate("build/other.log"))
	assert.True(t, f.Candidate("build/keep.log"))
}

func TestBraceExpansion(t *testing.T) {
	f, err := globfilter.New([]string{"**/*.{h,cpp}"})
	require.NoError(t, err)

	assert.True(t, f.Candidate("src/widget.cpp"))
	assert.True(t, f.Candidate("widget.h"))
	assert.False(t, f.Candidate("widget.c"))
}

func TestDoublestar_MatchesZeroDirs(t *testing.T) {
	f, err := globfilter.New([]string{"**/*.rs"})
	require.NoError(t, err)
	assert.True(t, f.Candidate("top.rs"))
	assert.True(t, f.Candidate("a/b/c/deep.rs"))
}

func TestInvalidPattern(t *testing.T) {
	_, err := globfilter.New([]string{"a[b"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidGlob))

	_, err = globfilter.New([]string{"!"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidGlob))
}
